package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for requests and the triage
// pipeline.
type Metrics struct {
	mu                  sync.Mutex
	requestCount        map[string]int64
	errorCount          map[string]int64
	processedCount      map[string]int64
	classifierFallbacks int64
	retrievalDegraded   int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		processedCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordTicketProcessed increments pipeline outcome counters, keyed by the
// persisted status.
func (m *Metrics) RecordTicketProcessed(status string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processedCount[status]++
}

// RecordClassifierFallback counts classifier replies that collapsed to the
// deterministic fallback analysis.
func (m *Metrics) RecordClassifierFallback() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifierFallbacks++
}

// RecordRetrievalDegraded counts retrieval-store failures answered with
// empty match sets.
func (m *Metrics) RecordRetrievalDegraded() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retrievalDegraded++
}

// Snapshot returns a copy of the pipeline counters for the stats endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.processedCount)+2)
	for status, count := range m.processedCount {
		out["processed_"+status] = count
	}
	out["classifier_fallbacks"] = m.classifierFallbacks
	out["retrieval_degraded"] = m.retrievalDegraded
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
