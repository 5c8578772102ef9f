package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/observability"
)

// TextModel is the opaque generative-text capability used by the analyzer
// and the response composer. Implementations must be safe for concurrent use.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer classifies a ticket into category, priority, sentiment and tags
// by delegating to an external text model and strictly validating its reply.
type Analyzer struct {
	model   TextModel
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAnalyzer constructs an analyzer.
func NewAnalyzer(model TextModel, logger *zap.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{model: model, logger: logger, metrics: metrics}
}

const analysisPromptTemplate = `Analyze this customer support ticket and provide a JSON response with the following structure:
{
  "category": "one of: shipping, returns, payment, quality, account, technical, other",
  "priority": "low, medium, high, or urgent",
  "sentiment": "number between -1 (very negative) and 1 (very positive)",
  "tags": ["array", "of", "relevant", "tags"],
  "urgencyKeywords": ["keywords", "that", "indicate", "urgency"]
}

Subject: %s
Description: %s

Consider factors like:
- Emotional language and tone
- Financial impact
- Time sensitivity
- Customer frustration level
- Business impact

Respond only with valid JSON.`

// classifierPayload mirrors the JSON shape requested from the model.
type classifierPayload struct {
	Category        string   `json:"category"`
	Priority        string   `json:"priority"`
	Sentiment       float64  `json:"sentiment"`
	Tags            []string `json:"tags"`
	UrgencyKeywords []string `json:"urgencyKeywords"`
}

// Analyze classifies the ticket. It never fails: any model error or schema
// violation collapses to the deterministic fallback analysis so pipeline
// availability does not depend on classifier output quality.
func (a *Analyzer) Analyze(ctx context.Context, subject, description string) domain.Analysis {
	prompt := fmt.Sprintf(analysisPromptTemplate, subject, description)

	raw, err := a.model.Complete(ctx, prompt)
	if err != nil {
		return a.fallback("classifier call failed", err)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return a.fallback("classifier output rejected", err)
	}
	return analysis
}

func (a *Analyzer) fallback(reason string, err error) domain.Analysis {
	if a.logger != nil {
		a.logger.Warn("using fallback analysis", zap.String("reason", reason), zap.Error(err))
	}
	a.metrics.RecordClassifierFallback()
	return domain.FallbackAnalysis()
}

func parseAnalysis(raw string) (domain.Analysis, error) {
	var payload classifierPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return domain.Analysis{}, fmt.Errorf("parse classifier json: %w", err)
	}

	category := domain.TicketCategory(strings.ToLower(strings.TrimSpace(payload.Category)))
	if !category.IsValid() {
		return domain.Analysis{}, fmt.Errorf("unknown category %q", payload.Category)
	}
	priority := domain.TicketPriority(strings.ToLower(strings.TrimSpace(payload.Priority)))
	if !priority.IsValid() {
		return domain.Analysis{}, fmt.Errorf("unknown priority %q", payload.Priority)
	}

	// Out-of-range sentiment is clamped rather than rejected so a single
	// overshooting value does not discard an otherwise valid classification.
	sentiment := payload.Sentiment
	if sentiment < -1 {
		sentiment = -1
	}
	if sentiment > 1 {
		sentiment = 1
	}

	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	urgency := payload.UrgencyKeywords
	if urgency == nil {
		urgency = []string{}
	}

	return domain.Analysis{
		Category:        category,
		Priority:        priority,
		Sentiment:       sentiment,
		Tags:            tags,
		UrgencyKeywords: urgency,
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat
// models frequently wrap around JSON despite instructions not to.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
