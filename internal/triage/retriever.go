package triage

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/observability"
)

const (
	maxSimilarTickets   = 3
	maxKnowledgeMatches = 3

	// Placeholder similarity scores for stored content without precomputed
	// embeddings. RankBySimilarity takes over once embeddings are stored
	// end-to-end.
	placeholderTicketSimilarity    = 0.8
	placeholderKnowledgeSimilarity = 0.7
)

// TicketSource supplies previously resolved tickets for retrieval.
type TicketSource interface {
	ListResolvedByCategory(ctx context.Context, category domain.TicketCategory, limit int) ([]domain.Ticket, error)
}

// KnowledgeSource supplies knowledge-base entries for retrieval.
type KnowledgeSource interface {
	ListByCategoryOrTags(ctx context.Context, category domain.TicketCategory, tags []string, limit int) ([]domain.KnowledgeEntry, error)
}

// RetrievedTicket pairs a resolved ticket with its similarity score.
type RetrievedTicket struct {
	Ticket     domain.Ticket
	Similarity float64
}

// RetrievedKnowledge pairs a knowledge entry with its similarity score.
type RetrievedKnowledge struct {
	Entry      domain.KnowledgeEntry
	Similarity float64
}

// RetrievalResult bundles everything retrieved for one ticket.
type RetrievalResult struct {
	SimilarTickets   []RetrievedTicket
	KnowledgeMatches []RetrievedKnowledge
}

// Retriever fetches comparable resolved tickets and knowledge entries for
// a classified ticket.
type Retriever struct {
	tickets   TicketSource
	knowledge KnowledgeSource
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewRetriever constructs a retriever.
func NewRetriever(tickets TicketSource, knowledge KnowledgeSource, logger *zap.Logger, metrics *observability.Metrics) *Retriever {
	return &Retriever{tickets: tickets, knowledge: knowledge, logger: logger, metrics: metrics}
}

// Retrieve returns up to three similar resolved tickets and up to three
// knowledge matches. A failing store degrades to empty result sets so the
// pipeline stays available.
func (r *Retriever) Retrieve(ctx context.Context, category domain.TicketCategory, tags []string) RetrievalResult {
	result := RetrievalResult{
		SimilarTickets:   []RetrievedTicket{},
		KnowledgeMatches: []RetrievedKnowledge{},
	}

	resolved, err := r.tickets.ListResolvedByCategory(ctx, category, maxSimilarTickets)
	if err != nil {
		r.degrade("similar ticket lookup failed", err)
	} else {
		for _, ticket := range resolved {
			result.SimilarTickets = append(result.SimilarTickets, RetrievedTicket{
				Ticket:     ticket,
				Similarity: placeholderTicketSimilarity,
			})
		}
	}

	entries, err := r.knowledge.ListByCategoryOrTags(ctx, category, tags, maxKnowledgeMatches)
	if err != nil {
		r.degrade("knowledge lookup failed", err)
	} else {
		for _, entry := range entries {
			result.KnowledgeMatches = append(result.KnowledgeMatches, RetrievedKnowledge{
				Entry:      entry,
				Similarity: placeholderKnowledgeSimilarity,
			})
		}
	}

	return result
}

func (r *Retriever) degrade(reason string, err error) {
	if r.logger != nil {
		r.logger.Warn("retrieval degraded", zap.String("reason", reason), zap.Error(err))
	}
	r.metrics.RecordRetrievalDegraded()
}
