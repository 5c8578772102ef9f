package triage

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/observability"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TicketWriter persists the fully triaged ticket record.
type TicketWriter interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
}

// TicketSubmission is the immutable input to the pipeline.
type TicketSubmission struct {
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerName  string `json:"customer_name"`
	Subject       string `json:"subject" validate:"required"`
	Description   string `json:"description" validate:"required"`
}

// Result aggregates everything produced by one pipeline run.
type Result struct {
	Ticket           *domain.Ticket
	Analysis         domain.Analysis
	SimilarTickets   []RetrievedTicket
	KnowledgeMatches []RetrievedKnowledge
	AutoResponse     string
	ConfidenceScore  float64
	ShouldEscalate   bool
	EscalationReason string
}

// Pipeline sequences analysis, retrieval, scoring, escalation and response
// composition for one ticket, then persists the record exactly once.
type Pipeline struct {
	analyzer   *Analyzer
	retriever  *Retriever
	composer   *Composer
	tickets    TicketWriter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	validate   *validator.Validate
}

// Dependencies bundles collaborators for the pipeline.
type Dependencies struct {
	Analyzer   *Analyzer
	Retriever  *Retriever
	Composer   *Composer
	TicketRepo TicketWriter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewPipeline constructs the pipeline.
func NewPipeline(deps Dependencies) *Pipeline {
	return &Pipeline{
		analyzer:   deps.Analyzer,
		retriever:  deps.Retriever,
		composer:   deps.Composer,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		validate:   validator.New(),
	}
}

// ProcessTicket runs the triage stages in strict sequence. A submission
// missing required fields is rejected before any stage runs; nothing is
// persisted until analysis, scoring and the escalation decision are final.
func (p *Pipeline) ProcessTicket(ctx context.Context, submission TicketSubmission) (*Result, error) {
	if err := p.validate.Struct(submission); err != nil {
		return nil, apperrors.NewValidationError("customer_email, subject and description are required", map[string]any{
			"cause": err.Error(),
		})
	}

	analysis := p.analyzer.Analyze(ctx, submission.Subject, submission.Description)

	retrieved := p.retriever.Retrieve(ctx, analysis.Category, analysis.Tags)

	confidence := ScoreConfidence(retrieved.SimilarTickets, retrieved.KnowledgeMatches, analysis)

	verdict := DecideEscalation(confidence, analysis.Sentiment, analysis.Priority, analysis.Category)

	autoResponse, err := p.composer.Compose(ctx, submission.Subject, submission.Description,
		analysis.Category, retrieved.SimilarTickets, retrieved.KnowledgeMatches)
	if err != nil {
		if !verdict.ShouldEscalate {
			// An auto-responded ticket without a response is useless; fail
			// the request with no row written.
			return nil, apperrors.NewUnavailable("response generation failed", err)
		}
		// The ticket is going to a human anyway; persist without the
		// automated response.
		p.logger.Warn("persisting escalated ticket without auto response", zap.Error(err))
		autoResponse = ""
	}

	status := domain.TicketStatusAutoResponded
	if verdict.ShouldEscalate {
		status = domain.TicketStatusEscalated
	}

	ticket := &domain.Ticket{
		ExternalKey:     generateTicketKey(),
		CustomerEmail:   submission.CustomerEmail,
		CustomerName:    optionalString(submission.CustomerName),
		Subject:         submission.Subject,
		Description:     submission.Description,
		Category:        analysis.Category,
		Priority:        analysis.Priority,
		Status:          status,
		SentimentScore:  analysis.Sentiment,
		ConfidenceScore: confidence,
		AutoResponse:    autoResponse,
	}
	if err := p.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	p.metrics.RecordTicketProcessed(string(status))
	p.publishEvents(ctx, ticket, verdict)

	p.logger.Info("ticket processed",
		zap.String("ticket_id", ticket.ID),
		zap.String("category", string(analysis.Category)),
		zap.String("priority", string(analysis.Priority)),
		zap.Float64("confidence", confidence),
		zap.Bool("escalated", verdict.ShouldEscalate))

	return &Result{
		Ticket:           ticket,
		Analysis:         analysis,
		SimilarTickets:   retrieved.SimilarTickets,
		KnowledgeMatches: retrieved.KnowledgeMatches,
		AutoResponse:     autoResponse,
		ConfidenceScore:  confidence,
		ShouldEscalate:   verdict.ShouldEscalate,
		EscalationReason: verdict.Reason,
	}, nil
}

func (p *Pipeline) publishEvents(ctx context.Context, ticket *domain.Ticket, verdict Verdict) {
	if p.dispatcher == nil {
		return
	}
	p.publish(ctx, events.Event{
		Type:     events.EventTicketProcessed,
		TicketID: ticket.ID,
		Payload: events.TicketProcessedPayload{
			ExternalKey:     ticket.ExternalKey,
			Category:        ticket.Category,
			Priority:        ticket.Priority,
			Status:          ticket.Status,
			ConfidenceScore: ticket.ConfidenceScore,
			SentimentScore:  ticket.SentimentScore,
		},
	})
	if verdict.ShouldEscalate {
		p.publish(ctx, events.Event{
			Type:     events.EventTicketEscalated,
			TicketID: ticket.ID,
			Payload: events.TicketEscalatedPayload{
				ExternalKey:     ticket.ExternalKey,
				Category:        ticket.Category,
				Priority:        ticket.Priority,
				Reason:          verdict.Reason,
				ConfidenceScore: ticket.ConfidenceScore,
			},
		})
	}
}

func (p *Pipeline) publish(ctx context.Context, event events.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = p.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func optionalString(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
