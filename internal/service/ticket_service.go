package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/persistence"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

const (
	statsCacheKey = "triage:ticket_stats"
	statsCacheTTL = 60 * time.Second
)

// TicketService coordinates ticket workflows outside the triage pipeline:
// dashboard listing, agent responses, feedback and statistics.
type TicketService struct {
	tickets    repository.TicketRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketListFilter describes dashboard listing filters.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Categories []domain.TicketCategory
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListTickets returns tickets for the agent dashboard.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses:   filter.Statuses,
		Categories: filter.Categories,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// GetTicket fetches one ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, ticketID)
}

// RecordAgentResponse stores a human reply and resolves the ticket.
func (s *TicketService) RecordAgentResponse(ctx context.Context, agent *domain.Agent, ticketID, body string) (*domain.Ticket, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("response body required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket already closed", nil)
	}

	now := time.Now()
	ticket.AgentResponse = &body
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventAgentResponded,
		TicketID: ticket.ID,
		Payload: events.AgentRespondedPayload{
			AgentID:     agent.ID,
			BodyPreview: stringPreview(body, 120),
		},
	})
	return ticket, nil
}

// RecordFeedback stores customer feedback on an automated response.
func (s *TicketService) RecordFeedback(ctx context.Context, ticketID string, feedback domain.ResponseFeedback) (*domain.Ticket, error) {
	if !feedback.IsValid() {
		return nil, apperrors.NewValidationError("feedback must be helpful or not_helpful", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.ResponseFeedback = &feedback
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventFeedbackRecorded,
		TicketID: ticket.ID,
		Payload:  events.FeedbackRecordedPayload{Feedback: feedback},
	})
	return ticket, nil
}

// Stats aggregates dashboard counters, served from a short-lived Redis
// cache when available.
func (s *TicketService) Stats(ctx context.Context) (*domain.TicketStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return nil, err
	}
	s.storeStatsCache(ctx, stats)
	return stats, nil
}

func (s *TicketService) cachedStats(ctx context.Context) *domain.TicketStats {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats domain.TicketStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *TicketService) storeStatsCache(ctx context.Context, stats *domain.TicketStats) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *TicketService) invalidateStatsCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	_ = s.cache.Client.Del(ctx, statsCacheKey).Err()
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
