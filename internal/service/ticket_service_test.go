package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

type fakeTicketRepo struct {
	tickets    map[string]*domain.Ticket
	updated    []*domain.Ticket
	statsCalls int
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
	for _, t := range tickets {
		repo.tickets[t.ID] = t
	}
	return repo
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	f.updated = append(f.updated, ticket)
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByExternalKey(ctx context.Context, key string) (*domain.Ticket, error) {
	for _, t := range f.tickets {
		if t.ExternalKey == key {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", nil)
}

func (f *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(f.tickets))
	for _, t := range f.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketRepo) ListResolvedByCategory(ctx context.Context, category domain.TicketCategory, limit int) ([]domain.Ticket, error) {
	return nil, nil
}

func (f *fakeTicketRepo) Stats(ctx context.Context) (*domain.TicketStats, error) {
	f.statsCalls++
	return &domain.TicketStats{Total: int64(len(f.tickets))}, nil
}

func newTestTicketService(repo *fakeTicketRepo, dispatcher events.Dispatcher) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func testAgent() *domain.Agent {
	return &domain.Agent{ID: "agent-1", Email: "agent@example.com", IsActive: true}
}

func TestRecordAgentResponseResolvesTicket(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1", Status: domain.TicketStatusEscalated})
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventAgentResponded, func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := newTestTicketService(repo, dispatcher)
	ticket, err := svc.RecordAgentResponse(context.Background(), testAgent(), "t-1", "Here is how to fix it.")

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, ticket.Status)
	require.NotNil(t, ticket.AgentResponse)
	assert.Equal(t, "Here is how to fix it.", *ticket.AgentResponse)
	require.NotNil(t, ticket.ResolvedAt)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.AgentRespondedPayload)
	require.True(t, ok)
	assert.Equal(t, "agent-1", payload.AgentID)
}

func TestRecordAgentResponseRejectsEmptyBody(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1", Status: domain.TicketStatusEscalated})
	svc := newTestTicketService(repo, events.NewInMemoryDispatcher())

	_, err := svc.RecordAgentResponse(context.Background(), testAgent(), "t-1", "   ")

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Empty(t, repo.updated)
}

func TestRecordAgentResponseRejectsClosedTicket(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1", Status: domain.TicketStatusClosed})
	svc := newTestTicketService(repo, events.NewInMemoryDispatcher())

	_, err := svc.RecordAgentResponse(context.Background(), testAgent(), "t-1", "reply")

	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRecordFeedbackStoresValue(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1", Status: domain.TicketStatusAutoResponded})
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventFeedbackRecorded, func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := newTestTicketService(repo, dispatcher)
	ticket, err := svc.RecordFeedback(context.Background(), "t-1", domain.FeedbackHelpful)

	require.NoError(t, err)
	require.NotNil(t, ticket.ResponseFeedback)
	assert.Equal(t, domain.FeedbackHelpful, *ticket.ResponseFeedback)
	assert.Len(t, published, 1)
}

func TestRecordFeedbackRejectsUnknownValue(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1"})
	svc := newTestTicketService(repo, events.NewInMemoryDispatcher())

	_, err := svc.RecordFeedback(context.Background(), "t-1", domain.ResponseFeedback("meh"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestStatsFallsBackToRepositoryWithoutCache(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t-1"}, &domain.Ticket{ID: "t-2"})
	svc := newTestTicketService(repo, events.NewInMemoryDispatcher())

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, 1, repo.statsCalls)
}
