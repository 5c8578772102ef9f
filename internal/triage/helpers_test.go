package triage

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/observability"
)

// fakeModel returns a scripted reply, recording every prompt it receives.
type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTicketSource struct {
	tickets []domain.Ticket
	err     error
	calls   int
}

func (f *fakeTicketSource) ListResolvedByCategory(_ context.Context, _ domain.TicketCategory, limit int) ([]domain.Ticket, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.tickets) > limit {
		return f.tickets[:limit], nil
	}
	return f.tickets, nil
}

type fakeKnowledgeSource struct {
	entries []domain.KnowledgeEntry
	err     error
	calls   int
}

func (f *fakeKnowledgeSource) ListByCategoryOrTags(_ context.Context, _ domain.TicketCategory, _ []string, limit int) ([]domain.KnowledgeEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeTicketWriter struct {
	created []*domain.Ticket
	err     error
}

func (f *fakeTicketWriter) Create(_ context.Context, ticket *domain.Ticket) error {
	if f.err != nil {
		return f.err
	}
	ticket.ID = "ticket-1"
	f.created = append(f.created, ticket)
	return nil
}

var errStoreDown = errors.New("store unavailable")

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

func resolvedTicket(subject, agentResponse string) domain.Ticket {
	return domain.Ticket{
		Subject:       subject,
		Status:        domain.TicketStatusResolved,
		AgentResponse: &agentResponse,
	}
}
