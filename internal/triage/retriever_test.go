package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestRetrieveAssignsPlaceholderSimilarities(t *testing.T) {
	tickets := &fakeTicketSource{tickets: []domain.Ticket{
		resolvedTicket("Lost parcel", "Reshipped with tracking"),
		resolvedTicket("Delayed delivery", "Refunded shipping cost"),
	}}
	knowledge := &fakeKnowledgeSource{entries: []domain.KnowledgeEntry{
		{Title: "Shipping FAQ", Content: "Parcels arrive within 5 days."},
	}}
	retriever := NewRetriever(tickets, knowledge, testLogger(), testMetrics())

	result := retriever.Retrieve(context.Background(), domain.CategoryShipping, []string{"delay"})

	require.Len(t, result.SimilarTickets, 2)
	require.Len(t, result.KnowledgeMatches, 1)
	for _, item := range result.SimilarTickets {
		assert.InDelta(t, 0.8, item.Similarity, 1e-9)
	}
	assert.InDelta(t, 0.7, result.KnowledgeMatches[0].Similarity, 1e-9)
}

func TestRetrieveCapsResultsAtThree(t *testing.T) {
	tickets := &fakeTicketSource{tickets: []domain.Ticket{
		resolvedTicket("a", "r"), resolvedTicket("b", "r"),
		resolvedTicket("c", "r"), resolvedTicket("d", "r"),
	}}
	knowledge := &fakeKnowledgeSource{entries: []domain.KnowledgeEntry{
		{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"},
	}}
	retriever := NewRetriever(tickets, knowledge, testLogger(), testMetrics())

	result := retriever.Retrieve(context.Background(), domain.CategoryReturns, nil)

	assert.Len(t, result.SimilarTickets, 3)
	assert.Len(t, result.KnowledgeMatches, 3)
}

func TestRetrievePreservesStoreOrder(t *testing.T) {
	knowledge := &fakeKnowledgeSource{entries: []domain.KnowledgeEntry{
		{Title: "newest"}, {Title: "older"}, {Title: "oldest"},
	}}
	retriever := NewRetriever(&fakeTicketSource{}, knowledge, testLogger(), testMetrics())

	result := retriever.Retrieve(context.Background(), domain.CategoryPayment, nil)

	require.Len(t, result.KnowledgeMatches, 3)
	assert.Equal(t, "newest", result.KnowledgeMatches[0].Entry.Title)
	assert.Equal(t, "older", result.KnowledgeMatches[1].Entry.Title)
	assert.Equal(t, "oldest", result.KnowledgeMatches[2].Entry.Title)
}

func TestRetrieveDegradesToEmptyOnStoreFailure(t *testing.T) {
	retriever := NewRetriever(
		&fakeTicketSource{err: errStoreDown},
		&fakeKnowledgeSource{err: errStoreDown},
		testLogger(), testMetrics())

	result := retriever.Retrieve(context.Background(), domain.CategoryShipping, nil)

	assert.NotNil(t, result.SimilarTickets)
	assert.NotNil(t, result.KnowledgeMatches)
	assert.Empty(t, result.SimilarTickets)
	assert.Empty(t, result.KnowledgeMatches)
}

func TestRetrievePartialDegradation(t *testing.T) {
	knowledge := &fakeKnowledgeSource{entries: []domain.KnowledgeEntry{{Title: "FAQ"}}}
	retriever := NewRetriever(&fakeTicketSource{err: errStoreDown}, knowledge, testLogger(), testMetrics())

	result := retriever.Retrieve(context.Background(), domain.CategoryShipping, nil)

	assert.Empty(t, result.SimilarTickets)
	assert.Len(t, result.KnowledgeMatches, 1)
}

func TestRetrieveIdempotentAgainstUnchangedStore(t *testing.T) {
	tickets := &fakeTicketSource{tickets: []domain.Ticket{resolvedTicket("a", "r")}}
	knowledge := &fakeKnowledgeSource{entries: []domain.KnowledgeEntry{{Title: "FAQ"}}}
	retriever := NewRetriever(tickets, knowledge, testLogger(), testMetrics())

	first := retriever.Retrieve(context.Background(), domain.CategoryShipping, []string{"delay"})
	second := retriever.Retrieve(context.Background(), domain.CategoryShipping, []string{"delay"})

	assert.Equal(t, first, second)
	assert.Equal(t, 2, tickets.calls)
	assert.Equal(t, 2, knowledge.calls)
}
