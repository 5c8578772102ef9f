package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestComposeBuildsContextBlocks(t *testing.T) {
	model := &fakeModel{reply: "Dear customer, your parcel is on its way."}
	composer := NewComposer(model)

	similar := []RetrievedTicket{
		{Ticket: resolvedTicket("Lost parcel", "Reshipped with tracking")},
		{Ticket: resolvedTicket("Late delivery", "Refunded shipping cost")},
	}
	knowledge := []RetrievedKnowledge{
		{Entry: domain.KnowledgeEntry{Title: "Shipping FAQ", Content: "Parcels arrive within 5 days."}},
	}

	text, err := composer.Compose(context.Background(), "Where is my order?", "Ordered two weeks ago",
		domain.CategoryShipping, similar, knowledge)
	require.NoError(t, err)
	assert.Equal(t, "Dear customer, your parcel is on its way.", text)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Subject: Where is my order?")
	assert.Contains(t, prompt, "Category: shipping")
	assert.Contains(t, prompt, "Similar Issue: Lost parcel\nResolution: Reshipped with tracking")
	assert.Contains(t, prompt, "Similar Issue: Late delivery\nResolution: Refunded shipping cost")
	assert.Contains(t, prompt, "Reshipped with tracking\n\nSimilar Issue: Late delivery")
	assert.Contains(t, prompt, "Shipping FAQ: Parcels arrive within 5 days.")
}

func TestComposeEmptyContextBlocks(t *testing.T) {
	model := &fakeModel{reply: "We are looking into it."}
	composer := NewComposer(model)

	text, err := composer.Compose(context.Background(), "subject", "description",
		domain.CategoryOther, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "We are looking into it.", text)

	require.Len(t, model.prompts, 1)
	assert.NotContains(t, model.prompts[0], "Similar Issue:")
}

func TestComposePassesTextThroughUnchanged(t *testing.T) {
	model := &fakeModel{reply: "  leading and trailing spaces kept  "}
	composer := NewComposer(model)

	text, err := composer.Compose(context.Background(), "s", "d", domain.CategoryOther, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "  leading and trailing spaces kept  ", text)
}

func TestComposeRendererError(t *testing.T) {
	model := &fakeModel{err: errors.New("renderer unavailable")}
	composer := NewComposer(model)

	_, err := composer.Compose(context.Background(), "s", "d", domain.CategoryOther, nil, nil)
	assert.Error(t, err)
}

func TestComposeEmptyReplyIsError(t *testing.T) {
	model := &fakeModel{reply: "   "}
	composer := NewComposer(model)

	_, err := composer.Compose(context.Background(), "s", "d", domain.CategoryOther, nil, nil)
	assert.Error(t, err)
}
