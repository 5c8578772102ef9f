package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestDecideEscalationLowConfidence(t *testing.T) {
	verdict := DecideEscalation(0.55, 0.5, domain.TicketPriorityLow, domain.CategoryShipping)

	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonLowConfidence, verdict.Reason)
}

func TestDecideEscalationLowConfidenceWinsOverLaterRules(t *testing.T) {
	// Urgent and technical both apply, but the low-confidence rule is
	// checked first.
	verdict := DecideEscalation(0.5, 0.0, domain.TicketPriorityUrgent, domain.CategoryTechnical)

	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonLowConfidence, verdict.Reason)
}

func TestDecideEscalationConfidenceBoundary(t *testing.T) {
	// The threshold is strict: exactly 0.6 passes, just below does not.
	verdict := DecideEscalation(0.6, 0.0, domain.TicketPriorityLow, domain.CategoryShipping)
	assert.False(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonNoEscalation, verdict.Reason)

	verdict = DecideEscalation(0.5999, 0.0, domain.TicketPriorityLow, domain.CategoryShipping)
	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonLowConfidence, verdict.Reason)
}

func TestDecideEscalationNegativeSentiment(t *testing.T) {
	verdict := DecideEscalation(0.9, -0.8, domain.TicketPriorityLow, domain.CategoryShipping)

	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonNegativeSentiment, verdict.Reason)
}

func TestDecideEscalationSentimentBoundary(t *testing.T) {
	// Exactly -0.7 does not trigger; the rule is strictly less-than.
	verdict := DecideEscalation(0.9, -0.7, domain.TicketPriorityLow, domain.CategoryShipping)

	assert.False(t, verdict.ShouldEscalate)
}

func TestDecideEscalationUrgentPriority(t *testing.T) {
	verdict := DecideEscalation(0.98, 0.0, domain.TicketPriorityUrgent, domain.CategoryShipping)

	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonUrgentPriority, verdict.Reason)
}

func TestDecideEscalationTechnicalBelowThreshold(t *testing.T) {
	verdict := DecideEscalation(0.75, 0.0, domain.TicketPriorityLow, domain.CategoryTechnical)

	assert.True(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonComplexTechnical, verdict.Reason)
}

func TestDecideEscalationTechnicalAtThreshold(t *testing.T) {
	verdict := DecideEscalation(0.8, 0.0, domain.TicketPriorityLow, domain.CategoryTechnical)

	assert.False(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonNoEscalation, verdict.Reason)
}

func TestDecideEscalationNoRuleMatches(t *testing.T) {
	verdict := DecideEscalation(0.9, 0.3, domain.TicketPriorityMedium, domain.CategoryReturns)

	assert.False(t, verdict.ShouldEscalate)
	assert.Equal(t, ReasonNoEscalation, verdict.Reason)
}
