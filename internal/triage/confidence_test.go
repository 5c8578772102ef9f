package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestScoreConfidenceBaseOnly(t *testing.T) {
	analysis := domain.Analysis{Category: domain.CategoryOther}

	score := ScoreConfidence(nil, nil, analysis)

	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestScoreConfidenceWithRetrievalAndCommonCategory(t *testing.T) {
	similar := []RetrievedTicket{
		{Similarity: 0.8},
		{Similarity: 0.8},
	}
	knowledge := []RetrievedKnowledge{
		{Similarity: 0.7},
	}
	analysis := domain.Analysis{Category: domain.CategoryShipping}

	// 0.5 + 0.8*0.3 + 0.7*0.2 + 0.1 = 0.98
	score := ScoreConfidence(similar, knowledge, analysis)

	assert.InDelta(t, 0.98, score, 1e-9)
}

func TestScoreConfidenceCommonCategoryBoost(t *testing.T) {
	for _, category := range []domain.TicketCategory{
		domain.CategoryShipping, domain.CategoryReturns, domain.CategoryPayment, domain.CategoryQuality,
	} {
		score := ScoreConfidence(nil, nil, domain.Analysis{Category: category})
		assert.InDelta(t, 0.6, score, 1e-9, "category %s", category)
	}
	for _, category := range []domain.TicketCategory{
		domain.CategoryAccount, domain.CategoryTechnical, domain.CategoryOther,
	} {
		score := ScoreConfidence(nil, nil, domain.Analysis{Category: category})
		assert.InDelta(t, 0.5, score, 1e-9, "category %s", category)
	}
}

func TestScoreConfidenceClampedToOne(t *testing.T) {
	similar := []RetrievedTicket{{Similarity: 1.0}}
	knowledge := []RetrievedKnowledge{{Similarity: 1.0}}
	analysis := domain.Analysis{Category: domain.CategoryPayment}

	// 0.5 + 0.3 + 0.2 + 0.1 = 1.1, clamped.
	score := ScoreConfidence(similar, knowledge, analysis)

	assert.Equal(t, 1.0, score)
}

func TestScoreConfidenceDeterministic(t *testing.T) {
	similar := []RetrievedTicket{{Similarity: 0.6}, {Similarity: 0.9}}
	knowledge := []RetrievedKnowledge{{Similarity: 0.4}}
	analysis := domain.Analysis{Category: domain.CategoryQuality}

	first := ScoreConfidence(similar, knowledge, analysis)
	second := ScoreConfidence(similar, knowledge, analysis)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)
}
