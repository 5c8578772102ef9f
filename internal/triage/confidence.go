package triage

import "github.com/spec-kit/triage-service/internal/domain"

const baseConfidence = 0.5

// ScoreConfidence combines retrieval quality and category certainty into a
// single confidence value in [0,1]. Pure and deterministic.
func ScoreConfidence(similar []RetrievedTicket, knowledge []RetrievedKnowledge, analysis domain.Analysis) float64 {
	confidence := baseConfidence

	if len(similar) > 0 {
		var sum float64
		for _, item := range similar {
			sum += item.Similarity
		}
		confidence += (sum / float64(len(similar))) * 0.3
	}

	if len(knowledge) > 0 {
		var sum float64
		for _, item := range knowledge {
			sum += item.Similarity
		}
		confidence += (sum / float64(len(knowledge))) * 0.2
	}

	if isCommonCategory(analysis.Category) {
		confidence += 0.1
	}

	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// isCommonCategory reports whether automated handling for the category has
// a well-trodden resolution path.
func isCommonCategory(category domain.TicketCategory) bool {
	switch category {
	case domain.CategoryShipping, domain.CategoryReturns, domain.CategoryPayment, domain.CategoryQuality:
		return true
	}
	return false
}
