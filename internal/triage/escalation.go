package triage

import "github.com/spec-kit/triage-service/internal/domain"

// Escalation reasons, surfaced verbatim to agents and callers.
const (
	ReasonLowConfidence     = "Low confidence in automated response"
	ReasonNegativeSentiment = "Highly negative customer sentiment"
	ReasonUrgentPriority    = "Urgent priority ticket"
	ReasonComplexTechnical  = "Complex technical issue"
	ReasonNoEscalation      = "Automated response appropriate"
)

// Verdict is the escalation decision for one ticket.
type Verdict struct {
	ShouldEscalate bool
	Reason         string
}

// DecideEscalation maps confidence, sentiment, priority and category to an
// escalate/no-escalate verdict. The rules form an ordered chain: the first
// match wins, so a low-confidence technical ticket reports low confidence,
// not the technical-specific reason.
func DecideEscalation(confidence, sentiment float64, priority domain.TicketPriority, category domain.TicketCategory) Verdict {
	if confidence < 0.6 {
		return Verdict{ShouldEscalate: true, Reason: ReasonLowConfidence}
	}
	if sentiment < -0.7 {
		return Verdict{ShouldEscalate: true, Reason: ReasonNegativeSentiment}
	}
	if priority == domain.TicketPriorityUrgent {
		return Verdict{ShouldEscalate: true, Reason: ReasonUrgentPriority}
	}
	if category == domain.CategoryTechnical && confidence < 0.8 {
		return Verdict{ShouldEscalate: true, Reason: ReasonComplexTechnical}
	}
	return Verdict{ShouldEscalate: false, Reason: ReasonNoEscalation}
}
