package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen          TicketStatus = "open"
	TicketStatusAutoResponded TicketStatus = "auto-responded"
	TicketStatusEscalated     TicketStatus = "escalated"
	TicketStatusResolved      TicketStatus = "resolved"
	TicketStatusClosed        TicketStatus = "closed"
)

// TicketPriority enumerates urgency as reported by the classifier.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// IsValid reports whether the priority is one of the known values.
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// TicketCategory enumerates the fixed classification set.
type TicketCategory string

const (
	CategoryShipping  TicketCategory = "shipping"
	CategoryReturns   TicketCategory = "returns"
	CategoryPayment   TicketCategory = "payment"
	CategoryQuality   TicketCategory = "quality"
	CategoryAccount   TicketCategory = "account"
	CategoryTechnical TicketCategory = "technical"
	CategoryOther     TicketCategory = "other"
)

// IsValid reports whether the category is one of the known values.
func (c TicketCategory) IsValid() bool {
	switch c {
	case CategoryShipping, CategoryReturns, CategoryPayment, CategoryQuality,
		CategoryAccount, CategoryTechnical, CategoryOther:
		return true
	}
	return false
}

// ResponseFeedback captures how the customer rated an automated response.
type ResponseFeedback string

const (
	FeedbackHelpful    ResponseFeedback = "helpful"
	FeedbackNotHelpful ResponseFeedback = "not_helpful"
)

// IsValid reports whether the feedback value is known.
func (f ResponseFeedback) IsValid() bool {
	return f == FeedbackHelpful || f == FeedbackNotHelpful
}

// Ticket is the aggregate for customer support requests, including the
// fields derived by the triage pipeline.
type Ticket struct {
	ID               string
	ExternalKey      string
	CustomerEmail    string
	CustomerName     *string
	Subject          string
	Description      string
	Category         TicketCategory
	Priority         TicketPriority
	Status           TicketStatus
	SentimentScore   float64
	ConfidenceScore  float64
	AutoResponse     string
	AgentResponse    *string
	ResponseFeedback *ResponseFeedback
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ResolvedAt       *time.Time
}

// Analysis is the classifier verdict for one ticket. It is produced once
// per ticket and never mutated afterward.
type Analysis struct {
	Category        TicketCategory
	Priority        TicketPriority
	Sentiment       float64
	Tags            []string
	UrgencyKeywords []string
}

// FallbackAnalysis returns the deterministic analysis substituted whenever
// the classifier produces output that cannot be parsed or validated.
func FallbackAnalysis() Analysis {
	return Analysis{
		Category:        CategoryOther,
		Priority:        TicketPriorityMedium,
		Sentiment:       0,
		Tags:            []string{},
		UrgencyKeywords: []string{},
	}
}

// TicketStats aggregates dashboard counters over the ticket table.
type TicketStats struct {
	Total              int64            `json:"total"`
	Open               int64            `json:"open"`
	Escalated          int64            `json:"escalated"`
	Resolved           int64            `json:"resolved"`
	ByCategory         map[string]int64 `json:"by_category"`
	AvgResolutionHours float64          `json:"avg_resolution_hours"`
}
