package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// SubmitTicketRequest payload for the public intake endpoint.
type SubmitTicketRequest struct {
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
}

// TriageResultResponse reports what the pipeline decided for a submission.
type TriageResultResponse struct {
	Ticket           TicketDetailResponse  `json:"ticket"`
	Category         domain.TicketCategory `json:"category"`
	Priority         domain.TicketPriority `json:"priority"`
	SentimentScore   float64               `json:"sentiment_score"`
	ConfidenceScore  float64               `json:"confidence_score"`
	ShouldEscalate   bool                  `json:"should_escalate"`
	EscalationReason string                `json:"escalation_reason"`
	AutoResponse     string                `json:"auto_response,omitempty"`
}

// TicketSummary response row for listings.
type TicketSummary struct {
	ID              string                `json:"id"`
	ExternalKey     string                `json:"external_key"`
	CustomerEmail   string                `json:"customer_email"`
	Subject         string                `json:"subject"`
	Category        domain.TicketCategory `json:"category"`
	Priority        domain.TicketPriority `json:"priority"`
	Status          domain.TicketStatus   `json:"status"`
	ConfidenceScore float64               `json:"confidence_score"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID               string                   `json:"id"`
	ExternalKey      string                   `json:"external_key"`
	CustomerEmail    string                   `json:"customer_email"`
	CustomerName     *string                  `json:"customer_name"`
	Subject          string                   `json:"subject"`
	Description      string                   `json:"description"`
	Category         domain.TicketCategory    `json:"category"`
	Priority         domain.TicketPriority    `json:"priority"`
	Status           domain.TicketStatus      `json:"status"`
	SentimentScore   float64                  `json:"sentiment_score"`
	ConfidenceScore  float64                  `json:"confidence_score"`
	AutoResponse     string                   `json:"auto_response,omitempty"`
	AgentResponse    *string                  `json:"agent_response"`
	ResponseFeedback *domain.ResponseFeedback `json:"response_feedback"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	ResolvedAt       *time.Time               `json:"resolved_at"`
}

// TicketListResponse wraps a listing plus optional aggregate stats.
type TicketListResponse struct {
	Tickets []TicketSummary     `json:"tickets"`
	Stats   *domain.TicketStats `json:"stats,omitempty"`
}

// AgentResponseRequest payload for a human reply.
type AgentResponseRequest struct {
	Response string `json:"response"`
}

// FeedbackRequest payload for customer feedback on an automated reply.
type FeedbackRequest struct {
	Feedback domain.ResponseFeedback `json:"feedback"`
}
