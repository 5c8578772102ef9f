package events

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketProcessed  EventType = "ticket_processed"
	EventTicketEscalated  EventType = "ticket_escalated"
	EventAgentResponded   EventType = "agent_responded"
	EventFeedbackRecorded EventType = "feedback_recorded"
	EventKnowledgeAdded   EventType = "knowledge_added"
)

// Event represents a domain event emitted by the pipeline and services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketProcessedPayload payload.
type TicketProcessedPayload struct {
	ExternalKey     string                `json:"external_key"`
	Category        domain.TicketCategory `json:"category"`
	Priority        domain.TicketPriority `json:"priority"`
	Status          domain.TicketStatus   `json:"status"`
	ConfidenceScore float64               `json:"confidence_score"`
	SentimentScore  float64               `json:"sentiment_score"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	ExternalKey     string                `json:"external_key"`
	Category        domain.TicketCategory `json:"category"`
	Priority        domain.TicketPriority `json:"priority"`
	Reason          string                `json:"reason"`
	ConfidenceScore float64               `json:"confidence_score"`
}

// AgentRespondedPayload payload.
type AgentRespondedPayload struct {
	AgentID     string `json:"agent_id"`
	BodyPreview string `json:"body_preview"`
}

// FeedbackRecordedPayload payload.
type FeedbackRecordedPayload struct {
	Feedback domain.ResponseFeedback `json:"feedback"`
}

// KnowledgeAddedPayload payload.
type KnowledgeAddedPayload struct {
	EntryID  string                `json:"entry_id"`
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
}
