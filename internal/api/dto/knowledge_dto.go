package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// CreateKnowledgeRequest payload.
type CreateKnowledgeRequest struct {
	Title    string                `json:"title"`
	Content  string                `json:"content"`
	Category domain.TicketCategory `json:"category"`
	Tags     []string              `json:"tags"`
}

// KnowledgeEntryResponse response row.
type KnowledgeEntryResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Category  domain.TicketCategory `json:"category"`
	Tags      []string              `json:"tags"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}
