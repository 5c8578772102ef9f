package domain

import "time"

// KnowledgeEntry is a stored title/content record used as grounding
// context when composing automated responses.
type KnowledgeEntry struct {
	ID        string
	Title     string
	Content   string
	Category  TicketCategory
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
