package domain

import "time"

// Agent is a human support agent who handles escalated tickets.
type Agent struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
