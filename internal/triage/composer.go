package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Composer builds the response prompt from ticket and retrieved context and
// delegates rendering to the text model.
type Composer struct {
	model TextModel
}

// NewComposer constructs a composer.
func NewComposer(model TextModel) *Composer {
	return &Composer{model: model}
}

const responsePromptTemplate = `You are a helpful customer support agent. Generate a professional, empathetic response to this customer ticket.

Customer Issue:
Subject: %s
Description: %s
Category: %s

Relevant Knowledge Base:
%s

Similar Resolved Tickets:
%s

Guidelines:
1. Be empathetic and acknowledge the customer's concern
2. Provide a clear, actionable solution based on the knowledge base
3. Reference similar successful resolutions when applicable
4. Be concise but thorough
5. End with next steps or follow-up information
6. Maintain a professional, friendly tone

Generate a response that addresses the customer's specific issue:`

// Compose renders the automated response. The rendered text is passed
// through unchanged; an empty reply is treated as a renderer failure.
func (c *Composer) Compose(ctx context.Context, subject, description string, category domain.TicketCategory, similar []RetrievedTicket, knowledge []RetrievedKnowledge) (string, error) {
	prompt := fmt.Sprintf(responsePromptTemplate,
		subject,
		description,
		category,
		knowledgeContext(knowledge),
		similarTicketsContext(similar),
	)

	text, err := c.model.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("render response: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("renderer returned empty response")
	}
	return text, nil
}

func similarTicketsContext(similar []RetrievedTicket) string {
	blocks := make([]string, 0, len(similar))
	for _, item := range similar {
		resolution := ""
		if item.Ticket.AgentResponse != nil {
			resolution = *item.Ticket.AgentResponse
		}
		blocks = append(blocks, fmt.Sprintf("Similar Issue: %s\nResolution: %s", item.Ticket.Subject, resolution))
	}
	return strings.Join(blocks, "\n\n")
}

func knowledgeContext(knowledge []RetrievedKnowledge) string {
	blocks := make([]string, 0, len(knowledge))
	for _, item := range knowledge {
		blocks = append(blocks, fmt.Sprintf("%s: %s", item.Entry.Title, item.Entry.Content))
	}
	return strings.Join(blocks, "\n\n")
}
