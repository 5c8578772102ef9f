package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/triage"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TicketsHandler exposes ticket intake and the agent dashboard endpoints.
type TicketsHandler struct {
	pipeline *triage.Pipeline
	service  *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(pipeline *triage.Pipeline, ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{pipeline: pipeline, service: ticketService}
}

// SubmitTicket POST /tickets runs the full triage pipeline.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.pipeline.ProcessTicket(c.UserContext(), triage.TicketSubmission{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Subject:       req.Subject,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": triageResult(result)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}

	response := dto.TicketListResponse{Tickets: make([]dto.TicketSummary, 0, len(tickets))}
	for i := range tickets {
		response.Tickets = append(response.Tickets, ticketSummary(&tickets[i]))
	}

	if c.QueryBool("include_stats") {
		stats, err := h.service.Stats(c.UserContext())
		if err != nil {
			return err
		}
		response.Stats = stats
	}
	return c.JSON(fiber.Map{"data": response})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// RespondToTicket POST /tickets/:id/response.
func (h *TicketsHandler) RespondToTicket(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.AgentResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.RecordAgentResponse(c.UserContext(), agent, c.Params("id"), req.Response)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// RecordFeedback POST /tickets/:id/feedback.
func (h *TicketsHandler) RecordFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.RecordFeedback(c.UserContext(), c.Params("id"), req.Feedback)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			filter.Categories = append(filter.Categories, domain.TicketCategory(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func triageResult(result *triage.Result) dto.TriageResultResponse {
	return dto.TriageResultResponse{
		Ticket:           ticketDetail(result.Ticket),
		Category:         result.Analysis.Category,
		Priority:         result.Analysis.Priority,
		SentimentScore:   result.Analysis.Sentiment,
		ConfidenceScore:  result.ConfidenceScore,
		ShouldEscalate:   result.ShouldEscalate,
		EscalationReason: result.EscalationReason,
		AutoResponse:     result.AutoResponse,
	}
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:              ticket.ID,
		ExternalKey:     ticket.ExternalKey,
		CustomerEmail:   ticket.CustomerEmail,
		Subject:         ticket.Subject,
		Category:        ticket.Category,
		Priority:        ticket.Priority,
		Status:          ticket.Status,
		ConfidenceScore: ticket.ConfidenceScore,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	return dto.TicketDetailResponse{
		ID:               ticket.ID,
		ExternalKey:      ticket.ExternalKey,
		CustomerEmail:    ticket.CustomerEmail,
		CustomerName:     ticket.CustomerName,
		Subject:          ticket.Subject,
		Description:      ticket.Description,
		Category:         ticket.Category,
		Priority:         ticket.Priority,
		Status:           ticket.Status,
		SentimentScore:   ticket.SentimentScore,
		ConfidenceScore:  ticket.ConfidenceScore,
		AutoResponse:     ticket.AutoResponse,
		AgentResponse:    ticket.AgentResponse,
		ResponseFeedback: ticket.ResponseFeedback,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
		ResolvedAt:       ticket.ResolvedAt,
	}
}
