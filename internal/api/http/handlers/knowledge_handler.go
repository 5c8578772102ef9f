package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// KnowledgeHandler manages knowledge-base endpoints.
type KnowledgeHandler struct {
	service *service.KnowledgeService
}

// NewKnowledgeHandler constructs handler.
func NewKnowledgeHandler(knowledgeService *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{service: knowledgeService}
}

// List GET /knowledge.
func (h *KnowledgeHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)

	entries, err := h.service.List(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.KnowledgeEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, knowledgeEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /knowledge.
func (h *KnowledgeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateKnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.service.Create(c.UserContext(), service.KnowledgeCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": knowledgeEntryResponse(entry)})
}

func knowledgeEntryResponse(entry *domain.KnowledgeEntry) dto.KnowledgeEntryResponse {
	return dto.KnowledgeEntryResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		Category:  entry.Category,
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
