package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// KnowledgeService manages knowledge-base entries.
type KnowledgeService struct {
	knowledge  repository.KnowledgeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewKnowledgeService constructs the service.
func NewKnowledgeService(knowledge repository.KnowledgeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{knowledge: knowledge, dispatcher: dispatcher, logger: logger}
}

// KnowledgeCreateInput describes a new knowledge entry.
type KnowledgeCreateInput struct {
	Title    string
	Content  string
	Category domain.TicketCategory
	Tags     []string
}

// List returns knowledge entries, most recent first.
func (s *KnowledgeService) List(ctx context.Context, limit, offset int) ([]domain.KnowledgeEntry, error) {
	return s.knowledge.List(ctx, limit, offset)
}

// Create stores a new knowledge entry.
func (s *KnowledgeService) Create(ctx context.Context, input KnowledgeCreateInput) (*domain.KnowledgeEntry, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, apperrors.NewValidationError("title and content required", nil)
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.IsValid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": category})
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := &domain.KnowledgeEntry{
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     tags,
	}
	if err := s.knowledge.Create(ctx, entry); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventKnowledgeAdded,
			Timestamp: time.Now(),
			Payload: events.KnowledgeAddedPayload{
				EntryID:  entry.ID,
				Title:    entry.Title,
				Category: entry.Category,
			},
		})
	}
	return entry, nil
}
