package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
)

// KnowledgeRepository encapsulates knowledge-base persistence.
type KnowledgeRepository interface {
	Create(ctx context.Context, entry *domain.KnowledgeEntry) error
	List(ctx context.Context, limit, offset int) ([]domain.KnowledgeEntry, error)
	ListByCategoryOrTags(ctx context.Context, category domain.TicketCategory, tags []string, limit int) ([]domain.KnowledgeEntry, error)
}

type knowledgeRepository struct {
	pool *pgxpool.Pool
}

// NewKnowledgeRepository instantiates repository.
func NewKnowledgeRepository(pool *pgxpool.Pool) KnowledgeRepository {
	return &knowledgeRepository{pool: pool}
}

const knowledgeColumns = `id, title, content, category, tags, created_at, updated_at`

func (r *knowledgeRepository) Create(ctx context.Context, entry *domain.KnowledgeEntry) error {
	const query = `
        INSERT INTO knowledge_base (title, content, category, tags)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		entry.Title,
		entry.Content,
		entry.Category,
		entry.Tags,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *knowledgeRepository) List(ctx context.Context, limit, offset int) ([]domain.KnowledgeEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + knowledgeColumns + `
        FROM knowledge_base
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanKnowledgeEntries(rows)
}

// ListByCategoryOrTags returns entries matching the category exactly or
// overlapping any of the given tags, most recent first.
func (r *knowledgeRepository) ListByCategoryOrTags(ctx context.Context, category domain.TicketCategory, tags []string, limit int) ([]domain.KnowledgeEntry, error) {
	if limit <= 0 {
		limit = 3
	}
	if tags == nil {
		tags = []string{}
	}
	const query = `
        SELECT ` + knowledgeColumns + `
        FROM knowledge_base
        WHERE category = $1 OR tags && $2
        ORDER BY created_at DESC
        LIMIT $3`
	rows, err := r.pool.Query(ctx, query, category, tags, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanKnowledgeEntries(rows)
}

func scanKnowledgeEntries(rows pgx.Rows) ([]domain.KnowledgeEntry, error) {
	var result []domain.KnowledgeEntry
	for rows.Next() {
		var entry domain.KnowledgeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.Content,
			&entry.Category,
			&entry.Tags,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
