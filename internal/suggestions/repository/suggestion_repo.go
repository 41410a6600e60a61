package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

// SuggestionRepository handles PostgreSQL operations for suggestion audit
// records. Records are insert-only from the engine's point of view.
type SuggestionRepository struct {
	db *sql.DB
}

// NewSuggestionRepository creates a new SuggestionRepository.
func NewSuggestionRepository(db *sql.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Insert persists a new suggestion record and fills in its id and
// creation timestamp. It never updates an existing row.
func (r *SuggestionRepository) Insert(ctx context.Context, rec *domain.SuggestionRecord) error {
	if rec.UserID == "" {
		return fmt.Errorf("user id required")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	const q = `
INSERT INTO suggestions (id, user_id, project_id, task_id, suggestion_type, payload, context, is_applied)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, false)
RETURNING created_at;
`
	err := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.UserID,
		rec.ProjectID,
		rec.TaskID,
		string(rec.Type),
		[]byte(rec.Payload),
		[]byte(rec.Context),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// ListByUser returns a user's suggestion records, newest first. An empty
// suggestionType matches all types. limit <= 0 falls back to 50.
func (r *SuggestionRepository) ListByUser(ctx context.Context, userID string, suggestionType domain.SuggestionType, limit int) ([]domain.SuggestionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT id, user_id, project_id, task_id, suggestion_type, payload, context, is_applied, feedback, created_at
FROM suggestions
WHERE user_id = $1 AND ($2 = '' OR suggestion_type = $2)
ORDER BY created_at DESC
LIMIT $3;
`
	rows, err := r.db.QueryContext(ctx, q, userID, string(suggestionType), limit)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SuggestionRecord, 0, limit)
	for rows.Next() {
		var rec domain.SuggestionRecord
		var payload, contextJSON []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ProjectID,
			&rec.TaskID,
			&rec.Type,
			&payload,
			&contextJSON,
			&rec.IsApplied,
			&rec.Feedback,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Payload = payload
		rec.Context = contextJSON
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single record owned by the given user.
func (r *SuggestionRepository) GetByID(ctx context.Context, userID, id string) (*domain.SuggestionRecord, error) {
	const q = `
SELECT id, user_id, project_id, task_id, suggestion_type, payload, context, is_applied, feedback, created_at
FROM suggestions
WHERE user_id = $1 AND id = $2;
`
	var rec domain.SuggestionRecord
	var payload, contextJSON []byte
	err := r.db.QueryRowContext(ctx, q, userID, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ProjectID,
		&rec.TaskID,
		&rec.Type,
		&payload,
		&contextJSON,
		&rec.IsApplied,
		&rec.Feedback,
		&rec.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, err
	}
	rec.Payload = payload
	rec.Context = contextJSON
	return &rec, nil
}
