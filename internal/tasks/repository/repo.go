package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	sugdomain "github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/tasks/domain"
)

// TaskRepository handles PostgreSQL operations for tasks.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
t.id, p.public_id, t.creator_id, t.assignee_id, t.title, t.description,
t.status, t.priority, t.task_type, t.due_date, t.created_at, t.updated_at, t.completed_at`

// Create inserts a new task into the given project.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.Title == "" {
		return fmt.Errorf("title required")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.TaskType == "" {
		t.TaskType = "general"
	}

	const q = `
INSERT INTO tasks (id, project_id, creator_id, assignee_id, title, description, status, priority, task_type, due_date)
SELECT $1, p.id, $3::uuid, $4, $5, $6, $7, $8, $9, $10
FROM projects p
WHERE p.public_id = $2 AND p.deleted_at IS NULL
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q,
		t.ID,
		t.ProjectPublic,
		t.CreatorID,
		t.AssigneeID,
		t.Title,
		t.Description,
		string(t.Status),
		t.Priority,
		t.TaskType,
		t.DueDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// ListByProject returns a project's non-deleted tasks, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectPublicID string) ([]domain.Task, error) {
	q := `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE p.public_id = $1 AND t.deleted_at IS NULL
ORDER BY t.created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, projectPublicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// UpdateStatus moves a task through its lifecycle. Transitions to done
// stamp completed_at; every other transition clears it.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	q := `
UPDATE tasks t
SET status = $2,
    completed_at = CASE WHEN $2 = 'done' THEN now() ELSE NULL END,
    updated_at = now()
FROM projects p
WHERE t.id = $1 AND p.id = t.project_id AND t.deleted_at IS NULL
RETURNING ` + taskColumns + `;
`
	row := r.db.QueryRowContext(ctx, q, taskID, string(status))
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// RecentCompleted returns up to limit of the user's most recently
// completed tasks as the read-only projection the time estimator
// consumes.
func (r *TaskRepository) RecentCompleted(ctx context.Context, userID string, limit int) ([]sugdomain.CompletedTask, error) {
	if limit <= 0 || limit > sugdomain.MaxHistoryForEstimate {
		limit = sugdomain.MaxHistoryDefault
	}

	const q = `
SELECT created_at, completed_at, priority
FROM tasks
WHERE assignee_id = $1::uuid
  AND status = 'done'
  AND completed_at IS NOT NULL
  AND deleted_at IS NULL
ORDER BY completed_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query completed tasks: %w", err)
	}
	defer rows.Close()

	out := make([]sugdomain.CompletedTask, 0, limit)
	for rows.Next() {
		var ct sugdomain.CompletedTask
		var priority string
		if err := rows.Scan(&ct.CreatedAt, &ct.CompletedAt, &priority); err != nil {
			return nil, err
		}
		ct.Priority = sugdomain.Priority(priority)
		out = append(out, ct)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status string
	err := row.Scan(
		&t.ID,
		&t.ProjectPublic,
		&t.CreatorID,
		&t.AssigneeID,
		&t.Title,
		&t.Description,
		&status,
		&t.Priority,
		&t.TaskType,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
