package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
)

func setupSuggestionRepo(t *testing.T) (*repository.SuggestionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewSuggestionRepository(db)
	return repo, mock, db
}

func TestSuggestionRepository_Insert(t *testing.T) {
	repo, mock, db := setupSuggestionRepo(t)
	defer db.Close()

	t.Run("inserts record and fills id and timestamp", func(t *testing.T) {
		rec := &domain.SuggestionRecord{
			UserID:  "9c9d2c3e-2b9f-4c8a-9a59-0f0c6cbe6f11",
			Type:    domain.SuggestionPriority,
			Payload: json.RawMessage(`{"priority":"urgent","score":80}`),
			Context: json.RawMessage(`{"title":"Fix broken login"}`),
		}

		mock.ExpectQuery(`INSERT INTO suggestions`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				rec.UserID,
				nil, // project_id
				nil, // task_id
				"priority",
				sqlmock.AnyArg(), // payload JSONB
				sqlmock.AnyArg(), // context JSONB
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		err := repo.Insert(context.Background(), rec)
		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates insert failures", func(t *testing.T) {
		rec := &domain.SuggestionRecord{
			UserID:  "9c9d2c3e-2b9f-4c8a-9a59-0f0c6cbe6f11",
			Type:    domain.SuggestionBreakdown,
			Payload: json.RawMessage(`{}`),
			Context: json.RawMessage(`{}`),
		}

		mock.ExpectQuery(`INSERT INTO suggestions`).
			WillReturnError(errors.New("connection reset"))

		err := repo.Insert(context.Background(), rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		err := repo.Insert(context.Background(), &domain.SuggestionRecord{
			Type: domain.SuggestionPriority,
		})
		require.Error(t, err)
	})
}

func TestSuggestionRepository_ListByUser(t *testing.T) {
	repo, mock, db := setupSuggestionRepo(t)
	defer db.Close()

	columns := []string{
		"id", "user_id", "project_id", "task_id", "suggestion_type",
		"payload", "context", "is_applied", "feedback", "created_at",
	}

	t.Run("returns records newest first", func(t *testing.T) {
		userID := "9c9d2c3e-2b9f-4c8a-9a59-0f0c6cbe6f11"
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM suggestions`).
			WithArgs(userID, "priority", 10).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("s2", userID, nil, nil, "priority", []byte(`{"score":80}`), []byte(`{}`), false, nil, now).
				AddRow("s1", userID, nil, nil, "priority", []byte(`{"score":50}`), []byte(`{}`), true, "useful", now.Add(-time.Hour)))

		items, err := repo.ListByUser(context.Background(), userID, domain.SuggestionPriority, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "s2", items[0].ID)
		assert.False(t, items[0].IsApplied)
		assert.Nil(t, items[0].Feedback)

		assert.Equal(t, "s1", items[1].ID)
		assert.True(t, items[1].IsApplied)
		require.NotNil(t, items[1].Feedback)
		assert.Equal(t, "useful", *items[1].Feedback)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults limit and matches all types", func(t *testing.T) {
		userID := "9c9d2c3e-2b9f-4c8a-9a59-0f0c6cbe6f11"

		mock.ExpectQuery(`SELECT (.+) FROM suggestions`).
			WithArgs(userID, "", 50).
			WillReturnRows(sqlmock.NewRows(columns))

		items, err := repo.ListByUser(context.Background(), userID, "", 0)
		require.NoError(t, err)
		assert.Empty(t, items)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSuggestionRepository_GetByID(t *testing.T) {
	repo, mock, db := setupSuggestionRepo(t)
	defer db.Close()

	t.Run("maps missing rows to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM suggestions`).
			WithArgs("user-1", "nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "user-1", "nope")
		assert.ErrorIs(t, err, domain.ErrSuggestionNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
