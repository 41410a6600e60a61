package http_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge-hq/taskforge-backend/internal/auth"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/heuristics"
	sughttp "github.com/taskforge-hq/taskforge-backend/internal/suggestions/http"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/service"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *sql.DB) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	engine := heuristics.NewEngine(heuristics.DefaultRules())
	svc := service.NewSuggestionService(engine, repository.NewSuggestionRepository(db), nil, nil, nil)

	r := gin.New()
	grp := r.Group("/api/v1/suggestions", auth.WithUser())
	sughttp.New(svc).Register(grp)
	return r, mock, db
}

func doJSON(r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSuggestionRoutes(t *testing.T) {
	t.Run("priority returns the scored suggestion", func(t *testing.T) {
		r, mock, db := setupRouter(t)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO suggestions`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		w := doJSON(r, http.MethodPost, "/api/v1/suggestions/priority", "user-1", gin.H{
			"title": "Fix broken login",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK           bool   `json:"ok"`
			SuggestionID string `json:"suggestion_id"`
			Result       struct {
				Priority string `json:"priority"`
				Score    int    `json:"score"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.SuggestionID)
		assert.Equal(t, "urgent", resp.Result.Priority)
		assert.Equal(t, 80, resp.Result.Score)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank title maps to 400", func(t *testing.T) {
		r, mock, db := setupRouter(t)
		defer db.Close()

		w := doJSON(r, http.MethodPost, "/api/v1/suggestions/estimate", "user-1", gin.H{
			"title": "   ",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing identity maps to 401", func(t *testing.T) {
		r, _, db := setupRouter(t)
		defer db.Close()

		w := doJSON(r, http.MethodPost, "/api/v1/suggestions/breakdown", "", gin.H{
			"title": "Build export API",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		r, _, db := setupRouter(t)
		defer db.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions/assignee", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-Id", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list forwards type and limit", func(t *testing.T) {
		r, mock, db := setupRouter(t)
		defer db.Close()

		columns := []string{
			"id", "user_id", "project_id", "task_id", "suggestion_type",
			"payload", "context", "is_applied", "feedback", "created_at",
		}
		mock.ExpectQuery(`SELECT (.+) FROM suggestions`).
			WithArgs("user-1", "priority", 5).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("s1", "user-1", nil, nil, "priority", []byte(`{}`), []byte(`{}`), false, nil, time.Now()))

		w := doJSON(r, http.MethodGet, "/api/v1/suggestions?type=priority&limit=5", "user-1", nil)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK          bool              `json:"ok"`
			Suggestions []json.RawMessage `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Suggestions, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		r, mock, db := setupRouter(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM suggestions`).
			WithArgs("user-1", "nope").
			WillReturnError(sql.ErrNoRows)

		w := doJSON(r, http.MethodGet, "/api/v1/suggestions/nope", "user-1", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
