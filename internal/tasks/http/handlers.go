package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskforge-hq/taskforge-backend/internal/auth"
	"github.com/taskforge-hq/taskforge-backend/internal/tasks/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/tasks/repository"
)

// Handler exposes task CRUD and the completed-task history query.
type Handler struct {
	repo *repository.TaskRepository
}

func New(repo *repository.TaskRepository) *Handler {
	return &Handler{repo: repo}
}

type createReq struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	TaskType    string     `json:"task_type"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ProjectID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t := &domain.Task{
		ProjectPublic: req.ProjectID,
		CreatorID:     auth.UserID(c),
		AssigneeID:    req.AssigneeID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Priority:      req.Priority,
		TaskType:      req.TaskType,
		DueDate:       req.DueDate,
	}

	if err := h.repo.Create(c.Request.Context(), t); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": t})
}

func (h *Handler) list(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_id is required"})
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": items})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.repo.UpdateStatus(c.Request.Context(), c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "task": t})
}

func (h *Handler) history(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	items, err := h.repo.RecentCompleted(c.Request.Context(), auth.UserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "history": items})
}
