package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskforge-hq/taskforge-backend/internal/auth"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/service"
)

// Handler exposes the suggestion generators over HTTP.
type Handler struct {
	svc *service.SuggestionService
}

// New creates a new suggestions Handler.
func New(svc *service.SuggestionService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) priority(c *gin.Context) {
	var req priorityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	result, rec, err := h.svc.SuggestPriority(c.Request.Context(), userID, domain.PriorityInput{
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
		ProjectUrgent: req.ProjectUrgent,
	}, service.Ref{ProjectID: req.ProjectID, TaskID: req.TaskID})
	if err != nil {
		respondSuggestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "suggestion_id": rec.ID, "result": result})
}

func (h *Handler) estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	result, rec, err := h.svc.SuggestEstimate(c.Request.Context(), userID, domain.EstimateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		TaskType:    req.TaskType,
		History:     req.History,
	}, service.Ref{ProjectID: req.ProjectID, TaskID: req.TaskID})
	if err != nil {
		respondSuggestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "suggestion_id": rec.ID, "result": result})
}

func (h *Handler) assignee(c *gin.Context) {
	var req assigneeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	result, rec, err := h.svc.SuggestAssignee(c.Request.Context(), userID, domain.AssigneeInput{
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		WorkloadPreference: req.WorkloadPreference,
		Roster:             req.Roster,
	}, service.Ref{ProjectID: req.ProjectID, TaskID: req.TaskID})
	if err != nil {
		respondSuggestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "suggestion_id": rec.ID, "result": result})
}

func (h *Handler) breakdown(c *gin.Context) {
	var req breakdownReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	result, rec, err := h.svc.SuggestBreakdown(c.Request.Context(), userID, domain.BreakdownInput{
		Title:       req.Title,
		Description: req.Description,
		Complexity:  req.Complexity,
	}, service.Ref{ProjectID: req.ProjectID, TaskID: req.TaskID})
	if err != nil {
		respondSuggestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "suggestion_id": rec.ID, "result": result})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	suggestionType := domain.SuggestionType(c.Query("type"))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	items, err := h.svc.List(c.Request.Context(), userID, suggestionType, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggestions": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserID(c)

	rec, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSuggestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "suggestion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggestion": rec})
}

func respondSuggestionError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
