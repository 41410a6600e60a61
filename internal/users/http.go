package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskforge-hq/taskforge-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("/sync", h.sync)
}

type syncReq struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) sync(c *gin.Context) {
	var req syncReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.repo.EnsureUser(c.Request.Context(), UpsertUser{
		ID:          auth.UserID(c),
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": p})
}
