package projects

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskforge-hq/taskforge-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.PATCH("/:public_id", h.rename)
	rg.DELETE("/:public_id", h.delete)
	rg.POST("/:public_id/members", h.addMember)
	rg.GET("/:public_id/members", h.listMembers)
	rg.GET("/:public_id/roster", h.roster)
}

type createReq struct {
	Name     string `json:"name"`
	IsUrgent bool   `json:"is_urgent"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	p, err := h.repo.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name), req.IsUrgent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	publicID := c.Param("public_id")

	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserID(c)
	p, err := h.repo.Rename(c.Request.Context(), userID, publicID, strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := c.Param("public_id")
	userID := auth.UserID(c)

	ok, err := h.repo.SoftDelete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type addMemberReq struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

var validRoles = map[string]bool{
	"owner":  true,
	"admin":  true,
	"member": true,
	"viewer": true,
}

func (h *Handler) addMember(c *gin.Context) {
	publicID := c.Param("public_id")

	var req addMemberReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Role == "" {
		req.Role = "member"
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid role"})
		return
	}

	m, err := h.repo.AddMember(c.Request.Context(), publicID, req.UserID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "member": m})
}

func (h *Handler) listMembers(c *gin.Context) {
	items, err := h.repo.ListMembers(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "members": items})
}

func (h *Handler) roster(c *gin.Context) {
	items, err := h.repo.ProjectRoster(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "roster": items})
}
