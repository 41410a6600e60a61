package http

import "github.com/gin-gonic/gin"

// Register attaches suggestion routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/priority", h.priority)
	rg.POST("/estimate", h.estimate)
	rg.POST("/assignee", h.assignee)
	rg.POST("/breakdown", h.breakdown)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
}
