package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

func (r *Router) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"app":       r.config.App.Name,
		"version":   r.config.App.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (r *Router) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, r.metrics.Snapshot())
}

type messageRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type messageResponse struct {
	Replies []string `json:"replies"`
}

func (r *Router) handleMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and text are required"})
		return
	}

	replies, err := r.bot.HandleMessage(c.Request.Context(), req.UserID, req.Text)
	if err != nil {
		r.logger.Error(c.Request.Context(), "message handling failed", logx.KV("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := messageResponse{Replies: make([]string, 0, len(replies))}
	for _, reply := range replies {
		resp.Replies = append(resp.Replies, reply.Text)
	}
	c.JSON(http.StatusOK, resp)
}

func (r *Router) handleSessionReset(c *gin.Context) {
	userID := c.Param("user_id")
	if err := r.bot.Reset(c.Request.Context(), userID); err != nil {
		r.logger.Error(c.Request.Context(), "session reset failed", logx.KV("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (r *Router) handleListLeads(c *gin.Context) {
	records, err := r.leads.List(c.Request.Context())
	if err != nil {
		r.logger.Error(c.Request.Context(), "lead listing failed", logx.KV("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": records, "count": len(records)})
}
