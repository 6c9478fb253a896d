package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/database"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/redis"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db    *database.PostgresDB
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler. The Redis client may be
// nil when caching is disabled.
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "nova-bot-studio-backend",
	})
}

// Ready checks if the service is ready to accept traffic
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"service":  "nova-bot-studio-backend",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	redisStatus := "disabled"
	if h.cache != nil {
		redisStatus = "connected"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			redisStatus = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"service":  "nova-bot-studio-backend",
		"database": "connected",
		"redis":    redisStatus,
	})
}
