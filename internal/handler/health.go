package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports database and redis reachability. Redis is only listed when
// configured; only the database decides the status code.
func (h *Handler) Healthz(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}

	dbHealthy := h.deps.DB != nil && h.deps.DB.Healthy(ctx)
	checks["db"] = dbHealthy
	status, code := "ok", http.StatusOK
	if !dbHealthy {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	if h.deps.Redis != nil {
		redisHealthy := h.deps.Redis.Healthy(ctx)
		checks["redis"] = redisHealthy
		if !redisHealthy && code == http.StatusOK {
			status = "degraded"
		}
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
