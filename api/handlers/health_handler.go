package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"text-assistant/db"
	"text-assistant/dto"
)

// Version is stamped at build time via -ldflags.
var Version = "1.0.0"

var startTime = time.Now()

// AIHealthChecker is the health slice of the completion client.
type AIHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler godoc
// @Summary      Service health
// @Description  Overall health including database and AI service round trips
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func HealthHandler(checker AIHealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := dto.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   Version,
			Uptime:    time.Since(startTime).Seconds(),
			Database:  dto.ComponentHealth{Status: "healthy"},
			AIService: dto.ComponentHealth{Status: "healthy"},
		}

		status := http.StatusOK

		if err := db.Ping(c.Request.Context()); err != nil {
			resp.Database = dto.ComponentHealth{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		if err := checker.HealthCheck(c.Request.Context()); err != nil {
			resp.AIService = dto.ComponentHealth{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, resp)
	}
}
