package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is reported by the health and info endpoints
const Version = "1.0.0"

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db          *gorm.DB
	storageName string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, storageName string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		storageName: storageName,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// InfoResponse describes the API
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Storage   string            `json:"storage"`
	Endpoints map[string]string `json:"endpoints"`
}

// probe pings the database and reports per-service state. Storage is listed
// by backend name; blobs are only touched on document requests.
func (h *HealthHandler) probe(ctx context.Context, okLabel string) (map[string]string, bool) {
	services := map[string]string{"storage": h.storageName}

	sqlDB, err := h.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = sqlDB.PingContext(pingCtx)
		cancel()
	}
	if err != nil {
		services["database"] = "error: " + err.Error()
		return services, false
	}
	services["database"] = okLabel
	return services, true
}

func statusFor(ok bool) int {
	if ok {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Health returns the health status of the application
// @Summary Health check
// @Description Reports database connectivity and the configured blob storage backend
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Application is healthy"
// @Failure 503 {object} HealthResponse "Application is unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	services, ok := h.probe(c.Request.Context(), "healthy")
	status := "healthy"
	if !ok {
		status = "unhealthy"
	}

	c.JSON(statusFor(ok), HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   Version,
		Services:  services,
	})
}

// Ready reports whether requests can be served
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is ready"
// @Failure 503 {object} map[string]interface{} "Application is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	services, ok := h.probe(c.Request.Context(), "ready")
	c.JSON(statusFor(ok), gin.H{
		"ready":     ok,
		"timestamp": time.Now(),
		"services":  services,
	})
}

// Live returns the liveness status of the application
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

// Info describes the service
// @Summary Service info
// @Tags health
// @Produce json
// @Success 200 {object} InfoResponse "Service information"
// @Router /info [get]
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Message: "Entity Tracking API",
		Version: Version,
		Storage: h.storageName,
		Endpoints: map[string]string{
			"entities": "/api/entities",
			"health":   "/api/health",
			"docs":     "/swagger/index.html",
		},
	})
}
