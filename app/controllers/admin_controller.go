package controllers

import (
	"net/http"
	"time"

	"github.com/descobre-saude/app/responses"
	"github.com/descobre-saude/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController serves stats, cache maintenance and health checks.
type AdminController struct {
	catalogService *services.CatalogService
	logger         *zap.Logger
}

// NewAdminController creates an AdminController.
func NewAdminController(catalogService *services.CatalogService, logger *zap.Logger) *AdminController {
	return &AdminController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetStats handles GET /api/stats.
func (ac *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.catalogService.Stats())
}

// ClearCache handles POST /api/admin/cache/clear.
func (ac *AdminController) ClearCache(c *gin.Context) {
	if err := ac.catalogService.ClearCache(c.Request.Context()); err != nil {
		ac.logger.Error("Failed to clear cache", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "CACHE_ERROR", "Failed to clear cache: "+err.Error())
		return
	}

	ac.logger.Info("Cache cleared")
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// CacheStats handles GET /api/admin/cache/stats.
func (ac *AdminController) CacheStats(c *gin.Context) {
	stats, err := ac.catalogService.CacheStats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "CACHE_ERROR", "Failed to read cache stats: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles /health, /ready and /live.
func (ac *AdminController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:         "healthy",
		DatasetVersion: ac.catalogService.DatasetVersion(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}
