// Package routes wires controllers onto a gin engine.
//
//	api.go        /api/* and probe routes
//	web.go        service banner
//	middleware.go request id and access logging
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAllRoutes installs middleware and every route on router.
func SetupAllRoutes(router *gin.Engine, ctrl Controllers, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(ZapLogger(logger))

	SetupWebRoutes(router)
	SetupHealthRoutes(router, ctrl.Admin)
	SetupAPIRoutes(router, ctrl)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
