package routes

import (
	"github.com/descobre-saude/app/controllers"
	"github.com/gin-gonic/gin"
)

// Controllers groups every handler the router needs.
type Controllers struct {
	Procedures *controllers.ProcedureController
	Plans      *controllers.PlanController
	Admin      *controllers.AdminController
}

// SetupAPIRoutes registers the /api group.
func SetupAPIRoutes(router *gin.Engine, ctrl Controllers) {
	api := router.Group("/api")
	{
		tuss := api.Group("/tuss")
		{
			tuss.GET("", ctrl.Procedures.Search)
			tuss.GET("/suggest", ctrl.Procedures.Suggest)
			tuss.GET("/:code", ctrl.Procedures.Lookup)
		}

		products := api.Group("/products")
		{
			products.GET("", ctrl.Plans.List)
			products.GET("/groups", ctrl.Plans.Groups)
			products.GET("/:productCode/plans", ctrl.Plans.PlansForProduct)
			products.GET("/:productCode/plans/:planName", ctrl.Plans.FindPlan)
		}

		api.GET("/filters/:facet", ctrl.Plans.Facet)
		api.GET("/links", ctrl.Plans.Links)
		api.GET("/stats", ctrl.Admin.GetStats)

		admin := api.Group("/admin")
		{
			admin.POST("/cache/clear", ctrl.Admin.ClearCache)
			admin.GET("/cache/stats", ctrl.Admin.CacheStats)
		}
	}
}

// SetupHealthRoutes registers the probe endpoints.
func SetupHealthRoutes(router *gin.Engine, admin *controllers.AdminController) {
	router.GET("/health", admin.HealthCheck)
	router.GET("/ready", admin.HealthCheck)
	router.GET("/live", admin.HealthCheck)
}
