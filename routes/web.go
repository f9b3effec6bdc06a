package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupWebRoutes registers the service banner.
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Descobre Saude plan and procedure lookup",
			"endpoints": map[string]string{
				"procedures": "GET /api/tuss?search=",
				"suggest":    "GET /api/tuss/suggest?q=",
				"procedure":  "GET /api/tuss/:code",
				"plans":      "GET /api/products",
				"groups":     "GET /api/products/groups",
				"plan":       "GET /api/products/:productCode/plans/:planName",
				"filters":    "GET /api/filters/:facet",
				"links":      "GET /api/links?product_code=&plan_name=",
				"stats":      "GET /api/stats",
			},
		})
	})
}
