package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/descobre-saude/app/config"
	"github.com/descobre-saude/app/requests"
	"github.com/descobre-saude/app/responses"
	"github.com/descobre-saude/app/services"
	"github.com/descobre-saude/internal/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanController serves the product/plan catalog endpoints.
type PlanController struct {
	catalogService *services.CatalogService
	pagination     config.PaginationConfig
	logger         *zap.Logger
}

// NewPlanController creates a PlanController.
func NewPlanController(catalogService *services.CatalogService, pagination config.PaginationConfig, logger *zap.Logger) *PlanController {
	return &PlanController{
		catalogService: catalogService,
		pagination:     pagination,
		logger:         logger,
	}
}

// List handles GET /api/products: filter, paginate, and attach row links.
func (pc *PlanController) List(c *gin.Context) {
	var req requests.PlanSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters: "+err.Error())
		return
	}

	startTime := time.Now()
	page, pageSize := pageParams(req.PageOptions, pc.pagination)
	result, hit := pc.catalogService.FilterPlans(c.Request.Context(), req.PlanFilter, page, pageSize)

	rows := make([]responses.PlanRow, 0, len(result.Items))
	for _, plan := range result.Items {
		l := pc.catalogService.RowLinks(plan)
		rows = append(rows, responses.PlanRow{
			PlanRecord:        plan,
			ProviderSearchURL: l.ProviderSearchURL,
			PortalURL:         l.PortalURL,
			LinkAvailable:     l.LinkAvailable,
		})
	}

	c.JSON(http.StatusOK, responses.PlanPageResponse{
		Items: rows,
		PageMeta: responses.PageMeta{
			Page:       result.PageNumber,
			PageSize:   result.PageSize,
			Total:      result.TotalItems,
			TotalPages: result.TotalPages,
			Window:     result.Window,
		},
		ANSCodes:         result.ANSCodes,
		CacheHit:         hit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// Groups handles GET /api/products/groups.
func (pc *PlanController) Groups(c *gin.Context) {
	c.JSON(http.StatusOK, pc.catalogService.ProductGroups())
}

// PlansForProduct handles GET /api/products/:productCode/plans.
func (pc *PlanController) PlansForProduct(c *gin.Context) {
	productCode := c.Param("productCode")
	c.JSON(http.StatusOK, responses.PlanNamesResponse{
		ProductCode: productCode,
		PlanNames:   pc.catalogService.PlansForProduct(productCode),
	})
}

// FindPlan handles GET /api/products/:productCode/plans/:planName.
func (pc *PlanController) FindPlan(c *gin.Context) {
	pc.resolve(c, c.Param("productCode"), c.Param("planName"))
}

// Links handles GET /api/links.
func (pc *PlanController) Links(c *gin.Context) {
	var req requests.PlanLinksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters: "+err.Error())
		return
	}
	pc.resolve(c, req.ProductCode, req.PlanName)
}

func (pc *PlanController) resolve(c *gin.Context, productCode, planName string) {
	resolved, err := pc.catalogService.ResolveLinks(productCode, planName)
	if errors.Is(err, catalog.ErrPlanNotFound) {
		abortWithError(c, http.StatusNotFound, "PLAN_NOT_FOUND",
			"No plan "+planName+" for product "+productCode)
		return
	}
	if err != nil {
		pc.logger.Error("Plan resolution failed",
			zap.String("product_code", productCode),
			zap.String("plan_name", planName),
			zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "RESOLVE_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.PlanDetailResponse{
		Plan:              resolved.Plan,
		ProviderSearchURL: resolved.ProviderSearchURL,
		PortalURL:         resolved.PortalURL,
		LinkAvailable:     resolved.LinkAvailable,
	})
}

// Facet handles GET /api/filters/:facet.
func (pc *PlanController) Facet(c *gin.Context) {
	name := c.Param("facet")

	values, err := pc.catalogService.Facet(name)
	if errors.Is(err, services.ErrUnknownFacet) {
		abortWithError(c, http.StatusNotFound, "UNKNOWN_FACET", "No filter named "+name)
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "FACET_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, values)
}
