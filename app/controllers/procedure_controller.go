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

// ProcedureController serves the TUSS procedure code endpoints.
type ProcedureController struct {
	catalogService *services.CatalogService
	pagination     config.PaginationConfig
	logger         *zap.Logger
}

// NewProcedureController creates a ProcedureController.
func NewProcedureController(catalogService *services.CatalogService, pagination config.PaginationConfig, logger *zap.Logger) *ProcedureController {
	return &ProcedureController{
		catalogService: catalogService,
		pagination:     pagination,
		logger:         logger,
	}
}

// Search handles GET /api/tuss.
func (pc *ProcedureController) Search(c *gin.Context) {
	var req requests.ProcedureSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters: "+err.Error())
		return
	}

	startTime := time.Now()
	page, pageSize := pageParams(req.PageOptions, pc.pagination)
	result, hit := pc.catalogService.SearchProcedures(c.Request.Context(), req.Search, req.Limit, page, pageSize)

	c.JSON(http.StatusOK, responses.ProcedurePageResponse{
		Items: result.Items,
		PageMeta: responses.PageMeta{
			Page:       result.PageNumber,
			PageSize:   result.PageSize,
			Total:      result.TotalItems,
			TotalPages: result.TotalPages,
			Window:     result.Window,
		},
		CacheHit:         hit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// Suggest handles GET /api/tuss/suggest.
func (pc *ProcedureController) Suggest(c *gin.Context) {
	var req requests.ProcedureSuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters: "+err.Error())
		return
	}

	items := pc.catalogService.SuggestProcedures(req.Query)
	c.JSON(http.StatusOK, responses.ProcedureListResponse{
		Items: items,
		Total: len(items),
	})
}

// Lookup handles GET /api/tuss/:code.
func (pc *ProcedureController) Lookup(c *gin.Context) {
	code := c.Param("code")

	procedure, err := pc.catalogService.LookupProcedure(code)
	if errors.Is(err, catalog.ErrProcedureNotFound) {
		abortWithError(c, http.StatusNotFound, "PROCEDURE_NOT_FOUND", "No TUSS code "+code)
		return
	}
	if err != nil {
		pc.logger.Error("Procedure lookup failed", zap.String("code", code), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "LOOKUP_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, procedure)
}
