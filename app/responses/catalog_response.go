package responses

import (
	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/catalog"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code
	Message string `json:"message"` // human-readable detail
}

// PageMeta describes where a page sits in the full result.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	Window     []int `json:"window"`
}

// ProcedurePageResponse is the body of GET /api/tuss
type ProcedurePageResponse struct {
	Items []models.ProcedureCode `json:"items"`
	PageMeta
	CacheHit         bool  `json:"cache_hit"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// ProcedureListResponse is the body of GET /api/tuss/suggest
type ProcedureListResponse struct {
	Items []models.ProcedureCode `json:"items"`
	Total int                    `json:"total"`
}

// PlanRow is a plan record with its outbound links, one table row.
type PlanRow struct {
	models.PlanRecord
	ProviderSearchURL string `json:"providerSearchUrl"`
	PortalURL         string `json:"portalUrl"`
	LinkAvailable     bool   `json:"linkAvailable"`
}

// PlanPageResponse is the body of GET /api/products
type PlanPageResponse struct {
	Items []PlanRow `json:"items"`
	PageMeta
	ANSCodes         catalog.ANSSummary `json:"ans_codes"`
	CacheHit         bool               `json:"cache_hit"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// PlanNamesResponse is the body of GET /api/products/:productCode/plans
type PlanNamesResponse struct {
	ProductCode string   `json:"productCode"`
	PlanNames   []string `json:"planNames"`
}

// PlanDetailResponse is the body of plan lookups and GET /api/links
type PlanDetailResponse struct {
	Plan              models.PlanRecord `json:"plan"`
	ProviderSearchURL string            `json:"providerSearchUrl"`
	PortalURL         string            `json:"portalUrl"`
	LinkAvailable     bool              `json:"linkAvailable"`
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status         string `json:"status"`
	DatasetVersion string `json:"dataset_version"`
	Timestamp      string `json:"timestamp"`
}
