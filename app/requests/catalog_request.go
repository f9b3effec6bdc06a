package requests

import "github.com/descobre-saude/app/models"

// PageOptions holds the common pagination query parameters.
type PageOptions struct {
	Page     int `form:"page"`                      // 1-indexed, defaults to 1
	PageSize int `form:"page_size" binding:"min=0"` // defaults to pagination.page_size
}

// ProcedureSearchRequest binds GET /api/tuss
type ProcedureSearchRequest struct {
	Search string `form:"search"`                // code prefix or free text
	Limit  int    `form:"limit" binding:"min=0"` // cap before pagination, defaults to 50
	PageOptions
}

// ProcedureSuggestRequest binds GET /api/tuss/suggest
type ProcedureSuggestRequest struct {
	Query string `form:"q"`
}

// PlanSearchRequest binds GET /api/products
type PlanSearchRequest struct {
	models.PlanFilter
	PageOptions
}

// PlanLinksRequest binds GET /api/links
type PlanLinksRequest struct {
	ProductCode string `form:"product_code" binding:"required"`
	PlanName    string `form:"plan_name" binding:"required"`
}
