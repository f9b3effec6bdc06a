package controllers

import (
	"github.com/descobre-saude/app/config"
	"github.com/descobre-saude/app/requests"
	"github.com/descobre-saude/app/responses"
	"github.com/gin-gonic/gin"
)

// pageParams resolves the requested page against the configured defaults:
// a missing page is page 1, a missing page size is the default and oversized
// ones are capped.
func pageParams(opts requests.PageOptions, cfg config.PaginationConfig) (page, pageSize int) {
	page = opts.Page
	if page == 0 {
		page = 1
	}
	pageSize = opts.PageSize
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}
	if cfg.MaxPageSize > 0 && pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}
	return page, pageSize
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, responses.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
