package handlers

import (
	"strconv"

	"github.com/Aiionteam/app.aiion.site/internal/services"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/gin-gonic/gin"
)

// writeResult sends r as JSON with the HTTP status equal to r.Code.
func writeResult(c *gin.Context, r *services.Result) {
	c.JSON(r.Code, r)
}

// parseID reads a positive integer path parameter. Zero means invalid.
func parseID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// paginationFromQuery returns unpaged params unless ?page is given.
func paginationFromQuery(c *gin.Context) store.PaginationParams {
	search := c.Query("search")
	if c.Query("page") == "" {
		return store.PaginationParams{Search: search}
	}
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return store.NewPaginationParams(page, pageSize, search)
}
