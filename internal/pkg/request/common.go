package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDParam reads the named path parameter and validates it is a UUID.
// Malformed identifiers are rejected at the boundary with a 400 instead of
// leaking storage-layer errors. The bool reports whether the value is usable.
func UUIDParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format"})
		return "", false
	}
	return id, true
}

// Pagination reads page/page_size query parameters with sane defaults.
func Pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
