package api

import (
	"errors"
	"net/http"
	"strconv"

	"restobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// pageParams pulls the keyset pagination query parameters. A malformed limit
// falls back to the default; a malformed cursor is caught downstream when it
// fails to decode.
func pageParams(c *gin.Context) (*queries.Cursor, int) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = queries.ValidateLimit(iv)
		}
	}

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, limit
}

func respondListErr(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrInvalidCursor) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination cursor",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
