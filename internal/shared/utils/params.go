package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/errors"
)

// ParseUintParam parses a numeric ID from a URL path parameter.
// entityName is used in error messages (e.g., "room", "song").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}

	return uint(id), nil
}

// CurrentUserID extracts the authenticated user's ID from the gin context.
// Fails closed when the auth middleware did not run or the value is malformed.
func CurrentUserID(c *gin.Context) (uint, error) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("authentication required")
	}

	id, ok := raw.(uint)
	if !ok || id == 0 {
		return 0, errors.NewUnauthorizedError("authentication required")
	}

	return id, nil
}

// ParsePagination reads page/page_size query parameters with sane bounds.
func ParsePagination(c *gin.Context) (page, pageSize int) {
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
