package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

// ParseUintParam parses a numeric identifier from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id").
// entityName is used in error messages (e.g., "plan", "client").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID: %q", entityName, raw))
	}

	return uint(n), nil
}

// ParseUintQuery parses an optional numeric query parameter.
// Returns nil when the parameter is absent.
func ParseUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %q", name, raw))
	}

	v := uint(n)
	return &v, nil
}

// ParseBoolQuery parses an optional boolean query parameter.
// Returns nil when the parameter is absent.
func ParseBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: %q", name, raw))
	}

	return &v, nil
}
