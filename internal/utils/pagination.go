package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-estimation-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Offset int
	Limit  int
}

// GetPaginationParams extracts skip/limit from the query string.
// Negative or malformed values fall back to the defaults; limit is capped.
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}

	return PaginationParams{
		Offset: skip,
		Limit:  limit,
	}
}

// ParseID parses a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
