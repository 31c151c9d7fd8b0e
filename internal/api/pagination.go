package api

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	if !digitsOnly.MatchString(raw) {
		return 0, domain.FieldError("query", name, name+" must be a non-negative integer")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.FieldError("query", name, name+" is too large")
	}
	return v, nil
}

// pageParams reads the zero-based pageNo and pageSize query parameters.
// A pageSize of 0 falls back to the default.
func pageParams(c *gin.Context) (pageNo, pageSize int, err error) {
	if pageNo, err = queryInt(c, "pageNo", 0); err != nil {
		return 0, 0, err
	}
	if pageSize, err = queryInt(c, "pageSize", defaultPageSize); err != nil {
		return 0, 0, err
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return 0, 0, domain.FieldError("query", "pageSize", "pageSize must be at most 100")
	}
	return pageNo, pageSize, nil
}

// pageCount is the number of pages for total rows, never less than one
func pageCount(total int64, pageSize int) int64 {
	n := (total + int64(pageSize) - 1) / int64(pageSize)
	if n < 1 {
		return 1
	}
	return n
}

// queryDate parses an optional YYYY-MM-DD query parameter. With endOfDay the
// result is the last instant of that day, for inclusive upper bounds.
func queryDate(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.FieldError("query", name, "Invalid date, expected YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// principal returns the authenticated caller or writes a 401
func principal(c *gin.Context) (*middleware.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return p, true
}
