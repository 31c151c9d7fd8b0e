// Package service enforces the cross-entity rules of donors, donations and
// users on top of the soft-delete repositories.
package service

import (
	"math"
	"strings"
	"time"

	"donation_system/internal/domain"
)

// Page is one offset-paginated slice of a listing plus the full count
type Page[T any] struct {
	Total int64
	Items []T
}

func checkPage(pageNo, pageSize int) error {
	if pageNo < 0 {
		return domain.FieldError("query", "pageNo", "pageNo must be a non-negative integer")
	}
	if pageSize <= 0 {
		return domain.FieldError("query", "pageSize", "pageSize must be a positive integer")
	}
	return nil
}

// pageOffset is the first row of pageNo. ok is false when the offset does not
// fit in an int, which can only be past the last row.
func pageOffset(pageNo, pageSize int) (offset int, ok bool) {
	if pageNo > math.MaxInt/pageSize {
		return 0, false
	}
	return pageNo * pageSize, true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// parseDate accepts a calendar date ("2024-01-01") or an RFC 3339 timestamp.
// A nil or blank value yields nil.
func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, domain.FieldError("body", field, "Invalid date")
}

// likePattern builds a case-insensitive substring pattern using ! as the
// LIKE escape character, which both MySQL and SQLite accept.
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
