package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination bounds. Page and limit are capped so the offset cannot overflow.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 10000
)

// Pagination is a page request resolved from the query string.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads ?page= and ?limit=, falling back to the first page of
// DefaultPageLimit items and clamping both to their maximums.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := clamp(queryInt(c, "page", 1), 1, MaxPage)
	limit := queryInt(c, "limit", DefaultPageLimit)
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = clamp(limit, 1, MaxPageLimit)

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	if parsed, err := strconv.Atoi(c.Query(key)); err == nil {
		return parsed
	}
	return fallback
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
