// Package paging normalizes page/limit query parameters.
package paging

import "strconv"

const (
	defaultLimit = 20
	maxLimit     = 50
)

// Params holds normalized pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Normalize parses page/limit query values and clamps them to a sane
// range: page >= 1, 1 <= limit <= 50.
func Normalize(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for the page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}
