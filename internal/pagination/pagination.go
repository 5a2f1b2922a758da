// Package pagination implements the fixed-size page contract shared by list endpoints.
package pagination

import (
	"math"
	"strconv"

	"github.com/aura-events/venues/internal/apperr"
)

// PageSize is the number of records per page.
const PageSize = 15

// maxPage keeps offsets within a 32-bit range.
const maxPage = math.MaxInt32 / PageSize

// Page is a requested page. Explicit is false when the client sent no page parameter.
type Page struct {
	Number   int
	Explicit bool
}

// Parse reads the optional "page" query value. Missing means the first page, not explicit.
func Parse(raw string, present bool) (Page, error) {
	if !present {
		return Page{Number: 1}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxPage {
		return Page{}, apperr.Validation(map[string]string{"page": "must be a positive integer"})
	}
	return Page{Number: n, Explicit: true}, nil
}

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * PageSize
}

// Limit returns the page size.
func (p Page) Limit() int {
	return PageSize
}

// HasNext reports whether records remain after this page. Unpaginated requests are terminal.
func (p Page) HasNext(total int) bool {
	if !p.Explicit {
		return false
	}
	return p.Number*PageSize < total
}

// Result is one page of items.
type Result[T any] struct {
	Items   []T
	HasNext bool
}
