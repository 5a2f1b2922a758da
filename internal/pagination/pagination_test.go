package pagination

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-events/venues/internal/apperr"
)

func TestParse(t *testing.T) {
	p, err := Parse("", false)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 1}, p)

	p, err = Parse("3", true)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 3, Explicit: true}, p)
	assert.Equal(t, 30, p.Offset())
	assert.Equal(t, PageSize, p.Limit())
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", "", "99999999999"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw, true)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, e.Status)
			assert.Contains(t, e.Fields, "page")
		})
	}
}

func TestHasNext(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int
		want  bool
	}{
		{"first of twenty", Page{Number: 1, Explicit: true}, 20, true},
		{"last of twenty", Page{Number: 2, Explicit: true}, 20, false},
		{"beyond the end", Page{Number: 3, Explicit: true}, 20, false},
		{"exactly one page", Page{Number: 1, Explicit: true}, 15, false},
		{"one over a page", Page{Number: 1, Explicit: true}, 16, true},
		{"empty", Page{Number: 1, Explicit: true}, 0, false},
		{"unpaginated is terminal", Page{Number: 1}, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.HasNext(tt.total))
		})
	}
}
