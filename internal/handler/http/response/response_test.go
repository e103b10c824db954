package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int64
		totalPages int
	}{
		{"exact fit", 1, 20, 40, 2},
		{"partial last page", 1, 20, 41, 3},
		{"fewer than one page", 1, 20, 5, 1},
		{"empty", 1, 20, 0, 0},
		{"zero limit", 1, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, tt.limit, tt.totalItems)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.totalItems, meta.TotalItems)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
		})
	}
}
