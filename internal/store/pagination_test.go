package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageParams
		wantPage  int
		wantLimit int
	}{
		{"defaults for zero values", PageParams{}, 1, 10},
		{"negative page", PageParams{Page: -3, Limit: 20}, 1, 20},
		{"zero limit", PageParams{Page: 2, Limit: 0}, 2, 10},
		{"limit above cap", PageParams{Page: 1, Limit: 5000}, 1, 100},
		{"valid passes through", PageParams{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	p := PageParams{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())

	p = PageParams{Page: 1, Limit: 50}
	assert.Equal(t, 0, p.Offset())
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		limit          int
		wantTotalPages int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder adds a page", 21, 10, 3},
		{"fewer than one page", 3, 10, 1},
		{"empty", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewPageResult[string](nil, tt.total, PageParams{Page: 1, Limit: tt.limit})
			assert.Equal(t, tt.wantTotalPages, res.TotalPages)
			assert.NotNil(t, res.Items, "items should serialize as [] not null")
		})
	}
}
