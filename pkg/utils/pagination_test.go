package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
		offset   int
	}{
		{"", 1, 20, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=-1&limit=500", 1, 20, 0},
		{"?page=abc&limit=5", 1, 5, 0},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		params := GetPaginationParams(c)

		assert.Equal(t, tt.page, params.Page, tt.query)
		assert.Equal(t, tt.pageSize, params.PageSize, tt.query)
		assert.Equal(t, tt.offset, params.Offset, tt.query)
	}
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(10, 0, 4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	start, end = PageBounds(10, 8, 4)
	assert.Equal(t, 8, start)
	assert.Equal(t, 10, end)

	start, end = PageBounds(10, 12, 4)
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)

	start, end = PageBounds(10, 2, 0)
	assert.Equal(t, 2, start)
	assert.Equal(t, 10, end)
}
