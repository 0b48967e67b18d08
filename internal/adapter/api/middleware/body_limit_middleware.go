package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewBodyLimit caps request bodies at limit, except on uploadRoutes which are
// capped at uploadLimit. Routes are matched by their registered path.
func NewBodyLimit(limit, uploadLimit string, uploadRoutes ...string) echo.MiddlewareFunc {
	isUpload := func(c echo.Context) bool {
		return slices.Contains(uploadRoutes, c.Path())
	}

	standard := echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Limit:   limit,
		Skipper: isUpload,
	})
	upload := echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Limit: uploadLimit,
		Skipper: func(c echo.Context) bool {
			return !isUpload(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return standard(upload(next))
	}
}
