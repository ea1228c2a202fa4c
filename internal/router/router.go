// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/handler"
	"github.com/valeshop/access-intake/internal/middleware"
)

// NewRouter builds the Echo instance with every middleware and route.
//
// Middleware order matters: the request id must exist before the tracing
// and logging layers read it, and Recover sits inside RequestLogger so a
// panic is logged as a 500.
func NewRouter(h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(e, h)

	api := e.Group("/api", mw.RateLimit.Limit())
	registerAccessRequestRoutes(api, h)

	return e
}
