package router

import (
	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/handler"
)

// registerSystemRoutes wires health, static assets and the browser form.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", h.Form.StaticDir())

	r.GET("/", h.Form.ServeForm)
}
