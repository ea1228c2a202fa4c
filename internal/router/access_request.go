package router

import (
	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/handler"
)

func registerAccessRequestRoutes(api *echo.Group, h *handler.Handlers) {
	api.POST("/solicitacao", h.AccessRequest.Submit())
}
