package handler

import (
	"github.com/valeshop/access-intake/internal/server"
	"github.com/valeshop/access-intake/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health        *HealthHandler
	Form          *FormHandler
	AccessRequest *AccessRequestHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Form:          NewFormHandler(s),
		AccessRequest: NewAccessRequestHandler(s, services.AccessRequest),
	}
}
