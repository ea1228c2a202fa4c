package service

import (
	"github.com/valeshop/access-intake/internal/server"
)

// Services groups every service the handlers depend on.
type Services struct {
	AccessRequest *AccessRequestService
}

func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		AccessRequest: NewAccessRequestService(s, s.Webhook),
	}, nil
}
