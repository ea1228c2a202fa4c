package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/errs"
	"github.com/valeshop/access-intake/internal/middleware"
	"github.com/valeshop/access-intake/internal/model"
	"github.com/valeshop/access-intake/internal/server"
	"github.com/valeshop/access-intake/internal/service"
	"github.com/valeshop/access-intake/internal/validation"
)

// MessageForwarded is returned to the client once the webhook accepted the request.
const MessageForwarded = "Solicitação enviada com sucesso!"

// SubmitResponse is the body of a successful relay.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AccessRequestHandler relays access requests to the webhook.
type AccessRequestHandler struct {
	Handler
	service *service.AccessRequestService
}

func NewAccessRequestHandler(s *server.Server, svc *service.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// Submit returns the POST /api/solicitacao handler.
//
// A missing field answers 400 before the webhook is contacted. Any webhook
// failure answers a generic 500; the cause is only logged.
func (h *AccessRequestHandler) Submit() echo.HandlerFunc {
	relay := Handle(h.Handler, h.submit, http.StatusOK, &model.AccessRequest{})

	return func(c echo.Context) error {
		middleware.GetLogger(c).Info().
			Str("stage", string(service.StageReceived)).
			Msg("access request received")

		return relay(c)
	}
}

func (h *AccessRequestHandler) submit(c echo.Context, req *model.AccessRequest) (*SubmitResponse, error) {
	logger := middleware.GetLogger(c)

	if h.server.Config.Validation.Strict {
		if err := req.CheckRules(); err != nil {
			return nil, errs.ValidationError(errs.MessageInvalidFields, validation.FieldErrors(err))
		}
	}

	logger.Info().Str("stage", string(service.StageValidated)).Msg("access request validated")

	if err := h.service.Forward(c.Request().Context(), logger, req); err != nil {
		return nil, errs.NewInternalServerError()
	}

	return &SubmitResponse{
		Success: true,
		Message: MessageForwarded,
	}, nil
}
