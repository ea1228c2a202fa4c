package errs

import (
	"net/http"
)

// Client-facing messages, in the language of the intake form.
const (
	MessageMissingFields   = "Campos obrigatórios faltando."
	MessageInvalidBody     = "Corpo da requisição inválido."
	MessageInvalidFields   = "Campos inválidos."
	MessageProcessingError = "Erro ao processar a solicitação."
	MessageTooManyRequests = "Muitas solicitações. Tente novamente em instantes."
	MessageRouteNotFound   = "Rota não encontrada."
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: MessageTooManyRequests,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic processing error; the real cause
// belongs in the logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MessageProcessingError,
		Status:  http.StatusInternalServerError,
	}
}

// ValidationError converts field errors into a 400 Bad Request HTTPError.
func ValidationError(message string, fieldErrors []FieldError) *HTTPError {
	return NewBadRequestError(message, nil, fieldErrors)
}
