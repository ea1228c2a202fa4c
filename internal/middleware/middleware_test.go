package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeshop/access-intake/internal/config"
	"github.com/valeshop/access-intake/internal/errs"
	"github.com/valeshop/access-intake/internal/server"
)

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	e := echo.New()

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()

	h := RequestID()(func(c echo.Context) error {
		assert.Equal(t, "abc", GetRequestID(c))
		return nil
	})
	require.NoError(t, h(e.NewContext(req, rec)))

	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestContextEnhancer_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	s := &server.Server{Logger: &base}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/solicitacao", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	h := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo context")
		LoggerFromContext(c.Request().Context()).Info().Msg("from request context")
		return nil
	})
	require.NoError(t, h(c))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, http.MethodPost, entry["method"])
	}
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
	assert.NotNil(t, LoggerFromContext(c.Request().Context()))
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "http error",
			err:     errs.NewBadRequestError(errs.MessageMissingFields, nil, []errs.FieldError{{Field: "reason", Error: "is required"}}),
			status:  http.StatusBadRequest,
			message: errs.MessageMissingFields,
		},
		{
			name:    "echo not found",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			message: errs.MessageRouteNotFound,
		},
		{
			name:    "echo other",
			err:     echo.ErrStatusRequestEntityTooLarge,
			status:  http.StatusRequestEntityTooLarge,
			message: http.StatusText(http.StatusRequestEntityTooLarge),
		},
		{
			name:    "plain error",
			err:     errors.New("dial tcp 10.0.0.1:443: i/o timeout"),
			status:  http.StatusInternalServerError,
			message: errs.MessageProcessingError,
		},
	}

	global := NewGlobalMiddlewares(&server.Server{Config: &config.Config{}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			require.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.NotContains(t, rec.Body.String(), "10.0.0.1")
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, statusOf(errs.NewTooManyRequestsError()))
	assert.Equal(t, http.StatusNotFound, statusOf(echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}
