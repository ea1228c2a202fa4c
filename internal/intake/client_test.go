package intake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeshop/access-intake/internal/model"
)

func sampleRequest() model.AccessRequest {
	return model.AccessRequest{
		RequesterName:  "Ana Souza",
		RequesterEmail: "ana@valeshop.com.br",
		Reason:         "Auditoria",
		DurationHours:  model.NewDurationHours("2"),
		Application:    "Autorizador",
	}
}

func TestRelayClient_Submit(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewRelayClient(srv.URL).Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"requester_name":  "Ana Souza",
		"requester_email": "ana@valeshop.com.br",
		"reason":          "Auditoria",
		"duration_hours":  "2",
		"application":     "Autorizador",
	}, got)
}

func TestRelayClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Campos obrigatórios faltando."}`))
	}))
	defer srv.Close()

	err := NewRelayClient(srv.URL).Submit(context.Background(), sampleRequest())

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
	assert.Contains(t, serverErr.Body, "Campos obrigatórios")
	assert.Equal(t, FailureServer, failure(err).Kind)
}

func TestRelayClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewRelayClient(url).Submit(context.Background(), sampleRequest())

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, FailureConnection, failure(err).Kind)
}

func TestRelayClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := NewRelayClient(srv.URL, WithTimeout(50*time.Millisecond)).Submit(context.Background(), sampleRequest())

	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestRelayClient_WithTimeoutKeepsCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	rc := NewRelayClient("http://relay.invalid", WithHTTPClient(shared), WithTimeout(time.Millisecond))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, time.Millisecond, rc.httpClient.Timeout)
	assert.NotSame(t, shared, rc.httpClient)
}

func TestRelayClient_WithTimeoutLeavesDefaultClient(t *testing.T) {
	before := http.DefaultClient.Timeout

	rc := NewRelayClient("http://relay.invalid", WithHTTPClient(http.DefaultClient), WithTimeout(time.Millisecond))

	assert.Equal(t, before, http.DefaultClient.Timeout)
	assert.Equal(t, time.Millisecond, rc.httpClient.Timeout)
}
