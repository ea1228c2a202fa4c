package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeshop/access-intake/internal/intake"
)

func validArgs(relayURL string) []string {
	return []string{
		"--name", "Ana Souza",
		"--email", "ana@valeshop.com.br",
		"--reason", "Fechamento do mês",
		"--duration", "6",
		"--application", "App Benefícios",
		"--relay-url", relayURL,
	}
}

func TestRun_Submits(t *testing.T) {
	var got map[string]any
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), validArgs(relay.URL), &stdout, &stderr)

	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), intake.MessageSuccess)
	assert.Equal(t, "App Benefícios", got["application"])
	assert.Equal(t, "6", got["duration_hours"])
}

func TestRun_ValidationErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--email", "ana@valeshop", "--duration", "0", "--relay-url", "http://127.0.0.1:1"}, &stdout, &stderr)

	assert.Equal(t, exitValidation, code)
	out := stdout.String()
	assert.Contains(t, out, "requester_name: "+intake.MessageNameRequired)
	assert.Contains(t, out, "requester_email: "+intake.MessageEmailInvalid)
	assert.Contains(t, out, "duration_hours: "+intake.MessageDurationInvalid)
	assert.Contains(t, out, "application: "+intake.MessageApplicationMissing)
}

func TestRun_ValidateOnly(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append(validArgs("http://127.0.0.1:1"), "--validate-only"), &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "OK\n", stdout.String())
}

func TestRun_RelayRejects(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer relay.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), validArgs(relay.URL), &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout.String(), intake.MessageServerError)
}

func TestRun_RelayUnreachable(t *testing.T) {
	relay := httptest.NewServer(http.NotFoundHandler())
	url := relay.URL
	relay.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), validArgs(url), &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout.String(), intake.MessageConnectionError)
}

func TestRun_RejectsPositionalArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"extra"}, &stdout, &stderr)

	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr.String(), "Error:")
}
