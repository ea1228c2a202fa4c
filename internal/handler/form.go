package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/server"
)

// FormPage is the browser form, relative to server.static_dir.
const FormPage = "index.html"

// FormHandler serves the browser intake form.
type FormHandler struct {
	Handler
}

func NewFormHandler(s *server.Server) *FormHandler {
	return &FormHandler{
		Handler: NewHandler(s),
	}
}

// StaticDir is the directory the form page and /static assets are read from.
func (h *FormHandler) StaticDir() string {
	return h.server.Config.Server.StaticDir
}

// ServeForm reads the form page from disk on every request so edits show up
// without a restart.
func (h *FormHandler) ServeForm(c echo.Context) error {
	page, err := os.ReadFile(filepath.Join(h.StaticDir(), FormPage))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read form page: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
