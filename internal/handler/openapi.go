package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/deppfellow/skillhub/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed static
var staticFiles embed.FS

// StaticFS holds openapi.json and the docs page, rooted at the static dir.
var StaticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OpenAPIHandler serves the API documentation UI.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler returns an OpenAPIHandler.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled so doc updates
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(StaticFS, "openapi.html")
	if err != nil {
		return errors.Wrap(err, "failed to read OpenAPI UI template")
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
