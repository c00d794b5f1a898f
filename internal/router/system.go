package router

import (
	"net/http"

	"github.com/deppfellow/skillhub/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers health, metrics, and documentation routes.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(handler.StaticFS)))))
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
