package handler

import (
	"github.com/deppfellow/skillhub/internal/model"

	"github.com/labstack/echo/v4"
)

// Ping answers liveness probes that do not need dependency checks.
func Ping(c echo.Context, _ *model.ListRequest) (*model.Message, error) {
	return &model.Message{Detail: "Pong"}, nil
}
