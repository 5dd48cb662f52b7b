package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptengine/pkg/schema"
)

// POST /api/generate-image
func (s *Server) handlePostGenerateImage(c echo.Context) error {
	var req schema.ImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	resp, err := s.Optimizer.ImagePrompt(c.Request().Context(), req.Description, req.ImageMode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
