package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"promptengine/pkg/modes"
	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

// POST /api/set-mode
func (s *Server) handlePostSetMode(c echo.Context) error {
	var req schema.ModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	cfg, err := s.Optimizer.Catalogue().Lookup(req.Mode)
	if err != nil {
		body := utils.ErrJSON("mode '" + req.Mode + "' not supported")
		body["available_modes"] = s.Optimizer.Catalogue().Names()
		return c.JSON(http.StatusBadRequest, body)
	}
	s.setMode(cfg.Name)
	log.Info("mode switched", "mode", cfg.Name, "model", s.Optimizer.ModelFor(cfg))
	return c.JSON(http.StatusOK, s.modeResponse(cfg))
}

// GET /api/get-mode
func (s *Server) handleGetMode(c echo.Context) error {
	cfg, err := s.Optimizer.Catalogue().Lookup(string(s.Mode()))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s.modeResponse(cfg))
}

// GET /api/available-modes
func (s *Server) handleGetAvailableModes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Optimizer.Catalogue().Summaries())
}

func (s *Server) modeResponse(cfg modes.Config) schema.ModeResponse {
	return schema.ModeResponse{
		Success:       true,
		Mode:          cfg.Name,
		Model:         s.Optimizer.ModelFor(cfg),
		Configuration: cfg,
	}
}
