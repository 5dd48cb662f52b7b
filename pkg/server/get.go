package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"promptengine/pkg/schema"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "Prompt Engine API",
		"status":  "ok",
	})
}

// GET /health
func (s *Server) handleGetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.Health{
		Status:    "healthy",
		Provider:  string(s.Optimizer.Provider()),
		Model:     s.Optimizer.Model(),
		Mode:      s.Mode(),
		Timestamp: time.Now().UTC(),
	})
}

// GET /api/stats
func (s *Server) handleGetStats(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	stats, err := s.Store.Stats()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
