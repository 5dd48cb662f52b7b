package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"promptengine/pkg/diff"
)

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// GET /api/history
func (s *Server) handleGetHistory(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := s.Store.RecentHistory(limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GET /api/history/:id
func (s *Server) handleGetHistoryEntry(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	h, err := s.Store.GetHistory(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h)
}

// DELETE /api/history/:id
func (s *Server) handleDeleteHistoryEntry(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteHistory(id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/history/:id/diff
func (s *Server) handleGetHistoryDiff(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	h, err := s.Store.GetHistory(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":   h.ID,
		"diff": diff.Prompts(h.OriginalPrompt, h.OptimizedPrompt),
	})
}
