package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"promptengine/pkg/quality"
	"promptengine/pkg/schema"
	"promptengine/pkg/store"
)

// GET /api/prompts
func (s *Server) handleListPrompts(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	prompts, err := s.Store.ListPrompts(limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prompts)
}

// POST /api/prompts
func (s *Server) handleCreatePrompt(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	var req schema.PromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	mode, err := s.Optimizer.Catalogue().Lookup(req.Mode)
	if err != nil {
		return httpError(err)
	}
	p, err := s.Store.CreatePrompt(req.Title, req.Text, string(mode.Name))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

// GET /api/prompts/:id
func (s *Server) handleGetPrompt(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := s.Store.GetPrompt(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// PUT /api/prompts/:id
func (s *Server) handleUpdatePrompt(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var u store.PromptUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if u.Mode != nil {
		mode, err := s.Optimizer.Catalogue().Lookup(*u.Mode)
		if err != nil {
			return httpError(err)
		}
		name := string(mode.Name)
		u.Mode = &name
	}
	p, err := s.Store.UpdatePrompt(id, u)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// DELETE /api/prompts/:id
func (s *Server) handleDeletePrompt(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.Store.DeletePrompt(id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/prompts/:id/scores
func (s *Server) handleListPromptScores(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	scores, err := s.Store.ListQualityScores(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, scores)
}

// POST /api/prompts/:id/scores scores the stored text and records the result.
func (s *Server) handleScorePrompt(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := s.Store.GetPrompt(id)
	if err != nil {
		return httpError(err)
	}
	q, err := s.Store.AddQualityScore(p.ID, quality.Score(p.Text))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, q)
}
