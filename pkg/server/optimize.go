package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"promptengine/pkg/optimizer"
	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

func (s *Server) bindOptimize(c echo.Context) (schema.OptimizeRequest, error) {
	var req schema.OptimizeRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if req.Mode == "" {
		req.Mode = string(s.Mode())
	}
	if _, err := s.Optimizer.Catalogue().Resolve(req.Mode, req.Prompt); err != nil {
		return req, httpError(err)
	}
	return req, nil
}

// record stores a finished optimization. Storage failures are logged only.
func (s *Server) record(resp *schema.OptimizeResponse) {
	if s.Store == nil {
		return
	}
	h, err := s.Store.RecordOptimization(resp)
	if err != nil {
		log.Warn("failed saving optimization history", "ref", resp.Ref, "error", err)
		return
	}
	resp.HistoryID = h.ID
}

// POST /api/optimize
func (s *Server) handlePostOptimize(c echo.Context) error {
	req, err := s.bindOptimize(c)
	if err != nil {
		return err
	}
	resp, err := s.Optimizer.Optimize(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	s.record(resp)
	return c.JSON(http.StatusOK, resp)
}

// POST /api/optimize/stream
func (s *Server) handlePostOptimizeStream(c echo.Context) error {
	req, err := s.bindOptimize(c)
	if err != nil {
		return err
	}
	if err := validPrompt(req.Prompt); err != nil {
		return httpError(err)
	}

	w, err := utils.NewSSEWriter(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}
	defer w.Close()

	resp, err := s.Optimizer.StreamOptimize(c.Request().Context(), req, w.Event)
	if err != nil {
		if cancelled(c) {
			log.Warn("optimize stream aborted after client disconnect")
			return nil
		}
		log.Warn("optimize stream failed", "error", err)
		return w.Event("error", utils.ErrJSON(err.Error()))
	}
	s.record(resp)
	return w.Event("done", resp)
}

func validPrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return optimizer.ErrEmptyPrompt
	}
	return nil
}

func cancelled(c echo.Context) bool {
	return errors.Is(c.Request().Context().Err(), context.Canceled)
}
