package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptengine/pkg/quality"
	"promptengine/pkg/schema"
)

// POST /api/analyze
func (s *Server) handlePostAnalyze(c echo.Context) error {
	var req schema.TextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	return c.JSON(http.StatusOK, quality.Analyze(req.Prompt))
}

// POST /api/quality-score
func (s *Server) handlePostQualityScore(c echo.Context) error {
	var req schema.TextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	return c.JSON(http.StatusOK, quality.Score(req.Prompt))
}

// GET /api/schema/quality
func (s *Server) handleGetQualitySchema(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.QualityReportSchema)
}
