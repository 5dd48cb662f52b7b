package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"promptengine/pkg/modes"
	"promptengine/pkg/optimizer"
	"promptengine/pkg/store"
)

type Server struct {
	Echo      *echo.Echo
	Optimizer *optimizer.Service
	Store     *store.Store
	Ctx       context.Context

	maxUpload int64

	mu   sync.RWMutex
	mode modes.Mode
}

type Options struct {
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string
	// MaxUpload bounds uploaded documents in bytes.
	MaxUpload int64
}

const defaultMaxUpload = 1 << 20

func NewServer(ctx context.Context, opt *optimizer.Service, st *store.Store, o Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	if len(o.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: o.CORSOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	if o.MaxUpload <= 0 {
		o.MaxUpload = defaultMaxUpload
	}

	s := &Server{
		Echo:      e,
		Optimizer: opt,
		Store:     st,
		Ctx:       ctx,
		maxUpload: o.MaxUpload,
		mode:      modes.DefaultMode,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.GET("/health", s.handleGetHealth)

	api := s.Echo.Group("/api")
	api.POST("/optimize", s.handlePostOptimize)
	api.POST("/optimize/stream", s.handlePostOptimizeStream)

	api.POST("/analyze", s.handlePostAnalyze)
	api.POST("/quality-score", s.handlePostQualityScore)
	api.GET("/schema/quality", s.handleGetQualitySchema)

	api.POST("/assistant", s.handlePostAssistant)
	api.GET("/assistant/:conversation", s.handleGetConversation)

	api.POST("/generate-image", s.handlePostGenerateImage)
	api.POST("/upload/keywords", s.handlePostKeywords)

	api.GET("/history", s.handleGetHistory)
	api.GET("/history/:id", s.handleGetHistoryEntry)
	api.DELETE("/history/:id", s.handleDeleteHistoryEntry)
	api.GET("/history/:id/diff", s.handleGetHistoryDiff)

	api.GET("/prompts", s.handleListPrompts)
	api.POST("/prompts", s.handleCreatePrompt)
	api.GET("/prompts/:id", s.handleGetPrompt)
	api.PUT("/prompts/:id", s.handleUpdatePrompt)
	api.DELETE("/prompts/:id", s.handleDeletePrompt)
	api.GET("/prompts/:id/scores", s.handleListPromptScores)
	api.POST("/prompts/:id/scores", s.handleScorePrompt)

	api.POST("/set-mode", s.handlePostSetMode)
	api.GET("/get-mode", s.handleGetMode)
	api.GET("/available-modes", s.handleGetAvailableModes)
	api.GET("/stats", s.handleGetStats)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}

// Mode is the mode used by requests that do not name one.
func (s *Server) Mode() modes.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Server) setMode(m modes.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// httpError maps domain errors onto HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, modes.ErrUnknownMode),
		errors.Is(err, optimizer.ErrEmptyPrompt),
		errors.Is(err, optimizer.ErrEmptyMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requireStore() error {
	if s.Store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage disabled")
	}
	return nil
}
