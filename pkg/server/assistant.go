package server

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"

	"promptengine/pkg/schema"
	"promptengine/pkg/store"
)

// POST /api/assistant
func (s *Server) handlePostAssistant(c echo.Context) error {
	var req schema.AssistantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	reply, err := s.Optimizer.Assist(c.Request().Context(), req.Message, req.Context)
	if err != nil {
		return httpError(err)
	}

	conversation := req.ConversationID
	if conversation == "" {
		conversation = ksuid.New().String()
	}
	if s.Store != nil {
		if _, err := s.Store.AddAssistantMessage(conversation, store.RoleUser, req.Message, ""); err != nil {
			log.Warn("failed saving assistant message", "error", err)
		} else if _, err := s.Store.AddAssistantMessage(conversation, store.RoleAssistant, reply.Text, reply.Model); err != nil {
			log.Warn("failed saving assistant reply", "error", err)
		}
	}

	return c.JSON(http.StatusOK, schema.AssistantResponse{
		ConversationID: conversation,
		Response:       reply.Text,
		Model:          reply.Model,
		Fallback:       reply.Fallback,
	})
}

// GET /api/assistant/:conversation
func (s *Server) handleGetConversation(c echo.Context) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := s.Store.ListAssistantMessages(c.Param("conversation"), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, msgs)
}
