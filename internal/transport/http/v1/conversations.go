package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mentorlane/api/internal/service"
)

// ListConversations returns the caller's conversation list.
// GET /v1/conversations
func (h *Handler) ListConversations(c echo.Context) error {
	conversations := h.service.ListConversations(c.Request().Context(), caller(c).SubjectID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    conversations,
		"message": "Conversations retrieved successfully",
	})
}

// GetConversationMessages returns the thread of a conversation.
// GET /v1/conversations/:conversation_id/messages
func (h *Handler) GetConversationMessages(c echo.Context) error {
	limit := service.DefaultThreadLimit
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	messages, err := h.service.GetThread(c.Request().Context(), caller(c).SubjectID, c.Param("conversation_id"), limit)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    messages,
	})
}

// MarkConversationRead marks the caller's unread messages in a conversation.
// POST /v1/conversations/:conversation_id/read
func (h *Handler) MarkConversationRead(c echo.Context) error {
	n, err := h.service.MarkConversationRead(c.Request().Context(), caller(c).SubjectID, c.Param("conversation_id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"updated": n,
	})
}

// SendMessage sends a direct message from the caller.
// POST /v1/messages
func (h *Handler) SendMessage(c echo.Context) error {
	var req service.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.service.SendMessage(c.Request().Context(), caller(c).SubjectID, req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    msg,
	})
}
