package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListCompletedSessions returns the caller's finished sessions.
// GET /v1/journal/sessions/completed
func (h *Handler) ListCompletedSessions(c echo.Context) error {
	sessions, err := h.service.CompletedSessions(c.Request().Context(), caller(c))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessions,
	})
}

type saveNotesRequest struct {
	SessionID string `json:"sessionId"`
	Notes     string `json:"notes"`
}

// SaveJournalNotes saves the caller's notes for a session.
// POST /v1/journal/notes
func (h *Handler) SaveJournalNotes(c echo.Context) error {
	var req saveNotesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.service.SaveJournalNotes(c.Request().Context(), caller(c).SubjectID, req.SessionID, req.Notes); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notes saved successfully",
	})
}

// GetJournalNotes returns the caller's notes for a session.
// GET /v1/journal/notes/:session_id
func (h *Handler) GetJournalNotes(c echo.Context) error {
	view, err := h.service.GetJournalNotes(c.Request().Context(), caller(c).SubjectID, c.Param("session_id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    view,
	})
}
