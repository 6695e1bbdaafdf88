// Package v1 provides the REST handlers of the mentorship API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	logger  zerolog.Logger
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes registers the API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	// Karma values are public
	e.POST("/v1/karma/calculate", h.CalculateKarma)
	e.GET("/v1/karma/:action", h.GetKarmaAction)

	api := e.Group("/v1", h.Authenticate)

	// Inbox
	api.GET("/conversations", h.ListConversations)
	api.GET("/conversations/:conversation_id/messages", h.GetConversationMessages)
	api.POST("/conversations/:conversation_id/read", h.MarkConversationRead)
	api.POST("/messages", h.SendMessage)

	// Journal
	api.GET("/journal/sessions/completed", h.ListCompletedSessions)
	api.POST("/journal/notes", h.SaveJournalNotes)
	api.GET("/journal/notes/:session_id", h.GetJournalNotes)

	// Tasks
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListMentorTasks)
	api.GET("/tasks/mentee/:mentee_id", h.ListMenteeTasks)
	api.GET("/tasks/status/:status", h.ListTasksByStatus)
	api.POST("/tasks/submit-proof", h.SubmitTaskProof)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PUT("/tasks/:id/mark-reviewed", h.MarkTaskReviewed)

	// Users
	api.GET("/users/me", h.GetCurrentUser)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorResponse writes err with the status its kind maps to.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		return fail(c, status, "internal error")
	}
	return fail(c, status, err.Error())
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
