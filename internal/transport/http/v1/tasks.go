package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlane/api/internal/domain"
)

// CreateTask creates a task assigned by the caller.
// POST /v1/tasks
func (h *Handler) CreateTask(c echo.Context) error {
	var task domain.Task
	if err := c.Bind(&task); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateTask(c.Request().Context(), caller(c).SubjectID, &task)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Task created successfully",
		"task":    created,
	})
}

// ListMentorTasks lists the tasks the caller assigned.
// GET /v1/tasks
func (h *Handler) ListMentorTasks(c echo.Context) error {
	tasks, err := h.service.ListMentorTasks(c.Request().Context(), caller(c).SubjectID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return taskList(c, tasks)
}

// ListMenteeTasks lists the tasks assigned to a mentee.
// GET /v1/tasks/mentee/:mentee_id
func (h *Handler) ListMenteeTasks(c echo.Context) error {
	tasks, err := h.service.ListMenteeTasks(c.Request().Context(), c.Param("mentee_id"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return taskList(c, tasks)
}

// ListTasksByStatus lists the caller's tasks in one status.
// GET /v1/tasks/status/:status
func (h *Handler) ListTasksByStatus(c echo.Context) error {
	status := domain.TaskStatus(c.Param("status"))
	tasks, err := h.service.ListTasksByStatus(c.Request().Context(), caller(c).SubjectID, status)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return taskList(c, tasks)
}

// GetTask returns a single task.
// GET /v1/tasks/:id
func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.service.GetTask(c.Request().Context(), caller(c).SubjectID, c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    task,
	})
}

// UpdateTask updates the set fields of a task.
// PUT /v1/tasks/:id
func (h *Handler) UpdateTask(c echo.Context) error {
	var update domain.TaskUpdate
	if err := c.Bind(&update); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.UpdateTask(c.Request().Context(), caller(c).SubjectID, c.Param("id"), update)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask deletes a task.
// DELETE /v1/tasks/:id
func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), caller(c).SubjectID, c.Param("id")); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task deleted successfully",
	})
}

type submitProofRequest struct {
	TaskID string            `json:"taskId"`
	Files  []json.RawMessage `json:"files"`
}

// SubmitTaskProof attaches the mentee's proof to a task.
// POST /v1/tasks/submit-proof
func (h *Handler) SubmitTaskProof(c echo.Context) error {
	var req submitProofRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.SubmitTaskProof(c.Request().Context(), caller(c).SubjectID, req.TaskID, req.Files)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Proof submitted successfully",
		"task":    task,
	})
}

// MarkTaskReviewed marks a submitted task as reviewed.
// PUT /v1/tasks/:id/mark-reviewed
func (h *Handler) MarkTaskReviewed(c echo.Context) error {
	task, err := h.service.MarkTaskReviewed(c.Request().Context(), caller(c).SubjectID, c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task marked as reviewed",
		"task":    task,
	})
}

func taskList(c echo.Context, tasks []domain.Task) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   tasks,
		"total":   len(tasks),
	})
}
