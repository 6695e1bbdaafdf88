package v1

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlane/api/internal/domain"
)

type taskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Task    domain.Task `json:"task"`
}

type taskListResponse struct {
	Success bool          `json:"success"`
	Tasks   []domain.Task `json:"tasks"`
	Total   int           `json:"total"`
}

func TestTaskEndpoints(t *testing.T) {
	e, db := newTestServer(t)
	now := time.Now().UTC()
	require.NoError(t, db.UpsertUser(context.Background(), &domain.User{UserID: "mentee", Name: "Mina", CreatedAt: now, UpdatedAt: now}))

	mentor := token(t, "mentor", "mentor")
	mentee := token(t, "mentee", "student")

	rec := do(t, e, http.MethodPost, "/v1/tasks", mentor, `{"title":"Write tests","menteeId":"mentee","priority":"high"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created taskResponse
	decode(t, rec, &created)
	assert.Equal(t, domain.TaskStatusNotStarted, created.Task.Status)
	assert.Equal(t, "Mina", created.Task.MenteeName)
	assert.Equal(t, "mentor", created.Task.MentorID)
	id := created.Task.TaskID

	rec = do(t, e, http.MethodPost, "/v1/tasks", mentor, `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/v1/tasks", mentor, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list taskListResponse
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	rec = do(t, e, http.MethodGet, "/v1/tasks/mentee/mentee", mentee, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	rec = do(t, e, http.MethodGet, "/v1/tasks/"+id, mentee, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/v1/tasks/missing", mentor, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPut, "/v1/tasks/"+id, mentee, `{"title":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPut, "/v1/tasks/"+id, mentor, `{"status":"in-progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated taskResponse
	decode(t, rec, &updated)
	assert.Equal(t, "Write tests", updated.Task.Title)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Task.Status)

	rec = do(t, e, http.MethodPost, "/v1/tasks/submit-proof", mentee, `{"taskId":"`+id+`","files":[{"url":"https://files/proof.pdf"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/v1/tasks/submit-proof", mentee, `{"files":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/v1/tasks/status/submitted", mentor, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	rec = do(t, e, http.MethodPut, "/v1/tasks/"+id+"/mark-reviewed", mentee, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPut, "/v1/tasks/"+id+"/mark-reviewed", mentor, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reviewed taskResponse
	decode(t, rec, &reviewed)
	assert.Equal(t, domain.TaskStatusReviewed, reviewed.Task.Status)

	rec = do(t, e, http.MethodDelete, "/v1/tasks/"+id, mentor, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, "/v1/tasks/"+id, mentor, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
