package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/repository"
	"github.com/mentorlane/api/policy"
)

// CreateTask stores a new task assigned by mentorID. The mentee name is
// filled from the mentee's profile when one exists.
func (s *Service) CreateTask(ctx context.Context, mentorID string, task *domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := s.now()
	task.TaskID = uuid.NewString()
	task.MentorID = mentorID
	task.Status = domain.TaskStatusNotStarted
	task.Submission = nil
	task.CreatedAt = now
	task.UpdatedAt = now

	if task.MenteeID != "" {
		mentee, err := s.store.GetUser(ctx, task.MenteeID)
		if err != nil {
			s.logger.Warn().Err(err).Str("mentee_id", task.MenteeID).Msg("mentee lookup failed")
		} else if mentee != nil {
			task.MenteeName = mentee.Name
		}
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListMentorTasks lists the tasks assigned by mentorID.
func (s *Service) ListMentorTasks(ctx context.Context, mentorID string) ([]domain.Task, error) {
	return s.listTasks(ctx, store.TaskFilter{MentorID: mentorID})
}

// ListMenteeTasks lists the tasks assigned to menteeID.
func (s *Service) ListMenteeTasks(ctx context.Context, menteeID string) ([]domain.Task, error) {
	return s.listTasks(ctx, store.TaskFilter{MenteeID: menteeID})
}

// ListTasksByStatus lists the tasks in status that callerID assigned.
func (s *Service) ListTasksByStatus(ctx context.Context, callerID string, status domain.TaskStatus) ([]domain.Task, error) {
	return s.listTasks(ctx, store.TaskFilter{MentorID: callerID, Status: status})
}

func (s *Service) listTasks(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.store.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetTask returns a task the caller assigned or was assigned.
func (s *Service) GetTask(ctx context.Context, callerID, taskID string) (*domain.Task, error) {
	return s.authorizeTask(ctx, policy.ActionTaskRead, callerID, taskID)
}

// UpdateTask applies the set fields of update to a task the caller assigned.
func (s *Service) UpdateTask(ctx context.Context, callerID, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	task, err := s.authorizeTask(ctx, policy.ActionTaskModify, callerID, taskID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	update.Apply(task)
	task.UpdatedAt = s.now()
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task the caller assigned.
func (s *Service) DeleteTask(ctx context.Context, callerID, taskID string) error {
	if _, err := s.authorizeTask(ctx, policy.ActionTaskModify, callerID, taskID); err != nil {
		return err
	}
	deleted, err := s.store.DeleteTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: task not found", ErrNotFound)
	}
	return nil
}

// SubmitTaskProof records the mentee's proof of work and moves the task to
// submitted.
func (s *Service) SubmitTaskProof(ctx context.Context, callerID, taskID string, files []json.RawMessage) (*domain.Task, error) {
	task, err := s.authorizeTask(ctx, policy.ActionTaskSubmit, callerID, taskID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []json.RawMessage{}
	}

	now := s.now()
	submission, err := json.Marshal(struct {
		Files       []json.RawMessage `json:"files"`
		SubmittedAt time.Time         `json:"submittedAt"`
	}{files, now})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid files: %v", ErrInvalidInput, err)
	}

	task.Submission = submission
	task.Status = domain.TaskStatusSubmitted
	task.UpdatedAt = now
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to submit task: %w", err)
	}
	return task, nil
}

// MarkTaskReviewed moves a task the caller assigned to reviewed.
func (s *Service) MarkTaskReviewed(ctx context.Context, callerID, taskID string) (*domain.Task, error) {
	task, err := s.authorizeTask(ctx, policy.ActionTaskModify, callerID, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatusReviewed
	task.UpdatedAt = s.now()
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to review task: %w", err)
	}
	return task, nil
}

func (s *Service) authorizeTask(ctx context.Context, action, callerID, taskID string) (*domain.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task not found", ErrNotFound)
	}

	allowed, reason, err := s.policyEngine.Allow(ctx, policy.Input{
		Action:   action,
		Subject:  policy.Subject{ID: callerID},
		Resource: policy.Resource{MentorID: task.MentorID, MenteeID: task.MenteeID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, reason)
	}
	return task, nil
}
