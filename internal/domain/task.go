package domain

import (
	"encoding/json"
	"time"
)

// Task is an assignment a mentor gives to a mentee.
type Task struct {
	TaskID            string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Instructions      string          `json:"instructions,omitempty"`
	Category          string          `json:"category,omitempty"`
	Priority          string          `json:"priority,omitempty"`
	DueDate           *time.Time      `json:"dueDate,omitempty"`
	EstimatedTime     string          `json:"estimatedTime,omitempty"`
	Resources         string          `json:"resources,omitempty"`
	NotifyMentee      bool            `json:"notifyMentee"`
	RequireSubmission bool            `json:"requireSubmission"`
	Status            TaskStatus      `json:"status"`
	MentorID          string          `json:"mentorId"`
	MenteeID          string          `json:"menteeId,omitempty"`
	MenteeName        string          `json:"menteeName,omitempty"`
	Attachments       []string        `json:"attachments,omitempty"`
	Submission        json.RawMessage `json:"submission,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// TaskUpdate carries the optional fields of a task update; nil means keep.
type TaskUpdate struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Instructions  *string     `json:"instructions,omitempty"`
	Category      *string     `json:"category,omitempty"`
	Priority      *string     `json:"priority,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	EstimatedTime *string     `json:"estimatedTime,omitempty"`
	Resources     *string     `json:"resources,omitempty"`
	Status        *TaskStatus `json:"status,omitempty"`
}

// Apply copies every set field of u onto t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Instructions != nil {
		t.Instructions = *u.Instructions
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
	if u.EstimatedTime != nil {
		t.EstimatedTime = *u.EstimatedTime
	}
	if u.Resources != nil {
		t.Resources = *u.Resources
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
}
