// Package domain defines the core domain models for the mentorship backend.
package domain

import "strings"

// Role represents the platform role of a user.
type Role string

const (
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// ParseRole maps a free-form role claim onto a Role. Anything that is not
// "mentor" (case-insensitive) is treated as a student.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleMentor)) {
		return RoleMentor
	}
	return RoleStudent
}

// MessageType represents the kind of a direct message.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// TaskStatus represents the lifecycle state of a mentee task.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusSubmitted  TaskStatus = "submitted"
	TaskStatusReviewed   TaskStatus = "reviewed"
	TaskStatusCompleted  TaskStatus = "completed"
)

// BookingStatus values that count as a completed session for the journal.
var CompletedBookingStatuses = []string{"confirmed", "completed", "finished", "ended"}
