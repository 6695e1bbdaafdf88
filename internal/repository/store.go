// Package store defines the persistence interface of the mentorship API and
// its SQLite and MongoDB implementations.
package store

import (
	"context"
	"time"

	"github.com/mentorlane/api/internal/domain"
)

// Store defines the interface for data persistence. Single-record getters
// return nil, nil when the record does not exist.
type Store interface {
	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	ListMessagesByParticipant(ctx context.Context, userID string) ([]domain.Message, error)
	ListPairMessages(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error)
	MarkMessagesRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error)

	// User operations
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
	AddKarmaPoints(ctx context.Context, userID string, points int) error
	UpsertMentorProfile(ctx context.Context, profile *domain.MentorProfile) error
	GetMentorProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.MentorProfile, error)

	// Booking operations
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookingsByParty(ctx context.Context, party domain.Role, userID string, statuses []string) ([]domain.Booking, error)

	// Journal operations
	UpsertJournalNotes(ctx context.Context, note *domain.JournalNote, side domain.Role) error
	GetJournalNote(ctx context.Context, sessionID string) (*domain.JournalNote, error)

	// Task operations
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, taskID string) (bool, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	Ping(ctx context.Context) error
	Close() error
}

// TaskFilter selects tasks; empty fields match everything.
type TaskFilter struct {
	MentorID string
	MenteeID string
	Status   domain.TaskStatus
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MongoStore)(nil)
)
