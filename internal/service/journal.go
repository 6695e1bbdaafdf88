package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/policy"
)

// Journal defaults for sessions with missing data.
const (
	DefaultSessionDuration = 60
	DefaultSessionTopic    = "General Mentoring"
	fallbackMentorName     = "Mentor"
	fallbackStudentName    = "Student"
)

// JournalNotesView is one party's side of a session's notes.
type JournalNotesView struct {
	SessionID string    `json:"sessionId"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompletedSessions lists the caller's finished sessions, most recent first.
// The caller's party is taken from the role on the identity.
func (s *Service) CompletedSessions(ctx context.Context, caller identity.ResolvedIdentity) ([]domain.CompletedSession, error) {
	party := domain.ParseRole(caller.Role)
	bookings, err := s.store.ListBookingsByParty(ctx, party, caller.SubjectID, domain.CompletedBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	ids := make([]string, 0, 2*len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.MentorID, b.StudentID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session participant lookup failed, using fallback names")
		users = nil
	}

	sessions := make([]domain.CompletedSession, 0, len(bookings))
	for _, b := range bookings {
		session := domain.CompletedSession{
			SessionID:     b.BookingID,
			MentorName:    fallbackMentorName,
			StudentName:   fallbackStudentName,
			SessionDate:   b.SessionDate,
			SessionTime:   b.SessionTime,
			Duration:      b.Duration,
			Topic:         b.SessionTitle,
			Status:        b.Status,
			HasNotes:      false,
			HasAIAnalysis: true,
		}
		if u, ok := users[b.MentorID]; ok && u.Name != "" {
			session.MentorName = u.Name
		}
		if u, ok := users[b.StudentID]; ok && u.Name != "" {
			session.StudentName = u.Name
		}
		if session.Duration <= 0 {
			session.Duration = DefaultSessionDuration
		}
		if strings.TrimSpace(session.Topic) == "" {
			session.Topic = DefaultSessionTopic
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// SaveJournalNotes writes the caller's side of a session's notes.
func (s *Service) SaveJournalNotes(ctx context.Context, callerID, sessionID, notes string) (*domain.JournalNote, error) {
	booking, side, err := s.authorizeSession(ctx, policy.ActionJournalWrite, callerID, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	note := &domain.JournalNote{
		SessionID: booking.BookingID,
		MentorID:  booking.MentorID,
		StudentID: booking.StudentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if side == domain.RoleMentor {
		note.MentorNotes = notes
	} else {
		note.StudentNotes = notes
	}
	if err := s.store.UpsertJournalNotes(ctx, note, side); err != nil {
		return nil, fmt.Errorf("failed to save notes: %w", err)
	}
	return note, nil
}

// GetJournalNotes returns the caller's side of a session's notes. Sessions
// without notes yield empty notes stamped with the current time.
func (s *Service) GetJournalNotes(ctx context.Context, callerID, sessionID string) (*JournalNotesView, error) {
	_, side, err := s.authorizeSession(ctx, policy.ActionJournalRead, callerID, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &JournalNotesView{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
	note, err := s.store.GetJournalNote(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	if note != nil {
		view.Notes = note.NotesFor(side)
		view.CreatedAt = note.CreatedAt
		view.UpdatedAt = note.UpdatedAt
	}
	return view, nil
}

// authorizeSession loads the booking behind sessionID and checks that the
// caller is one of its parties. It returns the side the caller writes to.
func (s *Service) authorizeSession(ctx context.Context, action, callerID, sessionID string) (*domain.Booking, domain.Role, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, "", fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}
	booking, err := s.store.GetBooking(ctx, sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get session: %w", err)
	}
	if booking == nil {
		return nil, "", fmt.Errorf("%w: session not found", ErrNotFound)
	}

	allowed, reason, err := s.policyEngine.Allow(ctx, policy.Input{
		Action:   action,
		Subject:  policy.Subject{ID: callerID},
		Resource: policy.Resource{MentorID: booking.MentorID, StudentID: booking.StudentID},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, "", fmt.Errorf("%w: %s", ErrForbidden, reason)
	}

	side := domain.RoleMentor
	if booking.StudentID == callerID {
		side = domain.RoleStudent
	}
	return booking, side, nil
}
