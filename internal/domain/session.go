package domain

import "time"

// Booking is a scheduled mentoring session between a mentor and a student.
type Booking struct {
	BookingID    string    `json:"id"`
	MentorID     string    `json:"mentor"`
	StudentID    string    `json:"student"`
	SessionTitle string    `json:"sessionTitle,omitempty"`
	SessionDate  time.Time `json:"sessionDate"`
	SessionTime  string    `json:"sessionTime,omitempty"`
	Duration     int       `json:"duration,omitempty"` // minutes
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CompletedSession is the journal view of a finished booking.
type CompletedSession struct {
	SessionID     string    `json:"sessionId"`
	MentorName    string    `json:"mentorName"`
	StudentName   string    `json:"studentName"`
	SessionDate   time.Time `json:"sessionDate"`
	SessionTime   string    `json:"sessionTime,omitempty"`
	Duration      int       `json:"duration"`
	Topic         string    `json:"topic"`
	Status        string    `json:"status"`
	HasNotes      bool      `json:"hasNotes"`
	HasAIAnalysis bool      `json:"hasAIAnalysis"`
}

// JournalNote holds both parties' private notes for one session.
type JournalNote struct {
	SessionID    string    `json:"sessionId"`
	MentorID     string    `json:"mentorId"`
	StudentID    string    `json:"studentId"`
	MentorNotes  string    `json:"mentorNotes,omitempty"`
	StudentNotes string    `json:"studentNotes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NotesFor returns the side of the note written by the given party.
func (n *JournalNote) NotesFor(party Role) string {
	if party == RoleMentor {
		return n.MentorNotes
	}
	return n.StudentNotes
}
