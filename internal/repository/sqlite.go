package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mentorlane/api/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			role TEXT NOT NULL DEFAULT 'student',
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			profile_picture TEXT NOT NULL DEFAULT '',
			is_profile_complete INTEGER NOT NULL DEFAULT 0,
			karma_points INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS mentor_profiles (
			user_id TEXT PRIMARY KEY,
			headline TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			hourly_rate REAL NOT NULL DEFAULT 0,
			skills TEXT,
			profile_picture TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			content TEXT NOT NULL,
			message_type TEXT NOT NULL DEFAULT 'text',
			is_read INTEGER NOT NULL DEFAULT 0,
			read_at DATETIME,
			related_booking TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, is_read, created_at)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			booking_id TEXT PRIMARY KEY,
			mentor_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			session_title TEXT,
			session_date DATETIME NOT NULL,
			session_time TEXT,
			duration INTEGER,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_mentor ON bookings(mentor_id, status, session_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_student ON bookings(student_id, status, session_date)`,
		`CREATE TABLE IF NOT EXISTS journal_notes (
			session_id TEXT PRIMARY KEY,
			mentor_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			mentor_notes TEXT,
			student_notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			task_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			instructions TEXT,
			category TEXT,
			priority TEXT,
			due_date DATETIME,
			estimated_time TEXT,
			resources TEXT,
			notify_mentee INTEGER NOT NULL DEFAULT 0,
			require_submission INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			mentor_id TEXT NOT NULL,
			mentee_id TEXT,
			mentee_name TEXT,
			attachments TEXT,
			submission TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_mentor ON tasks(mentor_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_mentee ON tasks(mentee_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateMessage creates a new message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, sender_id, receiver_id, content, message_type, is_read, read_at, related_booking, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.SenderID, message.ReceiverID, message.Content, message.MessageType,
		message.IsRead, nullTime(message.ReadAt), nullString(message.RelatedBooking), message.CreatedAt.UTC())
	return err
}

const messageColumns = `message_id, sender_id, receiver_id, content, message_type, is_read, read_at, related_booking, created_at`

// ListMessagesByParticipant retrieves every message userID sent or received,
// newest first.
func (s *SQLiteStore) ListMessagesByParticipant(ctx context.Context, userID string) ([]domain.Message, error) {
	return s.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE sender_id = ? OR receiver_id = ?
		 ORDER BY created_at DESC, rowid ASC`,
		userID, userID)
}

// ListPairMessages retrieves the messages exchanged between two users,
// oldest first.
func (s *SQLiteStore) ListPairMessages(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		 WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		 ORDER BY created_at ASC, rowid ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.queryMessages(ctx, query, userA, userB, userB, userA)
}

func (s *SQLiteStore) queryMessages(ctx context.Context, query string, args ...interface{}) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var readAt sql.NullTime
		var related sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.MessageType,
			&msg.IsRead, &readAt, &related, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			msg.ReadAt = &readAt.Time
		}
		if related.Valid {
			msg.RelatedBooking = related.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkMessagesRead marks every unread message from senderID to receiverID as
// read and returns how many changed.
func (s *SQLiteStore) MarkMessagesRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET is_read = 1, read_at = ? WHERE receiver_id = ? AND sender_id = ? AND is_read = 0`,
		at.UTC(), receiverID, senderID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpsertUser creates or replaces a user profile. Karma points are kept when
// the user already exists.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, role, name, email, bio, profile_picture, is_profile_complete, karma_points, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			role = excluded.role,
			name = excluded.name,
			email = excluded.email,
			bio = excluded.bio,
			profile_picture = excluded.profile_picture,
			is_profile_complete = excluded.is_profile_complete,
			updated_at = excluded.updated_at`,
		user.UserID, user.Role, user.Name, user.Email, user.Bio, user.ProfilePicture, user.IsProfileComplete,
		user.KarmaPoints, user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	return err
}

const userColumns = `user_id, role, name, email, bio, profile_picture, is_profile_complete, karma_points, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.UserID, &u.Role, &u.Name, &u.Email, &u.Bio, &u.ProfilePicture, &u.IsProfileComplete,
		&u.KarmaPoints, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUsersByIDs retrieves the users with the given IDs, keyed by ID.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	users := make(map[string]domain.User)
	placeholders, args := inClause(userIDs)
	if len(args) == 0 {
		return users, nil
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT `+userColumns+` FROM users WHERE user_id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[u.UserID] = u
	}
	return users, rows.Err()
}

// AddKarmaPoints adds points to a user's karma total. Unknown users are
// ignored.
func (s *SQLiteStore) AddKarmaPoints(ctx context.Context, userID string, points int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET karma_points = karma_points + ? WHERE user_id = ?`, points, userID)
	return err
}

// UpsertMentorProfile creates or replaces a mentor profile.
func (s *SQLiteStore) UpsertMentorProfile(ctx context.Context, profile *domain.MentorProfile) error {
	skills, _ := json.Marshal(profile.Skills)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO mentor_profiles (user_id, headline, bio, company, hourly_rate, skills, profile_picture, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID, profile.Headline, profile.Bio, profile.Company, profile.HourlyRate, string(skills),
		profile.ProfilePicture, profile.CreatedAt.UTC(), profile.UpdatedAt.UTC())
	return err
}

// GetMentorProfilesByUserIDs retrieves mentor profiles keyed by user ID.
func (s *SQLiteStore) GetMentorProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.MentorProfile, error) {
	profiles := make(map[string]domain.MentorProfile)
	placeholders, args := inClause(userIDs)
	if len(args) == 0 {
		return profiles, nil
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT user_id, headline, bio, company, hourly_rate, skills, profile_picture, created_at, updated_at
		 FROM mentor_profiles WHERE user_id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.MentorProfile
		var skills sql.NullString
		if err := rows.Scan(&p.UserID, &p.Headline, &p.Bio, &p.Company, &p.HourlyRate, &skills,
			&p.ProfilePicture, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if skills.Valid && skills.String != "" {
			if err := json.Unmarshal([]byte(skills.String), &p.Skills); err != nil {
				return nil, fmt.Errorf("decode skills of %s: %w", p.UserID, err)
			}
		}
		profiles[p.UserID] = p
	}
	return profiles, rows.Err()
}

// CreateBooking creates a new booking.
func (s *SQLiteStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	var duration sql.NullInt64
	if booking.Duration > 0 {
		duration = sql.NullInt64{Int64: int64(booking.Duration), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (booking_id, mentor_id, student_id, session_title, session_date, session_time, duration, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.BookingID, booking.MentorID, booking.StudentID, nullString(booking.SessionTitle),
		booking.SessionDate.UTC(), nullString(booking.SessionTime), duration, booking.Status, booking.CreatedAt.UTC())
	return err
}

const bookingColumns = `booking_id, mentor_id, student_id, session_title, session_date, session_time, duration, status, created_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (domain.Booking, error) {
	var b domain.Booking
	var title, sessionTime sql.NullString
	var duration sql.NullInt64
	if err := row.Scan(&b.BookingID, &b.MentorID, &b.StudentID, &title, &b.SessionDate, &sessionTime,
		&duration, &b.Status, &b.CreatedAt); err != nil {
		return b, err
	}
	b.SessionTitle = title.String
	b.SessionTime = sessionTime.String
	b.Duration = int(duration.Int64)
	return b, nil
}

// GetBooking retrieves a booking by ID.
func (s *SQLiteStore) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := scanBooking(s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_id = ?`, bookingID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookingsByParty lists the bookings where userID is the given party,
// restricted to statuses when non-empty, most recent session first.
func (s *SQLiteStore) ListBookingsByParty(ctx context.Context, party domain.Role, userID string, statuses []string) ([]domain.Booking, error) {
	column := "student_id"
	if party == domain.RoleMentor {
		column = "mentor_id"
	}
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s = ?`, bookingColumns, column)
	args := []interface{}{userID}

	if len(statuses) > 0 {
		placeholders, statusArgs := inClause(statuses)
		query += fmt.Sprintf(" AND status IN (%s)", placeholders)
		args = append(args, statusArgs...)
	}
	query += ` ORDER BY session_date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpsertJournalNotes writes one party's side of a session's notes. The other
// side is left untouched and created_at is only set on insert.
func (s *SQLiteStore) UpsertJournalNotes(ctx context.Context, note *domain.JournalNote, side domain.Role) error {
	column, notes := "student_notes", note.StudentNotes
	if side == domain.RoleMentor {
		column, notes = "mentor_notes", note.MentorNotes
	}
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO journal_notes (session_id, mentor_id, student_id, %[1]s, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			mentor_id = excluded.mentor_id,
			student_id = excluded.student_id,
			%[1]s = excluded.%[1]s,
			updated_at = excluded.updated_at`, column),
		note.SessionID, note.MentorID, note.StudentID, notes, note.CreatedAt.UTC(), note.UpdatedAt.UTC())
	return err
}

// GetJournalNote retrieves the notes of a session.
func (s *SQLiteStore) GetJournalNote(ctx context.Context, sessionID string) (*domain.JournalNote, error) {
	var n domain.JournalNote
	var mentorNotes, studentNotes sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, mentor_id, student_id, mentor_notes, student_notes, created_at, updated_at
		 FROM journal_notes WHERE session_id = ?`, sessionID).
		Scan(&n.SessionID, &n.MentorID, &n.StudentID, &mentorNotes, &studentNotes, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.MentorNotes = mentorNotes.String
	n.StudentNotes = studentNotes.String
	return &n, nil
}

// CreateTask creates a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *domain.Task) error {
	attachments, _ := json.Marshal(task.Attachments)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (task_id, title, description, instructions, category, priority, due_date, estimated_time,
			resources, notify_mentee, require_submission, status, mentor_id, mentee_id, mentee_name, attachments,
			submission, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.TaskID, task.Title, task.Description, task.Instructions, task.Category, task.Priority,
		nullTime(task.DueDate), task.EstimatedTime, task.Resources, task.NotifyMentee, task.RequireSubmission,
		task.Status, task.MentorID, nullString(task.MenteeID), nullString(task.MenteeName), string(attachments),
		nullStringBytes(task.Submission), task.CreatedAt.UTC(), task.UpdatedAt.UTC())
	return err
}

// UpdateTask replaces the mutable fields of a task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *domain.Task) error {
	attachments, _ := json.Marshal(task.Attachments)
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, instructions = ?, category = ?, priority = ?, due_date = ?,
			estimated_time = ?, resources = ?, notify_mentee = ?, require_submission = ?, status = ?,
			mentee_id = ?, mentee_name = ?, attachments = ?, submission = ?, updated_at = ?
		 WHERE task_id = ?`,
		task.Title, task.Description, task.Instructions, task.Category, task.Priority, nullTime(task.DueDate),
		task.EstimatedTime, task.Resources, task.NotifyMentee, task.RequireSubmission, task.Status,
		nullString(task.MenteeID), nullString(task.MenteeName), string(attachments), nullStringBytes(task.Submission),
		task.UpdatedAt.UTC(), task.TaskID)
	return err
}

// DeleteTask deletes a task and reports whether it existed.
func (s *SQLiteStore) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, taskID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

const taskColumns = `task_id, title, description, instructions, category, priority, due_date, estimated_time, resources,
	notify_mentee, require_submission, status, mentor_id, mentee_id, mentee_name, attachments, submission, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (domain.Task, error) {
	var t domain.Task
	var description, instructions, category, priority, estimated, resources sql.NullString
	var menteeID, menteeName, attachments, submission sql.NullString
	var dueDate sql.NullTime
	if err := row.Scan(&t.TaskID, &t.Title, &description, &instructions, &category, &priority, &dueDate, &estimated,
		&resources, &t.NotifyMentee, &t.RequireSubmission, &t.Status, &t.MentorID, &menteeID, &menteeName,
		&attachments, &submission, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return t, err
	}
	t.Description = description.String
	t.Instructions = instructions.String
	t.Category = category.String
	t.Priority = priority.String
	t.EstimatedTime = estimated.String
	t.Resources = resources.String
	t.MenteeID = menteeID.String
	t.MenteeName = menteeName.String
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	if attachments.Valid && attachments.String != "" {
		if err := json.Unmarshal([]byte(attachments.String), &t.Attachments); err != nil {
			return t, fmt.Errorf("decode attachments of %s: %w", t.TaskID, err)
		}
	}
	if submission.Valid {
		t.Submission = json.RawMessage(submission.String)
	}
	return t, nil
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = ?`, taskID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks lists tasks matching filter, newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1 = 1`
	var args []interface{}

	if filter.MentorID != "" {
		query += ` AND mentor_id = ?`
		args = append(args, filter.MentorID)
	}
	if filter.MenteeID != "" {
		query += ` AND mentee_id = ?`
		args = append(args, filter.MenteeID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// inClause builds "?, ?, ?" for the distinct non-empty values.
func inClause(values []string) (string, []interface{}) {
	seen := make(map[string]struct{}, len(values))
	placeholders := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		placeholders = append(placeholders, "?")
		args = append(args, v)
	}
	return strings.Join(placeholders, ","), args
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringBytes(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
