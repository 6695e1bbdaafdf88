package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlane/api/internal/config"
	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/internal/inbox"
	"github.com/mentorlane/api/internal/repository"
	"github.com/mentorlane/api/policy"
	"github.com/mentorlane/api/tests/helpers"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	svc := New(st, &config.Config{JWTSecret: "test-secret"}, engine, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc, st
}

func seedUser(t *testing.T, st store.Store, id, name string, role domain.Role) {
	t.Helper()
	require.NoError(t, st.UpsertUser(context.Background(), &domain.User{
		UserID: id, Name: name, Role: role, Email: id + "@example.com", CreatedAt: testNow, UpdatedAt: testNow,
	}))
}

func TestSendMessageAndListConversations(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedUser(t, st, "alice", "Alice", domain.RoleStudent)
	seedUser(t, st, "bob", "Bob", domain.RoleMentor)

	msg, err := svc.SendMessage(ctx, "alice", SendMessageInput{ReceiverID: "bob", Content: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.MessageID)
	assert.Equal(t, domain.MessageTypeText, msg.MessageType)
	assert.False(t, msg.IsRead)

	alice, err := svc.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.KarmaPoints[domain.KarmaMessageSent], alice.KarmaPoints)

	convs := svc.ListConversations(ctx, "bob")
	require.Len(t, convs, 1)
	assert.Equal(t, inbox.PairKey("alice", "bob"), convs[0].ConversationID)
	assert.Equal(t, "alice", convs[0].ParticipantID)
	assert.Equal(t, "Alice", convs[0].ParticipantName)
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, "hello", convs[0].LastMessage)

	assert.Empty(t, svc.ListConversations(ctx, "carol"))
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SendMessageInput
	}{
		{"missing receiver", SendMessageInput{Content: "hi"}},
		{"self message", SendMessageInput{ReceiverID: "alice", Content: "hi"}},
		{"blank content", SendMessageInput{ReceiverID: "bob", Content: "  "}},
		{"unknown type", SendMessageInput{ReceiverID: "bob", Content: "hi", MessageType: "video"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendMessage(ctx, "alice", tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestThreadAndMarkRead(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "alice", SendMessageInput{ReceiverID: "bob", Content: "one"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "bob", SendMessageInput{ReceiverID: "alice", Content: "two"})
	require.NoError(t, err)

	key := inbox.PairKey("alice", "bob")
	thread, err := svc.GetThread(ctx, "bob", key, 0)
	require.NoError(t, err)
	assert.Len(t, thread, 2)

	_, err = svc.GetThread(ctx, "mallory", key, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetThread(ctx, "bob", "not-a-key", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	n, err := svc.MarkConversationRead(ctx, "bob", key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	convs := svc.ListConversations(ctx, "bob")
	require.Len(t, convs, 1)
	assert.Equal(t, 0, convs[0].UnreadCount)
}

func TestKarma(t *testing.T) {
	svc, _ := newTestService(t)

	total := svc.CalculateKarma(domain.KarmaTally{ProfileCompleted: true, SessionsCompleted: 2, MessagesSent: 3, SkillsAdded: 1, GoalsSet: 1})
	assert.Equal(t, 50+60+15+10+15, total)

	points, err := svc.KarmaForAction(domain.KarmaGoalSet)
	require.NoError(t, err)
	assert.Equal(t, 15, points)

	_, err = svc.KarmaForAction("teleport")
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedBooking(t *testing.T, st store.Store, b domain.Booking) {
	t.Helper()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = testNow
	}
	require.NoError(t, st.CreateBooking(context.Background(), &b))
}

func TestCompletedSessions(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedUser(t, st, "m1", "Grace", domain.RoleMentor)

	seedBooking(t, st, domain.Booking{BookingID: "b1", MentorID: "m1", StudentID: "s1", SessionTitle: "Go basics", Duration: 30, Status: "completed", SessionDate: testNow.AddDate(0, 0, -2)})
	seedBooking(t, st, domain.Booking{BookingID: "b2", MentorID: "m1", StudentID: "s2", Status: "confirmed", SessionDate: testNow.AddDate(0, 0, -1)})
	seedBooking(t, st, domain.Booking{BookingID: "b3", MentorID: "m1", StudentID: "s1", Status: "cancelled", SessionDate: testNow})

	sessions, err := svc.CompletedSessions(ctx, identity.ResolvedIdentity{SubjectID: "m1", Role: "MENTOR"})
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "b2", sessions[0].SessionID)
	assert.Equal(t, "Grace", sessions[0].MentorName)
	assert.Equal(t, "Student", sessions[0].StudentName)
	assert.Equal(t, DefaultSessionDuration, sessions[0].Duration)
	assert.Equal(t, DefaultSessionTopic, sessions[0].Topic)
	assert.False(t, sessions[0].HasNotes)
	assert.True(t, sessions[0].HasAIAnalysis)

	assert.Equal(t, "Go basics", sessions[1].Topic)
	assert.Equal(t, 30, sessions[1].Duration)

	// Without a mentor role the caller is looked up as a student.
	asStudent, err := svc.CompletedSessions(ctx, identity.ResolvedIdentity{SubjectID: "m1"})
	require.NoError(t, err)
	assert.Empty(t, asStudent)
}

func TestJournalNotes(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedBooking(t, st, domain.Booking{BookingID: "b1", MentorID: "m1", StudentID: "s1", Status: "completed", SessionDate: testNow})

	view, err := svc.GetJournalNotes(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Empty(t, view.Notes)
	assert.Equal(t, testNow, view.CreatedAt)

	_, err = svc.SaveJournalNotes(ctx, "m1", "b1", "mentor view")
	require.NoError(t, err)
	_, err = svc.SaveJournalNotes(ctx, "s1", "b1", "student view")
	require.NoError(t, err)

	view, err = svc.GetJournalNotes(ctx, "m1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "mentor view", view.Notes)

	view, err = svc.GetJournalNotes(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "student view", view.Notes)

	_, err = svc.SaveJournalNotes(ctx, "intruder", "b1", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetJournalNotes(ctx, "m1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SaveJournalNotes(ctx, "m1", " ", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskLifecycle(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedUser(t, st, "s1", "Sam", domain.RoleStudent)

	task, err := svc.CreateTask(ctx, "m1", &domain.Task{Title: "Build a CLI", MenteeID: "s1", Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusNotStarted, task.Status)
	assert.Equal(t, "m1", task.MentorID)
	assert.Equal(t, "Sam", task.MenteeName)

	_, err = svc.CreateTask(ctx, "m1", &domain.Task{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	mine, err := svc.ListMentorTasks(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := svc.ListMenteeTasks(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	_, err = svc.GetTask(ctx, "stranger", task.TaskID)
	assert.ErrorIs(t, err, ErrForbidden)

	title := "Build a better CLI"
	status := domain.TaskStatusInProgress
	updated, err := svc.UpdateTask(ctx, "m1", task.TaskID, domain.TaskUpdate{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

	_, err = svc.UpdateTask(ctx, "s1", task.TaskID, domain.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SubmitTaskProof(ctx, "m1", task.TaskID, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	submitted, err := svc.SubmitTaskProof(ctx, "s1", task.TaskID, []json.RawMessage{json.RawMessage(`{"name":"proof.png"}`)})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusSubmitted, submitted.Status)
	assert.JSONEq(t, `{"files":[{"name":"proof.png"}],"submittedAt":"2026-04-01T09:00:00Z"}`, string(submitted.Submission))

	bySubmitted, err := svc.ListTasksByStatus(ctx, "m1", domain.TaskStatusSubmitted)
	require.NoError(t, err)
	assert.Len(t, bySubmitted, 1)

	reviewed, err := svc.MarkTaskReviewed(ctx, "m1", task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusReviewed, reviewed.Status)

	require.NoError(t, svc.DeleteTask(ctx, "m1", task.TaskID))
	err = svc.DeleteTask(ctx, "m1", task.TaskID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveIdentity(t *testing.T) {
	svc, _ := newTestService(t)
	assert.False(t, svc.ResolveIdentity("").Resolved())
	assert.False(t, svc.ResolveIdentity("garbage").Resolved())
}
