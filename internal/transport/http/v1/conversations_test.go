package v1

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlane/api/internal/config"
	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/inbox"
	"github.com/mentorlane/api/internal/repository"
	"github.com/mentorlane/api/internal/service"
	"github.com/mentorlane/api/policy"
	"github.com/mentorlane/api/tests/helpers"
)

type conversationsResponse struct {
	Success bool                         `json:"success"`
	Data    []domain.ConversationSummary `json:"data"`
	Message string                       `json:"message"`
}

func TestListConversations(t *testing.T) {
	e, db := newTestServer(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, db.UpsertUser(ctx, &domain.User{UserID: "B", Name: "Bea", Email: "bea@example.com", Role: domain.RoleMentor, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, db.UpsertMentorProfile(ctx, &domain.MentorProfile{UserID: "B", ProfilePicture: "https://img/b.png", CreatedAt: now, UpdatedAt: now}))
	for _, m := range []domain.Message{
		{MessageID: "m1", SenderID: "A", ReceiverID: "B", Content: "hi", CreatedAt: now.Add(-2 * time.Minute)},
		{MessageID: "m2", SenderID: "B", ReceiverID: "A", Content: "hello", CreatedAt: now.Add(-time.Minute)},
		{MessageID: "m3", SenderID: "C", ReceiverID: "A", Content: "ping", CreatedAt: now.Add(-3 * time.Minute)},
	} {
		m.MessageType = domain.MessageTypeText
		require.NoError(t, db.CreateMessage(ctx, &m))
	}

	rec := do(t, e, http.MethodGet, "/v1/conversations", token(t, "A", "student"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp conversationsResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)

	first := resp.Data[0]
	assert.Equal(t, inbox.PairKey("A", "B"), first.ConversationID)
	assert.Equal(t, "B", first.ParticipantID)
	assert.Equal(t, "Bea", first.ParticipantName)
	assert.Equal(t, "mentor", first.ParticipantRole)
	assert.Equal(t, "https://img/b.png", first.ProfilePicture)
	assert.Equal(t, "hello", first.LastMessage)
	assert.Equal(t, "B", first.LastSender)
	assert.Equal(t, 1, first.UnreadCount)
	assert.False(t, first.IsOnline)

	second := resp.Data[1]
	assert.Equal(t, "C", second.ParticipantID)
	assert.Empty(t, second.ParticipantName)
}

func TestListConversationsUnverifiedCredential(t *testing.T) {
	e, db := newTestServer(t)
	require.NoError(t, db.CreateMessage(context.Background(), &domain.Message{
		MessageID: "m1", SenderID: "B", ReceiverID: "A", Content: "hi", MessageType: domain.MessageTypeText, CreatedAt: time.Now(),
	}))

	rec := do(t, e, http.MethodGet, "/v1/conversations", forgedToken(`{"sub":"A"}`), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp conversationsResponse
	decode(t, rec, &resp)
	assert.Len(t, resp.Data, 1)
}

func TestListConversationsUnauthorized(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/v1/conversations", forgedToken(`{"name":"nobody"}`), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type failingStore struct {
	store.Store
}

func (failingStore) ListMessagesByParticipant(context.Context, string) ([]domain.Message, error) {
	return nil, errors.New("connection reset")
}

func TestListConversationsStoreFault(t *testing.T) {
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	var logs bytes.Buffer
	svc := service.New(failingStore{helpers.NewTestSQLiteStore(t)}, &config.Config{JWTSecret: testSecret}, engine, zerolog.New(&logs))
	h := NewHandler(svc, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "A", ""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Authenticate(h.ListConversations)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp conversationsResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)

	assert.Contains(t, logs.String(), "connection reset")
	assert.Contains(t, logs.String(), "message read failed")
}

func TestMessagesFlow(t *testing.T) {
	e, db := newTestServer(t)
	alice, bob := token(t, "alice", ""), token(t, "bob", "")
	key := inbox.PairKey("alice", "bob")

	rec := do(t, e, http.MethodPost, "/v1/messages", alice, `{"receiverId":"bob","content":"hi bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/v1/messages", alice, `{"receiverId":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/v1/conversations/"+key+"/messages", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var thread struct {
		Data []domain.Message `json:"data"`
	}
	decode(t, rec, &thread)
	require.Len(t, thread.Data, 1)
	assert.Equal(t, "hi bob", thread.Data[0].Content)

	rec = do(t, e, http.MethodGet, "/v1/conversations/"+key+"/messages", token(t, "eve", ""), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPost, "/v1/conversations/"+key+"/read", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var read struct {
		Updated int64 `json:"updated"`
	}
	decode(t, rec, &read)
	assert.Equal(t, int64(1), read.Updated)

	msgs, err := db.ListPairMessages(context.Background(), "alice", "bob", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsRead)
}
