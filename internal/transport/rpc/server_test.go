package rpc

import (
	"context"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlane/api/internal/config"
	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/internal/inbox"
	"github.com/mentorlane/api/internal/service"
	"github.com/mentorlane/api/policy"
	"github.com/mentorlane/api/tests/helpers"
)

func newTestClient(t *testing.T) *rpc.Client {
	t.Helper()
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	svc := service.New(helpers.NewTestSQLiteStore(t), &config.Config{RequestTimeout: time.Second}, engine, zerolog.Nop())

	srv, err := NewServer(svc, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, srv.Listen("127.0.0.1:0"))
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	client, err := jsonrpc.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRPCMessagingRoundTrip(t *testing.T) {
	client := newTestClient(t)

	var sent domain.Message
	err := client.Call("Mentorlane.SendMessage", &SendMessageArgs{
		SenderID: "alice",
		Message:  service.SendMessageInput{ReceiverID: "bob", Content: "over rpc"},
	}, &sent)
	require.NoError(t, err)
	assert.Equal(t, "alice", sent.SenderID)

	var convs ConversationsResponse
	require.NoError(t, client.Call("Mentorlane.ListConversations", &ConversationsRequest{UserID: "bob"}, &convs))
	require.Len(t, convs.Conversations, 1)
	assert.Equal(t, 1, convs.Conversations[0].UnreadCount)

	var read MarkReadResponse
	require.NoError(t, client.Call("Mentorlane.MarkConversationRead", &MarkReadRequest{
		UserID: "bob", ConversationID: inbox.PairKey("alice", "bob"),
	}, &read))
	assert.Equal(t, int64(1), read.Updated)
}

func TestRPCValidation(t *testing.T) {
	client := newTestClient(t)

	var convs ConversationsResponse
	assert.Error(t, client.Call("Mentorlane.ListConversations", &ConversationsRequest{}, &convs))

	var sent domain.Message
	assert.Error(t, client.Call("Mentorlane.SendMessage", &SendMessageArgs{
		SenderID: "alice",
		Message:  service.SendMessageInput{ReceiverID: "alice", Content: "self"},
	}, &sent))
}

func TestRPCResolveIdentity(t *testing.T) {
	client := newTestClient(t)

	var id identity.ResolvedIdentity
	require.NoError(t, client.Call("Mentorlane.ResolveIdentity", &ResolveRequest{Credential: "not-a-token"}, &id))
	assert.False(t, id.Resolved())
}

func TestRPCShutdownStopsServe(t *testing.T) {
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	svc := service.New(helpers.NewTestSQLiteStore(t), &config.Config{}, engine, zerolog.Nop())

	srv, err := NewServer(svc, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown before listen is a no-op")

	require.NoError(t, srv.Listen("127.0.0.1:0"))
	served := make(chan error, 1)
	go func() { served <- srv.Serve() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}
