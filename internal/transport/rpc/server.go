// Package rpc exposes the inbox and identity operations to trusted internal
// callers over JSON-RPC. Callers pass user ids directly; the listener must
// not be reachable from outside the deployment.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/identity"
	"github.com/mentorlane/api/internal/service"
)

// Server exposes internal RPC endpoints.
type Server struct {
	listener  net.Listener
	rpcServer *rpc.Server
	logger    zerolog.Logger
	done      chan struct{}
}

// NewServer creates a new RPC server bound to the service.
func NewServer(svc *service.Service, logger zerolog.Logger) (*Server, error) {
	rpcServer := rpc.NewServer()
	handler := &Handler{service: svc, timeout: svc.Config().RequestTimeout}
	if err := rpcServer.RegisterName("Mentorlane", handler); err != nil {
		return nil, fmt.Errorf("register rpc handler: %w", err)
	}

	return &Server{
		rpcServer: rpcServer,
		logger:    logger.With().Str("component", "rpc").Logger(),
		done:      make(chan struct{}),
	}, nil
}

// Start listens on addr and serves until Shutdown is called. Callers that
// may call Shutdown from another goroutine should use Listen before spawning
// Serve instead.
func (s *Server) Start(addr string) error {
	if err := s.Listen(addr); err != nil {
		return err
	}
	return s.Serve()
}

// Listen binds the listener without accepting connections yet.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections on the bound listener.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("rpc server is not listening")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				close(s.done)
				return nil
			}
			s.logger.Warn().Err(err).Msg("rpc accept error")
			continue
		}

		go s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

// Shutdown stops accepting new RPC connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}

	if err := s.listener.Close(); err != nil {
		return err
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handler implements the internal RPC methods.
type Handler struct {
	service *service.Service
	timeout time.Duration
}

// ResolveRequest carries a raw bearer credential.
type ResolveRequest struct {
	Credential string `json:"credential"`
}

// ConversationsRequest identifies the user whose inbox is read.
type ConversationsRequest struct {
	UserID string `json:"user_id"`
}

// ConversationsResponse is the user's conversation list.
type ConversationsResponse struct {
	Conversations []domain.ConversationSummary `json:"conversations"`
}

// SendMessageArgs wraps the sender with the message payload.
type SendMessageArgs struct {
	SenderID string                   `json:"sender_id"`
	Message  service.SendMessageInput `json:"message"`
}

// MarkReadRequest identifies a conversation to mark read for a user.
type MarkReadRequest struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
}

// MarkReadResponse reports how many messages were marked read.
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(context.Background(), h.timeout)
	}
	return context.WithCancel(context.Background())
}

// ResolveIdentity resolves a bearer credential.
func (h *Handler) ResolveIdentity(req *ResolveRequest, resp *identity.ResolvedIdentity) error {
	if req == nil {
		return errors.New("resolve request is required")
	}
	id := h.service.ResolveIdentity(strings.TrimSpace(req.Credential))
	if resp != nil {
		*resp = id
	}
	return nil
}

// ListConversations returns a user's conversation list.
func (h *Handler) ListConversations(req *ConversationsRequest, resp *ConversationsResponse) error {
	if req == nil {
		return errors.New("conversations request is required")
	}
	if req.UserID == "" {
		return errors.New("user_id is required")
	}

	ctx, cancel := h.context()
	defer cancel()
	conversations := h.service.ListConversations(ctx, req.UserID)
	if resp != nil {
		resp.Conversations = conversations
	}
	return nil
}

// SendMessage sends a direct message on behalf of a user.
func (h *Handler) SendMessage(req *SendMessageArgs, resp *domain.Message) error {
	if req == nil {
		return errors.New("send message request is required")
	}
	if req.SenderID == "" {
		return errors.New("sender_id is required")
	}

	ctx, cancel := h.context()
	defer cancel()
	msg, err := h.service.SendMessage(ctx, req.SenderID, req.Message)
	if err != nil {
		return err
	}
	if resp != nil && msg != nil {
		*resp = *msg
	}
	return nil
}

// MarkConversationRead marks a user's unread messages in a conversation.
func (h *Handler) MarkConversationRead(req *MarkReadRequest, resp *MarkReadResponse) error {
	if req == nil {
		return errors.New("mark read request is required")
	}
	if req.UserID == "" || req.ConversationID == "" {
		return errors.New("user_id and conversation_id are required")
	}

	ctx, cancel := h.context()
	defer cancel()
	n, err := h.service.MarkConversationRead(ctx, req.UserID, req.ConversationID)
	if err != nil {
		return err
	}
	if resp != nil {
		resp.Updated = n
	}
	return nil
}
