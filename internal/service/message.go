package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/inbox"
	"github.com/mentorlane/api/internal/metrics"
)

// DefaultThreadLimit caps a conversation thread when the caller sets no limit.
const DefaultThreadLimit = 100

// SendMessageInput is the payload of a new direct message.
type SendMessageInput struct {
	ReceiverID     string             `json:"receiverId"`
	Content        string             `json:"content"`
	MessageType    domain.MessageType `json:"messageType,omitempty"`
	RelatedBooking string             `json:"relatedBooking,omitempty"`
}

// SendMessage stores a message from senderID and awards the sender
// message-sent karma.
func (s *Service) SendMessage(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error) {
	receiverID := strings.TrimSpace(in.ReceiverID)
	if receiverID == "" {
		return nil, fmt.Errorf("%w: receiverId is required", ErrInvalidInput)
	}
	if receiverID == senderID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	messageType := in.MessageType
	switch messageType {
	case "":
		messageType = domain.MessageTypeText
	case domain.MessageTypeText, domain.MessageTypeImage, domain.MessageTypeFile, domain.MessageTypeSystem:
	default:
		return nil, fmt.Errorf("%w: unknown messageType %q", ErrInvalidInput, messageType)
	}

	msg := &domain.Message{
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        in.Content,
		MessageType:    messageType,
		RelatedBooking: in.RelatedBooking,
		CreatedAt:      s.now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	metrics.MessagesSent.WithLabelValues(string(messageType)).Inc()

	if err := s.AwardKarma(ctx, senderID, domain.KarmaMessageSent); err != nil {
		s.logger.Warn().Err(err).Str("user_id", senderID).Msg("failed to award message karma")
	}
	return msg, nil
}

// GetThread returns the messages of a conversation, oldest first. The caller
// must be one of the pair.
func (s *Service) GetThread(ctx context.Context, userID, conversationID string, limit int) ([]domain.Message, error) {
	other, err := counterpart(conversationID, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultThreadLimit
	}

	messages, err := s.store.ListPairMessages(ctx, userID, other, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// MarkConversationRead marks every message of the conversation addressed to
// userID as read and returns how many changed.
func (s *Service) MarkConversationRead(ctx context.Context, userID, conversationID string) (int64, error) {
	other, err := counterpart(conversationID, userID)
	if err != nil {
		return 0, err
	}
	n, err := s.store.MarkMessagesRead(ctx, userID, other, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return n, nil
}

// counterpart returns the participant of conversationID that is not userID.
func counterpart(conversationID, userID string) (string, error) {
	a, b, ok := inbox.PairParticipants(conversationID)
	if !ok {
		return "", fmt.Errorf("%w: malformed conversation id", ErrInvalidInput)
	}
	switch userID {
	case a:
		return b, nil
	case b:
		return a, nil
	default:
		return "", fmt.Errorf("%w: not a participant of this conversation", ErrForbidden)
	}
}
