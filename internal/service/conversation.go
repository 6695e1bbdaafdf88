package service

import (
	"context"

	"github.com/mentorlane/api/internal/domain"
)

// ListConversations returns the caller's conversation list, newest first.
// Store faults degrade to an empty list.
func (s *Service) ListConversations(ctx context.Context, userID string) []domain.ConversationSummary {
	return s.inbox.Conversations(ctx, userID)
}
