package service

import (
	"context"
	"fmt"

	"github.com/mentorlane/api/internal/domain"
)

// GetUser returns a user profile.
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return user, nil
}
