package service

import (
	"context"
	"fmt"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/metrics"
)

// CalculateKarma returns the karma total for a tally of actions.
func (s *Service) CalculateKarma(tally domain.KarmaTally) int {
	return tally.Total()
}

// KarmaForAction returns the points one action is worth.
func (s *Service) KarmaForAction(action domain.KarmaAction) (int, error) {
	points, ok := domain.KarmaPoints[action]
	if !ok {
		return 0, fmt.Errorf("%w: unknown karma action %q", ErrNotFound, action)
	}
	return points, nil
}

// AwardKarma adds the points of action to userID's karma total.
func (s *Service) AwardKarma(ctx context.Context, userID string, action domain.KarmaAction) error {
	points, err := s.KarmaForAction(action)
	if err != nil {
		return err
	}
	if err := s.store.AddKarmaPoints(ctx, userID, points); err != nil {
		return fmt.Errorf("failed to award karma: %w", err)
	}
	metrics.KarmaAwarded.WithLabelValues(string(action)).Add(float64(points))
	return nil
}
