package inbox

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/metrics"
)

// ProfileSource looks up profile records in bulk. Ids with no record are
// simply absent from the returned maps.
type ProfileSource interface {
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
	GetMentorProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.MentorProfile, error)
}

// Enricher left-joins conversation summaries with the other participant's
// profile data.
type Enricher struct {
	profiles ProfileSource
	logger   zerolog.Logger
}

// NewEnricher creates an enricher backed by profiles.
func NewEnricher(profiles ProfileSource, logger zerolog.Logger) *Enricher {
	return &Enricher{profiles: profiles, logger: logger}
}

// Enrich fills the participant fields of each summary in place. A missing
// profile leaves the fields empty; a failed lookup is logged and treated as
// missing for every summary. IsOnline is always false: there is no presence
// source.
func (e *Enricher) Enrich(ctx context.Context, summaries []domain.ConversationSummary) {
	if len(summaries) == 0 {
		return
	}

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ParticipantID)
	}

	users, err := e.profiles.GetUsersByIDs(ctx, ids)
	if err != nil {
		e.logger.Error().Err(err).Msg("participant user lookup failed, returning unenriched conversations")
		metrics.InboxDegradedReads.WithLabelValues("profiles").Inc()
		users = nil
	}
	mentors, err := e.profiles.GetMentorProfilesByUserIDs(ctx, ids)
	if err != nil {
		e.logger.Error().Err(err).Msg("mentor profile lookup failed, returning conversations without pictures")
		metrics.InboxDegradedReads.WithLabelValues("profiles").Inc()
		mentors = nil
	}

	for i := range summaries {
		s := &summaries[i]
		if u, ok := users[s.ParticipantID]; ok {
			s.ParticipantName = u.Name
			s.ParticipantEmail = u.Email
			s.ParticipantRole = string(u.Role)
			s.ParticipantBio = u.Bio
		}
		if p, ok := mentors[s.ParticipantID]; ok {
			s.ProfilePicture = p.ProfilePicture
		}
		s.IsOnline = false
	}
}
