package inbox

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/domain"
	"github.com/mentorlane/api/internal/metrics"
)

// MessageSource reads the messages a user took part in. Implementations may
// return extra messages; the pipeline filters them out.
type MessageSource interface {
	ListMessagesByParticipant(ctx context.Context, userID string) ([]domain.Message, error)
}

// Inbox builds a user's conversation list from a message source and enriches
// it with participant profiles.
type Inbox struct {
	messages MessageSource
	enricher *Enricher
	logger   zerolog.Logger
}

// New creates an Inbox.
func New(messages MessageSource, profiles ProfileSource, logger zerolog.Logger) *Inbox {
	logger = logger.With().Str("component", "inbox").Logger()
	return &Inbox{
		messages: messages,
		enricher: NewEnricher(profiles, logger),
		logger:   logger,
	}
}

// Conversations returns userID's conversations, newest first.
//
// A failed store read is logged and yields an empty list rather than an
// error, so an empty result means "no conversations or degraded read".
func (b *Inbox) Conversations(ctx context.Context, userID string) []domain.ConversationSummary {
	metrics.InboxAggregations.Inc()

	messages, err := b.messages.ListMessagesByParticipant(ctx, userID)
	if err != nil {
		b.logger.Error().Err(err).Str("user_id", userID).Msg("message read failed, returning empty conversation list")
		metrics.InboxDegradedReads.WithLabelValues("messages").Inc()
		metrics.InboxConversations.Observe(0)
		return []domain.ConversationSummary{}
	}

	summaries := Aggregate(messages, userID)
	b.enricher.Enrich(ctx, summaries)

	b.logger.Debug().
		Str("user_id", userID).
		Int("messages", len(messages)).
		Int("conversations", len(summaries)).
		Msg("conversations aggregated")
	metrics.InboxConversations.Observe(float64(len(summaries)))
	return summaries
}
