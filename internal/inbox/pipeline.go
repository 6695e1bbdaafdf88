package inbox

import (
	"slices"

	"github.com/mentorlane/api/internal/domain"
)

// FilterForUser returns the messages userID sent or received, in input order.
func FilterForUser(messages []domain.Message, userID string) []domain.Message {
	out := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

// SortByCreatedDesc orders messages newest first. Equal timestamps keep
// their input order.
func SortByCreatedDesc(messages []domain.Message) {
	slices.SortStableFunc(messages, func(a, b domain.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Group is the reduced state of one conversation pair.
type Group struct {
	Key    string
	Latest domain.Message
	Unread int
	Other  string
}

// GroupByPair partitions messages by pair key and reduces each partition.
// Messages must already be sorted newest first: the first message seen for a
// pair becomes its latest snapshot. Unread counts only messages addressed to
// userID that are not yet read. Groups come back in first-seen order.
func GroupByPair(messages []domain.Message, userID string) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, m := range messages {
		key := PairKey(m.SenderID, m.ReceiverID)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:    key,
				Latest: m,
				Other:  otherParticipant(m, userID),
			})
		}
		if m.ReceiverID == userID && !m.IsRead {
			groups[i].Unread++
		}
	}
	return groups
}

func otherParticipant(m domain.Message, userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Summary converts a reduced group into an unenriched conversation summary.
func (g Group) Summary() domain.ConversationSummary {
	return domain.ConversationSummary{
		ConversationID:  g.Key,
		ParticipantID:   g.Other,
		LastMessage:     g.Latest.Content,
		LastMessageTime: g.Latest.CreatedAt,
		LastMessageType: g.Latest.MessageType,
		LastSender:      g.Latest.SenderID,
		UnreadCount:     g.Unread,
	}
}

// SortSummaries orders summaries by latest message time, newest first.
func SortSummaries(summaries []domain.ConversationSummary) {
	slices.SortStableFunc(summaries, func(a, b domain.ConversationSummary) int {
		return b.LastMessageTime.Compare(a.LastMessageTime)
	})
}

// Aggregate runs the full pipeline: filter, sort, group-reduce, sort. It does
// not modify messages.
func Aggregate(messages []domain.Message, userID string) []domain.ConversationSummary {
	filtered := FilterForUser(messages, userID)
	SortByCreatedDesc(filtered)

	groups := GroupByPair(filtered, userID)
	summaries := make([]domain.ConversationSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, g.Summary())
	}
	SortSummaries(summaries)
	return summaries
}
