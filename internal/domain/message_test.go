package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationSummaryEpochMillis(t *testing.T) {
	at := time.Date(2026, 4, 1, 9, 30, 15, 250_000_000, time.UTC)
	summary := ConversationSummary{
		ConversationID:  "a_b",
		ParticipantID:   "b",
		LastMessage:     "see you",
		LastMessageTime: at,
		LastMessageType: MessageTypeText,
		LastSender:      "b",
		UnreadCount:     2,
	}

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(at.UnixMilli()), raw["lastMessageTime"])
	assert.Equal(t, "a_b", raw["conversationId"])
	assert.Equal(t, float64(2), raw["unreadCount"])
	assert.NotContains(t, raw, "participantName")

	var back ConversationSummary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, summary, back)
}
