package domain

import (
	"encoding/json"
	"time"
)

// Message is a direct message between two users.
type Message struct {
	MessageID      string      `json:"id"`
	SenderID       string      `json:"sender"`
	ReceiverID     string      `json:"receiver"`
	Content        string      `json:"content"`
	MessageType    MessageType `json:"messageType"`
	IsRead         bool        `json:"isRead"`
	ReadAt         *time.Time  `json:"readAt,omitempty"`
	RelatedBooking string      `json:"relatedBooking,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// ConversationSummary is one inbox row: the latest message exchanged with
// another participant plus the caller's unread count. It is derived per
// request and never stored.
type ConversationSummary struct {
	ConversationID   string      `json:"conversationId"`
	ParticipantID    string      `json:"participantId"`
	ParticipantName  string      `json:"participantName,omitempty"`
	ParticipantEmail string      `json:"participantEmail,omitempty"`
	ParticipantRole  string      `json:"participantRole,omitempty"`
	ParticipantBio   string      `json:"participantBio,omitempty"`
	ProfilePicture   string      `json:"profilePicture,omitempty"`
	LastMessage      string      `json:"lastMessage"`
	LastMessageTime  time.Time   `json:"-"`
	LastMessageType  MessageType `json:"lastMessageType"`
	LastSender       string      `json:"lastSender"`
	UnreadCount      int         `json:"unreadCount"`
	IsOnline         bool        `json:"isOnline"`
}

type conversationSummaryJSON ConversationSummary

// MarshalJSON encodes lastMessageTime as Unix epoch milliseconds.
func (s ConversationSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		conversationSummaryJSON
		LastMessageTime int64 `json:"lastMessageTime"`
	}{conversationSummaryJSON(s), s.LastMessageTime.UnixMilli()})
}

// UnmarshalJSON decodes lastMessageTime from Unix epoch milliseconds.
func (s *ConversationSummary) UnmarshalJSON(data []byte) error {
	var v struct {
		conversationSummaryJSON
		LastMessageTime int64 `json:"lastMessageTime"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = ConversationSummary(v.conversationSummaryJSON)
	s.LastMessageTime = time.UnixMilli(v.LastMessageTime).UTC()
	return nil
}
