package entity

import (
	"time"
)

// ChannelMessage is a message stored in a source's message table.
type ChannelMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderType     string    `json:"sender_type"`
	MessageText    *string   `json:"message_text"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
