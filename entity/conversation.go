package entity

import "time"

// Conversation is one row of the unified conversation view.
type Conversation struct {
	ID                string     `json:"id"`
	ChannelType       Channel    `json:"channel_type"`
	ChannelUserID     string     `json:"channel_user_id"`
	CustomerName      *string    `json:"customer_name"`
	ProfilePictureURL *string    `json:"profile_picture_url"`
	LastMessageAt     *time.Time `json:"last_message_at"`
	LastMessageText   *string    `json:"last_message_text"`
	IsActive          bool       `json:"is_active"`
	AssignedTo        *string    `json:"assigned_to"`
	UnreadCount       int        `json:"unread_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// UnifiedConversation is a Conversation enriched for list display.
type UnifiedConversation struct {
	Conversation
	AssignedToName *string `json:"assigned_to_name"`
}

type ConversationFilter struct {
	// Channel is empty when no channel filter applies.
	Channel         Channel
	IncludeInactive bool
}

func (f ConversationFilter) Match(c *Conversation) bool {
	if f.Channel != "" && c.ChannelType != f.Channel {
		return false
	}
	if !f.IncludeInactive && !c.IsActive {
		return false
	}
	return true
}

// ConversationRead describes a completed mark-read.
type ConversationRead struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Source         Source    `json:"source"`
	Marked         int64     `json:"marked"`
	Username       string    `json:"username,omitempty"`
	At             time.Time `json:"at"`
}
