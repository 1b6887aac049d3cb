package response

import "GolfInbox/entity"

// Response is the JSON envelope of every API reply. Success is the
// discriminator; the remaining fields are filled per endpoint.
type Response struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
	Unread  *entity.UnreadSummary `json:"unread,omitempty"`
	ApiKey  string                `json:"api_key,omitempty"`
}

func Ok(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}

// Conversations always renders the array, even when empty.
func Conversations(list []entity.UnifiedConversation) ConversationList {
	if list == nil {
		list = []entity.UnifiedConversation{}
	}
	return ConversationList{
		Success:       true,
		Conversations: list,
	}
}

type ConversationList struct {
	Success       bool                         `json:"success"`
	Conversations []entity.UnifiedConversation `json:"conversations"`
}

func Messages(list []entity.ChannelMessage) MessageList {
	if list == nil {
		list = []entity.ChannelMessage{}
	}
	return MessageList{
		Success:  true,
		Messages: list,
	}
}

type MessageList struct {
	Success  bool                    `json:"success"`
	Messages []entity.ChannelMessage `json:"messages"`
}

func Unread(summary *entity.UnreadSummary) Response {
	return Response{
		Success: true,
		Unread:  summary,
	}
}

func Key(key string) Response {
	return Response{
		Success: true,
		ApiKey:  key,
	}
}
