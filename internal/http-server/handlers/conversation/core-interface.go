package conversation

import (
	"GolfInbox/entity"
	"context"
)

type Core interface {
	ListConversations(ctx context.Context, filter entity.ConversationFilter) ([]entity.UnifiedConversation, error)
	MarkConversationRead(ctx context.Context, source entity.Source, id, username string) (*entity.ConversationRead, error)
	GetUnreadSummary(ctx context.Context) (*entity.UnreadSummary, error)
	GetConversationMessages(ctx context.Context, source entity.Source, id string, limit, offset int) ([]entity.ChannelMessage, error)
}
