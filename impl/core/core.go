package core

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/sl"
	"context"
	"errors"
	"log/slog"
)

var ErrNoRepository = errors.New("repository not configured")

type Repository interface {
	CheckApiKey(ctx context.Context, key string) (string, error)
	GenerateApiKey(ctx context.Context, username string) (string, error)

	ListConversations(ctx context.Context, filter entity.ConversationFilter) ([]entity.Conversation, error)
	GetDirectoryUsers(ctx context.Context, emails []string) ([]entity.DirectoryUser, error)
	MarkConversationRead(ctx context.Context, source entity.Source, id string) (int64, error)
	GetUnreadSummary(ctx context.Context) (*entity.UnreadSummary, error)
	GetConversationMessages(ctx context.Context, source entity.Source, id string, limit, offset int) ([]entity.ChannelMessage, error)
}

// Broadcaster pushes inbox events to connected staff dashboards.
type Broadcaster interface {
	BroadcastConversationRead(event entity.ConversationRead)
}

type Core struct {
	repo        Repository
	hub         Broadcaster
	authKey     string
	maxPageSize int
	log         *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:         log.With(sl.Module("core")),
		maxPageSize: 100,
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetBroadcaster(hub Broadcaster) {
	c.hub = hub
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetMaxPageSize(size int) {
	if size > 0 {
		c.maxPageSize = size
	}
}
