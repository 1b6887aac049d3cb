package core

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/sl"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const wsRequestTimeout = 5 * time.Second

// ListConversations returns the unified conversations in store order, each
// with the assignee's display name. Name lookup is best effort: when the
// directory cannot be read the raw assignee id is used.
func (c *Core) ListConversations(ctx context.Context, filter entity.ConversationFilter) ([]entity.UnifiedConversation, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}

	conversations, err := c.repo.ListConversations(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := c.assigneeNames(ctx, conversations)

	result := make([]entity.UnifiedConversation, len(conversations))
	for i, conv := range conversations {
		result[i] = entity.UnifiedConversation{Conversation: conv}
		if conv.AssignedTo == nil {
			continue
		}
		name := *conv.AssignedTo
		if n, ok := names[name]; ok {
			name = n
		}
		result[i].AssignedToName = &name
	}
	return result, nil
}

func (c *Core) assigneeNames(ctx context.Context, conversations []entity.Conversation) map[string]string {
	seen := make(map[string]bool)
	var emails []string
	for _, conv := range conversations {
		if conv.AssignedTo == nil || seen[*conv.AssignedTo] {
			continue
		}
		seen[*conv.AssignedTo] = true
		emails = append(emails, *conv.AssignedTo)
	}
	if len(emails) == 0 {
		return nil
	}

	users, err := c.repo.GetDirectoryUsers(ctx, emails)
	if err != nil {
		c.log.With(
			sl.Err(err),
			slog.Int("assignees", len(emails)),
		).Warn("assignee names unavailable, using raw ids")
		return nil
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Email] = u.Name()
	}
	return names
}

// MarkConversationRead marks all messages of the conversation read and
// zeroes its unread counter, then notifies connected dashboards.
func (c *Core) MarkConversationRead(ctx context.Context, source entity.Source, id, username string) (*entity.ConversationRead, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}

	marked, err := c.repo.MarkConversationRead(ctx, source, id)
	if err != nil {
		return nil, err
	}

	event := entity.ConversationRead{
		ID:             uuid.NewString(),
		ConversationID: id,
		Source:         source,
		Marked:         marked,
		Username:       username,
		At:             time.Now().UTC(),
	}
	if c.hub != nil {
		c.hub.BroadcastConversationRead(event)
	}

	c.log.With(
		slog.String("source", string(source)),
		slog.String("conversation_id", id),
		slog.Int64("marked", marked),
	).Debug("conversation marked read")

	return &event, nil
}

// HandleMarkRead serves mark_read requests sent over the websocket.
func (c *Core) HandleMarkRead(username, source, conversationID string) error {
	src, err := entity.ParseSource(source)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), wsRequestTimeout)
	defer cancel()

	_, err = c.MarkConversationRead(ctx, src, conversationID, username)
	return err
}

func (c *Core) GetUnreadSummary(ctx context.Context) (*entity.UnreadSummary, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	return c.repo.GetUnreadSummary(ctx)
}

func (c *Core) GetConversationMessages(ctx context.Context, source entity.Source, id string, limit, offset int) ([]entity.ChannelMessage, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > c.maxPageSize {
		limit = c.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return c.repo.GetConversationMessages(ctx, source, id, limit, offset)
}
