package repository

import (
	"GolfInbox/entity"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrCounterNotReset marks a mark-read whose message update went through
// but whose unread counter reset did not.
var ErrCounterNotReset = errors.New("reset unread count")

const conversationColumns = `id, channel_type, channel_user_id, customer_name, profile_picture_url,
	last_message_at, last_message_text, is_active, assigned_to, unread_count, created_at, updated_at`

// ListConversations reads the unified view newest first, conversations
// without messages last, ties broken by id.
func (p *Postgres) ListConversations(ctx context.Context, filter entity.ConversationFilter) ([]entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM unified_conversations`

	var where []string
	var args []any
	if filter.Channel != "" {
		args = append(args, string(filter.Channel))
		where = append(where, fmt.Sprintf("channel_type = $%d", len(args)))
	}
	if !filter.IncludeInactive {
		where = append(where, "is_active = true")
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY last_message_at DESC NULLS LAST, id`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []entity.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres list conversations: %w", err)
	}
	return conversations, nil
}

func scanConversation(row pgx.Row) (entity.Conversation, error) {
	var (
		c       entity.Conversation
		channel string
	)
	err := row.Scan(
		&c.ID, &channel, &c.ChannelUserID, &c.CustomerName, &c.ProfilePictureURL,
		&c.LastMessageAt, &c.LastMessageText, &c.IsActive, &c.AssignedTo, &c.UnreadCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, fmt.Errorf("postgres scan conversation: %w", err)
	}
	c.ChannelType, err = entity.ParseChannel(channel)
	if err != nil {
		return c, fmt.Errorf("conversation %s channel %q: %w", c.ID, channel, err)
	}
	if c.UnreadCount < 0 {
		c.UnreadCount = 0
	}
	return c, nil
}

// MarkConversationRead flags every unread message of the conversation as
// read, then zeroes its unread counter. It returns the number of messages
// that changed. The counter is not touched when the message update fails.
func (p *Postgres) MarkConversationRead(ctx context.Context, source entity.Source, id string) (int64, error) {
	tables, err := tablesFor(source)
	if err != nil {
		return 0, err
	}

	if p.separateMarkRead {
		marked, err := markRead(ctx, p.pool, tables, id)
		if errors.Is(err, ErrCounterNotReset) {
			p.log.Warn("messages marked read but unread counter not reset",
				slog.String("source", string(source)),
				slog.String("conversation_id", id),
				slog.Int64("marked", marked),
			)
		}
		return marked, err
	}

	var marked int64
	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var err error
		marked, err = markRead(ctx, tx, tables, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

func markRead(ctx context.Context, q execer, tables sourceTables, id string) (int64, error) {
	tag, err := q.Exec(ctx,
		`UPDATE `+tables.messages+` SET is_read = true WHERE conversation_id = $1::uuid AND is_read = false`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}

	_, err = q.Exec(ctx,
		`UPDATE `+tables.conversations+` SET unread_count = 0, updated_at = now() WHERE id = $1::uuid`,
		id,
	)
	if err != nil {
		return tag.RowsAffected(), fmt.Errorf("%w: %w", ErrCounterNotReset, err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) GetUnreadSummary(ctx context.Context) (*entity.UnreadSummary, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT channel_type, count(*), COALESCE(sum(unread_count), 0)
		FROM unified_conversations
		WHERE is_active = true
		GROUP BY channel_type
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres unread summary: %w", err)
	}
	defer rows.Close()

	summary := entity.NewUnreadSummary()
	for rows.Next() {
		var (
			channel       string
			conversations int
			unread        int
		)
		if err := rows.Scan(&channel, &conversations, &unread); err != nil {
			return nil, fmt.Errorf("postgres scan unread summary: %w", err)
		}
		c, err := entity.ParseChannel(channel)
		if err != nil {
			return nil, fmt.Errorf("unread summary channel %q: %w", channel, err)
		}
		summary.Add(c, conversations, unread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres unread summary: %w", err)
	}
	return summary, nil
}
