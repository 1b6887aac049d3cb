package repository

import (
	"GolfInbox/entity"
	"context"
	"fmt"
)

// GetConversationMessages returns a page of messages, newest first.
func (p *Postgres) GetConversationMessages(ctx context.Context, source entity.Source, id string, limit, offset int) ([]entity.ChannelMessage, error) {
	tables, err := tablesFor(source)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_type, message_text, is_read, created_at
		FROM `+tables.messages+`
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres get messages: %w", err)
	}
	defer rows.Close()

	var messages []entity.ChannelMessage
	for rows.Next() {
		var m entity.ChannelMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderType, &m.MessageText, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres get messages: %w", err)
	}
	return messages, nil
}
