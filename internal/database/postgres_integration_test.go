package repository

import (
	"GolfInbox/entity"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPostgres connects to GOLFINBOX_TEST_POSTGRES_DSN, migrates and
// empties the inbox tables. Tests are skipped without the variable.
func newTestPostgres(t *testing.T, separate bool) *Postgres {
	t.Helper()
	dsn := os.Getenv("GOLFINBOX_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("GOLFINBOX_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)

	p := &Postgres{
		pool:             pool,
		separateMarkRead: separate,
		log:              slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	t.Cleanup(p.Close)

	_, err = p.Migrate()
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE line_conversations, web_conversations, meta_conversations, allowed_users, api_keys CASCADE`)
	require.NoError(t, err)
	return p
}

func insertLineConversation(t *testing.T, p *Postgres, active bool, lastAt *time.Time, assignedTo *string, unread int) string {
	t.Helper()
	id := uuid.NewString()
	_, err := p.pool.Exec(context.Background(), `
		INSERT INTO line_conversations (id, line_user_id, is_active, last_message_at, assigned_to, unread_count)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
	`, id, "U"+id, active, lastAt, assignedTo, unread)
	require.NoError(t, err)
	return id
}

func insertLineMessages(t *testing.T, p *Postgres, conversationID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := p.pool.Exec(context.Background(), `
			INSERT INTO line_messages (conversation_id, sender_type, message_text)
			VALUES ($1::uuid, 'user', 'hello')
		`, conversationID)
		require.NoError(t, err)
	}
}

func TestPostgres_ListFiltersActiveLine(t *testing.T) {
	p := newTestPostgres(t, false)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	older := insertLineConversation(t, p, true, ptr(base.Add(-time.Hour)), nil, 0)
	newer := insertLineConversation(t, p, true, ptr(base), ptr("pro@golf.co"), 2)
	insertLineConversation(t, p, false, ptr(base.Add(time.Hour)), nil, 0)

	list, err := p.ListConversations(ctx, entity.ConversationFilter{Channel: entity.ChannelLine})
	require.NoError(t, err)
	assert.Equal(t, []string{newer, older}, ids(list))
	assert.Equal(t, entity.ChannelLine, list[0].ChannelType)
	require.NotNil(t, list[0].AssignedTo)
	assert.Equal(t, "pro@golf.co", *list[0].AssignedTo)

	all, err := p.ListConversations(ctx, entity.ConversationFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostgres_NullsLast(t *testing.T) {
	p := newTestPostgres(t, false)
	base := time.Now().UTC()

	empty := insertLineConversation(t, p, true, nil, nil, 0)
	withMessage := insertLineConversation(t, p, true, ptr(base), nil, 0)

	list, err := p.ListConversations(context.Background(), entity.ConversationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{withMessage, empty}, ids(list))
	assert.Nil(t, list[1].LastMessageAt)
}

func TestPostgres_MarkRead(t *testing.T) {
	p := newTestPostgres(t, false)
	ctx := context.Background()

	id := insertLineConversation(t, p, true, ptr(time.Now()), nil, 3)
	insertLineMessages(t, p, id, 3)

	before, err := p.ListConversations(ctx, entity.ConversationFilter{})
	require.NoError(t, err)
	require.Len(t, before, 1)

	marked, err := p.MarkConversationRead(ctx, entity.SourceLine, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	var unread int
	require.NoError(t, p.pool.QueryRow(ctx,
		`SELECT count(*) FROM line_messages WHERE conversation_id = $1::uuid AND is_read = false`, id,
	).Scan(&unread))
	assert.Equal(t, 0, unread)

	after, err := p.ListConversations(ctx, entity.ConversationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, after[0].UnreadCount)
	assert.False(t, after[0].UpdatedAt.Before(before[0].UpdatedAt))

	marked, err = p.MarkConversationRead(ctx, entity.SourceLine, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked)
}

func TestPostgres_MarkReadInvalidID(t *testing.T) {
	p := newTestPostgres(t, false)

	_, err := p.MarkConversationRead(context.Background(), entity.SourceLine, "conv-42")
	assert.Error(t, err)
}

func TestPostgres_DirectoryAndSummary(t *testing.T) {
	p := newTestPostgres(t, false)
	ctx := context.Background()

	_, err := p.pool.Exec(ctx, `INSERT INTO allowed_users (email, display_name) VALUES ('a@golf.co', 'Ann'), ('b@golf.co', NULL)`)
	require.NoError(t, err)

	users, err := p.GetDirectoryUsers(ctx, []string{"a@golf.co", "b@golf.co", "x@golf.co"})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	insertLineConversation(t, p, true, nil, nil, 2)
	insertLineConversation(t, p, false, nil, nil, 5)

	summary, err := p.GetUnreadSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, entity.ChannelUnread{Channel: entity.ChannelLine, Conversations: 1, Unread: 2}, summary.Channels[0])
}

func TestPostgres_GenerateApiKey(t *testing.T) {
	p := newTestPostgres(t, false)
	ctx := context.Background()

	key, err := p.GenerateApiKey(ctx, "frontdesk")
	require.NoError(t, err)

	again, err := p.GenerateApiKey(ctx, "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, key, again)

	username, err := p.CheckApiKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", username)

	_, err = p.CheckApiKey(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
