package repository

import (
	"GolfInbox/entity"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Faults makes individual MemoryStore steps fail. Zero value fails nothing.
type Faults struct {
	List          error
	Directory     error
	MarkMessages  error
	ResetCounter  error
	Messages      error
	UnreadSummary error
}

// MemoryStore keeps conversations, messages and the staff directory in
// memory. It serves local runs without Postgres and the test suites.
type MemoryStore struct {
	mu               sync.RWMutex
	conversations    map[string]*entity.Conversation
	messages         map[entity.Source][]*entity.ChannelMessage
	users            map[string]entity.DirectoryUser
	apiKeys          map[string]string
	separateMarkRead bool
	faults           Faults
	directoryCalls   int
	now              func() time.Time
}

func NewMemoryStore(separateMarkRead bool) *MemoryStore {
	return &MemoryStore{
		conversations:    make(map[string]*entity.Conversation),
		messages:         make(map[entity.Source][]*entity.ChannelMessage),
		users:            make(map[string]entity.DirectoryUser),
		apiKeys:          make(map[string]string),
		separateMarkRead: separateMarkRead,
		now:              time.Now,
	}
}

func (m *MemoryStore) SetFaults(f Faults) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = f
}

func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) AddConversation(c entity.Conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[c.ID] = &c
}

func (m *MemoryStore) AddMessage(source entity.Source, msg entity.ChannelMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[source] = append(m.messages[source], &msg)
}

func (m *MemoryStore) AddUser(u entity.DirectoryUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
}

func (m *MemoryStore) AddApiKey(username, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKeys[key] = username
}

// Conversation returns a copy of the stored conversation.
func (m *MemoryStore) Conversation(id string) (entity.Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conversations[id]
	if !ok {
		return entity.Conversation{}, false
	}
	return *c, true
}

func (m *MemoryStore) UnreadMessages(source entity.Source, id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, msg := range m.messages[source] {
		if msg.ConversationID == id && !msg.IsRead {
			n++
		}
	}
	return n
}

// DirectoryCalls counts directory lookups that reached the store.
func (m *MemoryStore) DirectoryCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.directoryCalls
}

func (m *MemoryStore) ListConversations(_ context.Context, filter entity.ConversationFilter) ([]entity.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.faults.List != nil {
		return nil, fmt.Errorf("memory list conversations: %w", m.faults.List)
	}

	var result []entity.Conversation
	for _, c := range m.conversations {
		if filter.Match(c) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return conversationBefore(&result[i], &result[j])
	})
	return result, nil
}

// conversationBefore orders by last message time descending, nulls last, then id.
func conversationBefore(a, b *entity.Conversation) bool {
	switch {
	case a.LastMessageAt == nil && b.LastMessageAt == nil:
		return a.ID < b.ID
	case a.LastMessageAt == nil:
		return false
	case b.LastMessageAt == nil:
		return true
	case !a.LastMessageAt.Equal(*b.LastMessageAt):
		return a.LastMessageAt.After(*b.LastMessageAt)
	default:
		return a.ID < b.ID
	}
}

func (m *MemoryStore) GetDirectoryUsers(_ context.Context, emails []string) ([]entity.DirectoryUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(emails) == 0 {
		return nil, nil
	}
	m.directoryCalls++
	if m.faults.Directory != nil {
		return nil, fmt.Errorf("memory directory lookup: %w", m.faults.Directory)
	}

	var users []entity.DirectoryUser
	for _, email := range emails {
		if u, ok := m.users[email]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MemoryStore) MarkConversationRead(_ context.Context, source entity.Source, id string) (int64, error) {
	if _, err := tablesFor(source); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.faults.MarkMessages != nil {
		return 0, fmt.Errorf("mark messages read: %w", m.faults.MarkMessages)
	}

	var changed []*entity.ChannelMessage
	for _, msg := range m.messages[source] {
		if msg.ConversationID == id && !msg.IsRead {
			msg.IsRead = true
			changed = append(changed, msg)
		}
	}

	if m.faults.ResetCounter != nil {
		if !m.separateMarkRead {
			for _, msg := range changed {
				msg.IsRead = false
			}
			return 0, fmt.Errorf("%w: %w", ErrCounterNotReset, m.faults.ResetCounter)
		}
		return int64(len(changed)), fmt.Errorf("%w: %w", ErrCounterNotReset, m.faults.ResetCounter)
	}

	if c, ok := m.conversations[id]; ok && c.ChannelType.Source() == source {
		c.UnreadCount = 0
		c.UpdatedAt = m.now()
	}
	return int64(len(changed)), nil
}

func (m *MemoryStore) GetUnreadSummary(_ context.Context) (*entity.UnreadSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.faults.UnreadSummary != nil {
		return nil, fmt.Errorf("memory unread summary: %w", m.faults.UnreadSummary)
	}

	summary := entity.NewUnreadSummary()
	for _, c := range m.conversations {
		if c.IsActive {
			summary.Add(c.ChannelType, 1, c.UnreadCount)
		}
	}
	return summary, nil
}

func (m *MemoryStore) GetConversationMessages(_ context.Context, source entity.Source, id string, limit, offset int) ([]entity.ChannelMessage, error) {
	if _, err := tablesFor(source); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.faults.Messages != nil {
		return nil, fmt.Errorf("memory get messages: %w", m.faults.Messages)
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var messages []entity.ChannelMessage
	for _, msg := range m.messages[source] {
		if msg.ConversationID == id {
			messages = append(messages, *msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})

	if offset >= len(messages) {
		return nil, nil
	}
	end := offset + limit
	if end > len(messages) {
		end = len(messages)
	}
	return messages[offset:end], nil
}

func (m *MemoryStore) CheckApiKey(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	username, ok := m.apiKeys[key]
	if !ok {
		return "", ErrNotFound
	}
	return username, nil
}

func (m *MemoryStore) GenerateApiKey(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, owner := range m.apiKeys {
		if owner == username {
			return key, nil
		}
	}
	key := uuid.NewString()
	m.apiKeys[key] = username
	return key, nil
}
