package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"GolfInbox/entity"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markReadCall struct {
	username, source, conversationID string
}

type fakeHandler struct {
	mu    sync.Mutex
	calls []markReadCall
	err   error
}

func (f *fakeHandler) HandleMarkRead(username, source, conversationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, markReadCall{username, source, conversationID})
	return f.err
}

func (f *fakeHandler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type staticAuth map[string]string

func (a staticAuth) ValidateToken(token string) (string, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return "", errors.New("unknown token")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleClientMessage(t *testing.T) {
	hub := NewHub(discardLogger())
	handler := &fakeHandler{}
	hub.SetHandler(handler)

	hub.HandleClientMessage("frontdesk", []byte(`{"type":"mark_read","data":{"source":"line","conversation_id":"c1"}}`))
	hub.HandleClientMessage("frontdesk", []byte(`{"type":"mark_read","data":{"source":"line"}}`))
	hub.HandleClientMessage("frontdesk", []byte(`{"type":"typing","data":{}}`))
	hub.HandleClientMessage("frontdesk", []byte(`not json`))

	require.Equal(t, 1, handler.count())
	assert.Equal(t, markReadCall{"frontdesk", "line", "c1"}, handler.calls[0])

	handler.err = errors.New("store down")
	hub.HandleClientMessage("frontdesk", []byte(`{"type":"mark_read","data":{"source":"meta","conversation_id":"c2"}}`))
	assert.Equal(t, 2, handler.count())
}

func TestBroadcastDropsWhenSaturated(t *testing.T) {
	hub := NewHub(discardLogger())
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.BroadcastConversationRead(entity.ConversationRead{ConversationID: "c"})
	}
	assert.Equal(t, cap(hub.broadcast), len(hub.broadcast))
}

func TestServeWs_Unauthorized(t *testing.T) {
	hub := NewHub(discardLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, staticAuth{}, discardLogger(), w, r)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?token=bad")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWs_ReceivesConversationRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(discardLogger())
	handler := &fakeHandler{}
	hub.SetHandler(handler)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, staticAuth{"tok": "frontdesk"}, discardLogger(), w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=tok"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastConversationRead(entity.ConversationRead{ID: "evt-1", ConversationID: "conv-42", Source: entity.SourceMeta, Marked: 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type string                  `json:"type"`
		Data entity.ConversationRead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, EventConversationRead, got.Type)
	assert.Equal(t, "conv-42", got.Data.ConversationID)
	assert.Equal(t, int64(3), got.Data.Marked)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"mark_read","data":{"source":"website","conversation_id":"w1"}}`)))
	require.Eventually(t, func() bool { return handler.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "frontdesk", handler.calls[0].username)
}
