package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
)

type rawOutbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func startTestServer(t *testing.T, mutate ...func(*config.Config)) (*httptest.Server, *core.Hub) {
	t.Helper()

	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	logger := zerolog.Nop()

	hub := core.NewHub(nil, nil,
		core.WithTypingScope(core.TypingScope(cfg.TypingScope)),
		core.WithLogger(&logger),
	)
	ts := httptest.NewServer(NewRouter(hub, &cfg, &logger))
	t.Cleanup(ts.Close)

	return ts, hub
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{
		"event": event,
		"data":  json.RawMessage(payload),
	}))
}

// expectEvent reads frames until one named event arrives and decodes its data into out.
func expectEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, out any) {
	t.Helper()

	for {
		var frame rawOutbound
		require.NoError(t, wsjson.Read(ctx, conn, &frame))
		if frame.Event != event {
			continue
		}
		if out != nil {
			require.NoError(t, json.Unmarshal(frame.Data, out))
		}
		return
	}
}

func nextFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) rawOutbound {
	t.Helper()

	var frame rawOutbound
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	return frame
}

// expectSilence asserts that no frame arrives within a short window.
// The read deadline closes conn, so it must be the last use of it.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var frame rawOutbound
	err := wsjson.Read(ctx, conn, &frame)
	require.Error(t, err, "unexpected frame: %+v", frame)
}
