package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blackjack-lite/apps/server/internal/codec"
	"blackjack-lite/apps/server/internal/lobby"
	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/blackjack"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, query string) (*websocket.Conn, *Gateway, practice.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := practice.NewMemoryService()
	cfg := blackjack.DefaultConfig()
	cfg.Seed = 9
	g := New(lobby.New(cfg, store, logger), logger)

	srv := httptest.NewServer(http.HandlerFunc(g.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, g, store
}

func send(t *testing.T, conn *websocket.Conn, msg codec.ClientMessage) {
	t.Helper()
	data, err := codec.EncodeClient(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, data))
}

func readFrame(t *testing.T, conn *websocket.Conn) codec.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, typ)
	env, err := codec.DecodeServer(data)
	require.NoError(t, err)
	return env
}

func TestGateway_RequiresJoin(t *testing.T) {
	conn, _, _ := dial(t, "")
	send(t, conn, codec.ClientMessage{Type: codec.ClientDeal})

	env := readFrame(t, conn)
	assert.Equal(t, codec.ServerError, env.Type)
	assert.Contains(t, env.Payload.GetFields()["message"].GetStringValue(), "join")
}

func TestGateway_JoinAndDeal(t *testing.T) {
	conn, g, _ := dial(t, "?user=alice")
	send(t, conn, codec.ClientMessage{Type: codec.ClientJoin, Mode: "counting"})

	env := readFrame(t, conn)
	require.Equal(t, codec.ServerSnapshot, env.Type)
	assert.Equal(t, "counting", env.Payload.GetFields()["mode"].GetStringValue())
	_, shown := env.Payload.GetFields()["running_count"]
	assert.False(t, shown, "counting mode hides the count")
	assert.Equal(t, 1, g.ConnectionCount())

	send(t, conn, codec.ClientMessage{Type: codec.ClientDeal})
	env = readFrame(t, conn)
	require.Equal(t, codec.ServerSnapshot, env.Type)
	assert.Equal(t, float64(1), env.Payload.GetFields()["round"].GetNumberValue())
}

func TestGateway_BadFrameGetsError(t *testing.T) {
	conn, _, _ := dial(t, "")
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0xff, 0xff, 0xff}))
	env := readFrame(t, conn)
	assert.Equal(t, codec.ServerError, env.Type)
}
