package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"blackjack-lite/apps/server/internal/codec"
	"blackjack-lite/apps/server/internal/lobby"
	"blackjack-lite/apps/server/internal/table"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 65536
)

// Connection represents a WebSocket client connection
type Connection struct {
	ID      string
	UserID  string
	Conn    *websocket.Conn
	Send    chan []byte
	Gateway *Gateway

	closeOnce  sync.Once
	sendMu     sync.Mutex
	sendClosed bool

	mu    sync.Mutex
	Table *table.Table
}

// Gateway manages WebSocket connections
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64
	nextGuestID uint64
	lobby       *lobby.Lobby
	logger      *slog.Logger
}

func New(lby *lobby.Lobby, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		connections: make(map[string]*Connection),
		lobby:       lby,
		logger:      logger,
	}
}

// HandleWebSocket upgrades the request. The user comes from ?user=, otherwise the
// connection plays as a numbered guest.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("[Gateway] Upgrade error", "err", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	connID := fmt.Sprintf("conn_%d", g.nextConnID)
	userID := strings.TrimSpace(r.URL.Query().Get("user"))
	if userID == "" {
		g.nextGuestID++
		userID = fmt.Sprintf("guest_%d", g.nextGuestID)
	}
	c := &Connection{
		ID:      connID,
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Gateway: g,
	}
	g.connections[connID] = c
	total := len(g.connections)
	g.mu.Unlock()

	g.logger.Info("[Gateway] Client connected", "conn", connID, "user", userID, "total", total)

	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessage)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Gateway.logger.Warn("[Gateway] Read error", "conn", c.ID, "err", err)
			}
			break
		}
		if messageType == websocket.BinaryMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	msg, err := codec.DecodeClient(data)
	if err != nil {
		c.Gateway.logger.Debug("[Gateway] Bad message", "conn", c.ID, "err", err)
		c.sendError(table.CodeInternal, err.Error())
		return
	}

	if msg.Type == codec.ClientJoin {
		c.handleJoin(msg.Mode)
		return
	}

	c.mu.Lock()
	t := c.Table
	c.mu.Unlock()
	if t == nil {
		c.sendError(table.CodeInvalidState, "join a table first")
		return
	}

	ev := table.Event{Action: msg.Action, Value: msg.Value}
	switch msg.Type {
	case codec.ClientDeal:
		ev.Type = table.EventDeal
	case codec.ClientAction:
		ev.Type = table.EventAction
	case codec.ClientCheckCount:
		ev.Type = table.EventCheckCount
	case codec.ClientReset:
		ev.Type = table.EventResetStats
	case codec.ClientEndSession:
		ev.Type = table.EventEndSession
	case codec.ClientSaveRetry:
		ev.Type = table.EventRetrySave
	}
	if err := t.SubmitEvent(ev); err != nil {
		if frame := t.ErrorFrame(err); frame != nil {
			c.enqueue(frame)
		}
	}
}

// handleJoin opens a fresh table, closing the previous one so its session is saved.
func (c *Connection) handleJoin(mode string) {
	c.mu.Lock()
	prev := c.Table
	c.Table = nil
	c.mu.Unlock()
	if prev != nil {
		c.Gateway.lobby.Close(prev.ID)
	}

	t, err := c.Gateway.lobby.Open(c.UserID, mode, c.enqueue)
	if err != nil {
		c.sendError(table.CodeInvalidState, err.Error())
		return
	}
	c.mu.Lock()
	c.Table = t
	c.mu.Unlock()

	if err := t.SubmitEvent(table.Event{Type: table.EventJoin}); err != nil {
		c.sendError(table.ErrorCode(err), err.Error())
		return
	}
	c.Gateway.logger.Info("[Gateway] User joined table", "user", c.UserID, "table", t.ID)
}

func (c *Connection) sendError(code int, msg string) {
	tableID := ""
	c.mu.Lock()
	if c.Table != nil {
		tableID = c.Table.ID
	}
	c.mu.Unlock()

	data, err := codec.EncodeServer(tableID, 0, codec.ServerError, codec.ErrorPayload(code, msg))
	if err != nil {
		return
	}
	c.enqueue(data)
}

// enqueue drops the frame when the client is not keeping up.
func (c *Connection) enqueue(data []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.Gateway.logger.Warn("[Gateway] Send buffer full, dropping frame", "conn", c.ID)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// removeConnection ends the connection's session and stops its writer.
func (g *Gateway) removeConnection(c *Connection) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		t := c.Table
		c.Table = nil
		c.mu.Unlock()
		if t != nil {
			g.lobby.Close(t.ID)
		}

		g.mu.Lock()
		delete(g.connections, c.ID)
		total := len(g.connections)
		g.mu.Unlock()

		c.sendMu.Lock()
		c.sendClosed = true
		close(c.Send)
		c.sendMu.Unlock()
		g.logger.Info("[Gateway] Client disconnected", "conn", c.ID, "total", total)
	})
}

// ConnectionCount reports open sockets.
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}
