// internal/live/hub.go
//
// WebSocket fan-out for hosted puzzles.
// Responsibilities:
//   - Upgrade /puzzle/{id}/ws requests and attach each connection to its game.
//   - readPump: decode {t, reqId, p} envelopes and hand them to the game's Handler.
//   - writePump: serialize outbound frames and keep the connection alive with pings.
//   - Broadcast snapshots to every connection watching a game.
//
// Notes:
//   - Sends never block: a client whose buffer is full misses that frame and
//     catches up with the next snapshot. The send channel is never closed;
//     done tells writePump to hang up.
//   - PING is answered here; every other type goes to the Handler.
package live

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	readTimeout  = 120 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 30 * time.Second
	sendBuffer   = 64
	maxFrame     = 64 << 10
)

// InMsg is a client frame.
type InMsg struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

// OutMsg is a server frame.
type OutMsg struct {
	T     string `json:"t"`
	ReqID string `json:"reqId,omitempty"`
	P     any    `json:"p,omitempty"`
}

// ErrPayload is the body of an ERROR frame.
type ErrPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Error builds an ERROR frame.
func Error(reqID, code, msg string) OutMsg {
	return OutMsg{T: "ERROR", ReqID: reqID, P: ErrPayload{Code: code, Msg: msg}}
}

// Handler answers one inbound frame. A zero OutMsg sends nothing back.
type Handler func(in InMsg) OutMsg

// Conn is one attached client.
type Conn struct {
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}
	gameID string
	once   sync.Once
}

func (c *Conn) close() {
	c.once.Do(func() { close(c.done) })
}

// Hub tracks connections per game.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	games map[string]map[*Conn]struct{}
}

// NewHub returns a hub accepting same-host origins and allowedOrigin ("*" for any).
func NewHub(allowedOrigin string) *Hub {
	h := &Hub{games: make(map[string]map[*Conn]struct{})}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedOrigin == "*" || origin == allowedOrigin {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
	return h
}

// Serve upgrades the request and blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, gameID string, handle Handler) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &Conn{ws: ws, send: make(chan []byte, sendBuffer), done: make(chan struct{}), gameID: gameID}
	h.attach(c)
	go writePump(c)
	h.readPump(c, handle)
	return nil
}

// Broadcast sends out to every connection on gameID.
func (h *Hub) Broadcast(gameID string, out OutMsg) {
	b, err := json.Marshal(out)
	if err != nil {
		log.Error().Err(err).Str("game", gameID).Msg("marshal broadcast")
		return
	}
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.games[gameID]))
	for c := range h.games[gameID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- b:
		default:
		}
	}
}

// Count returns the number of connections on gameID.
func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// Drop disconnects everyone on gameID, used when the game is swept.
func (h *Hub) Drop(gameID string) {
	h.mu.Lock()
	conns := h.games[gameID]
	delete(h.games, gameID)
	h.mu.Unlock()
	for c := range conns {
		c.close()
	}
}

func (h *Hub) attach(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.games[c.gameID]
	if !ok {
		set = make(map[*Conn]struct{})
		h.games[c.gameID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) detach(c *Conn) {
	h.mu.Lock()
	if set, ok := h.games[c.gameID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.games, c.gameID)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) readPump(c *Conn, handle Handler) {
	defer func() {
		h.detach(c)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxFrame)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("game", c.gameID).Msg("ws read")
			}
			return
		}

		var in InMsg
		if err := json.Unmarshal(data, &in); err != nil {
			send(c, Error("", "BAD_JSON", "invalid json"))
			continue
		}

		switch in.T {
		case "PING":
			send(c, OutMsg{T: "PONG", ReqID: in.ReqID})
		default:
			out := handle(in)
			if out.T == "" {
				continue
			}
			if out.ReqID == "" {
				out.ReqID = in.ReqID
			}
			send(c, out)
		}
	}
}

func writePump(c *Conn) {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func send(c *Conn, out OutMsg) {
	b, err := json.Marshal(out)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
