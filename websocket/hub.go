package websocket

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client is one open connection, bound to exactly one user after the
// handshake gate admits it.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID int
}

// Hub is the connection registry: one logical room per user id, whose
// membership is that user's currently open connections. Rooms are created
// implicitly on first join and vanish when the last connection leaves;
// join/leave and fan-out are the only mutators.
type Hub struct {
	mu            sync.RWMutex
	clientsByUser map[int]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clientsByUser: make(map[int]map[*Client]bool)}
}

func (h *Hub) join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clientsByUser[c.userID]
	if !ok {
		set = make(map[*Client]bool)
		h.clientsByUser[c.userID] = set
	}
	set[c] = true
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clientsByUser[c.userID]
	if !ok {
		return
	}
	if _, exists := set[c]; exists {
		delete(set, c)
		close(c.send)
		if len(set) == 0 {
			delete(h.clientsByUser, c.userID)
		}
	}
}

// NotifyUser delivers payload to every connection in the user's room.
// Delivery is best-effort: a connection whose send buffer is full is dropped
// and must reconnect; a user with no open connections receives nothing.
func (h *Hub) NotifyUser(userID int, payload []byte) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clientsByUser[userID]
	if !ok {
		return
	}
	for c := range set {
		select {
		case c.send <- payload:
		default:
			delete(set, c)
			close(c.send)
		}
	}
	if len(set) == 0 {
		delete(h.clientsByUser, userID)
	}
}

// ConnectionCount reports the number of open connections for a user.
func (h *Hub) ConnectionCount(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientsByUser[userID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handshakeToken extracts the credential from the upgrade request. Browser
// clients cannot set headers on a websocket, so the token query parameter is
// the primary channel; a bearer header works for everything else.
func handshakeToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// verifyToken checks signature and expiry and returns the userId claim.
func verifyToken(tokenString, secret string) (int, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	userID, ok := claims["userId"].(float64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return int(userID), true
}

// ServeWS is the handshake gate: it authenticates the upgrade request, and
// only on success upgrades the connection and joins it to the user's room.
// A missing credential is rejected as UNAUTHORIZED, a malformed or expired
// one as INVALID_TOKEN; in both cases no room join ever happens.
func ServeWS(h *Hub, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := handshakeToken(c.Request)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeUnauthorized, "Authentication required"))
			return
		}
		userID, ok := verifyToken(tokenString, jwtSecret)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeInvalidToken, "Invalid token"))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}
		client := &Client{conn: conn, send: make(chan []byte, 256), userID: userID}
		h.join(client)

		go client.readLoop(h)
		client.writeLoop()
	}
}

// readLoop discards inbound frames (the channel is server-push only) and
// leaves the room when the peer goes away.
func (c *Client) readLoop(h *Hub) {
	defer func() {
		h.leave(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
