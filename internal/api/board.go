package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // hall board screens live on the LAN
	},
}

// Board fans order-change notifications out to the hall screens. A screen
// connects once and redraws whenever a message arrives.
type Board struct {
	mu      sync.Mutex
	clients map[*boardClient]bool
}

type boardClient struct {
	conn *websocket.Conn
	send chan []byte
}

// BoardEvent is the message pushed to every connected screen: which date
// changed and the remaining missing-order counts per diet.
type BoardEvent struct {
	Kind         string         `json:"kind"`
	Date         string         `json:"date"`
	TotalMissing int            `json:"total_missing"`
	ByDiet       map[string]int `json:"by_diet,omitempty"`
}

// NewBoard creates an empty board hub.
func NewBoard() *Board {
	return &Board{clients: make(map[*boardClient]bool)}
}

// handleBoard upgrades the request and registers the screen.
func (s *Server) handleBoard(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &boardClient{
		conn: conn,
		send: make(chan []byte, 16),
	}
	s.board.add(client)

	go client.writePump()
	go func() {
		defer s.board.remove(client)
		client.readPump()
	}()
}

// Notify pushes an event to every screen.
func (b *Board) Notify(event BoardEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling board event: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client.send <- data:
		default:
			log.Println("Board buffer full, dropping message")
		}
	}
}

func (b *Board) add(c *boardClient) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = true
}

func (b *Board) remove(c *boardClient) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[c] {
		delete(b.clients, c)
		close(c.send)
	}
}

// readPump drains the connection; the board is push-only, incoming frames
// only keep the read deadline fresh.
func (c *boardClient) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps events from the hub to the screen.
func (c *boardClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
