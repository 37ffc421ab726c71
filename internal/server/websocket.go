package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

const (
	// writeWait bounds how long a single client write may block
	writeWait = 10 * time.Second

	// pingPeriod keeps idle connections alive through proxies
	pingPeriod = 30 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (s *ReportServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: false,
	})
	if err != nil {
		s.logger.Error(r.Context(), err, "websocket upgrade")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}

	go c.writePump(s)
	s.register <- c
}

// checkOrigin restricts websocket connections to the server's own page.
func (s *ReportServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	allowedOrigins := []string{
		fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		fmt.Sprintf("localhost:%d", s.config.Server.Port),
		fmt.Sprintf("127.0.0.1:%d", s.config.Server.Port),
	}
	for _, allowed := range allowedOrigins {
		if originURL.Host == allowed {
			return true
		}
	}
	return false
}

// runHub owns the client set; register, unregister, and broadcast all flow
// through here so no lock is needed around the map.
func (s *ReportServer) runHub(ctx context.Context) {
	clients := make(map[*client]bool)

	closeAll := func() {
		for c := range clients {
			close(c.send)
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}

	for {
		select {
		case <-ctx.Done():
			closeAll()
			return
		case c := <-s.register:
			clients[c] = true
		case c := <-s.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
			}
		case message := <-s.broadcast:
			for c := range clients {
				select {
				case c.send <- message:
				default:
					// Slow client, drop it
					delete(clients, c)
					close(c.send)
					c.conn.Close(websocket.StatusNormalClosure, "")
				}
			}
		}
	}
}

func (c *client) writePump(s *ReportServer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				s.unregister <- c
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				s.unregister <- c
				return
			}
		}
	}
}
