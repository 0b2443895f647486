// client.go — the Fiber transport for the Hub.
// The Hub in hub.go is transport-agnostic: it only knows about Client structs and
// byte slices. This file binds it to actual WebSocket connections using Fiber's
// contrib websocket package, with the classic read-pump/write-pump goroutine pair.
package websocket

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	// writeWait is how long a single write may take before the connection is
	// considered dead.
	writeWait = 10 * time.Second

	// pongWait is how long we wait for a pong before dropping the client;
	// pings go out a little more often than that.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// UpgradeRequired is plain Fiber middleware that rejects requests to the
// websocket route that are not actually websocket upgrade handshakes.
// Fiber's contrib handler panics on a non-upgrade request, so this check must
// run first on the route.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the websocket handler for GET /ws/tournaments/:id.
// Each accepted connection becomes one Hub client subscribed to the tournament
// in the URL. The connection lives until the client hangs up, stops answering
// pings, or falls too far behind on reads (the Hub closes Send in that case).
func Serve(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			TournamentID: conn.Params("id"),
			Send:         make(chan []byte, 64),
		}
		hub.Register(client)

		// The write pump runs in its own goroutine so a slow reader can never
		// block broadcast delivery to other clients.
		done := make(chan struct{})
		go writePump(conn, client, done)

		// Read pump, on this goroutine: we never expect client messages, but
		// reading is what surfaces disconnects and delivers pongs.
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(client)
		<-done
	})
}

// writePump drains the client's Send channel onto the wire and keeps the
// connection alive with periodic pings. It exits when the Hub closes Send
// (client was unregistered) or a write fails.
func writePump(conn *websocket.Conn, client *Client, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel — say goodbye properly
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
