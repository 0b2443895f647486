// Package websocket implements the live leaderboard push channel.
// WebSockets are persistent two-way connections between the server and clients — unlike
// regular HTTP where the client always initiates the request, WebSockets let the server
// push data to clients instantly. Every time the cron pass rescores a live tournament,
// the fresh leaderboard is broadcast here so members watching the app see positions
// move the moment new golfer scores land, without polling the API repeatedly.
package websocket

import "sync" // sync provides synchronization primitives like mutexes for safe concurrent access

// Client represents a single connected WebSocket client.
// Each member watching a live tournament has one Client instance on the server.
type Client struct {
	TournamentID string      // Which tournament this client is watching — used to route messages to the right audience
	Send         chan []byte // Buffered channel of outgoing messages; the Hub sends data here, the WebSocket writes it to the client
}

// Message is a unit of data to broadcast to all clients watching a specific tournament.
// By attaching the TournamentID, the Hub knows which group of clients should receive it.
type Message struct {
	TournamentID string // The tournament this message belongs to
	Data         []byte // The raw bytes to send (a JSON-encoded leaderboard snapshot)
}

// Hub manages all active WebSocket connections, grouped by tournament ID.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels — this keeps all map access on a single goroutine,
// which avoids data races (concurrent map reads/writes cause panics in Go).
type Hub struct {
	// clients is a nested map: tournamentID -> set of Client pointers -> bool (true = connected).
	// Using a map[*Client]bool as a "set" is a common Go idiom because Go has no built-in set type.
	clients map[string]map[*Client]bool

	broadcast  chan *Message // Incoming messages to be sent to all clients watching a given tournament
	register   chan *Client  // Signals that a new client has connected and should be tracked
	unregister chan *Client  // Signals that a client has disconnected and should be removed

	// mu (mutex) protects the clients map when it's accessed from broadcast (RLock/RUnlock)
	// while the main loop modifies it (Lock/Unlock). A RWMutex allows multiple concurrent
	// readers OR one exclusive writer — suitable since broadcasts just read the client list.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub with empty channels and maps.
// The broadcast channel has a buffer of 256 so writers don't block immediately
// if the Hub goroutine is briefly busy. register and unregister are unbuffered
// because those operations need to complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine ("go hub.Run()").
// It blocks forever, processing one event at a time via a select statement.
// select is like a switch but for channels — it waits until one of the cases has data ready.
func (h *Hub) Run() {
	for {
		select {

		// A new client has connected — add it to the clients map under its TournamentID
		case client := <-h.register:
			h.mu.Lock()
			// If this is the first client for this tournament, initialize the inner map
			if h.clients[client.TournamentID] == nil {
				h.clients[client.TournamentID] = make(map[*Client]bool)
			}
			h.clients[client.TournamentID][client] = true
			h.mu.Unlock()

		// A client has disconnected — remove it from the map and close its Send channel
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.TournamentID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client) // Remove this client from the tournament's set
					close(client.Send)      // Closing the channel signals the WebSocket writer goroutine to stop
					// Clean up the tournament's map entry if no clients are left — avoids memory leaks
					if len(clients) == 0 {
						delete(h.clients, client.TournamentID)
					}
				}
			}
			h.mu.Unlock()

		// A message arrived to broadcast to all clients watching a specific tournament
		case msg := <-h.broadcast:
			// Use RLock (read lock) here because we're only reading the clients map,
			// not modifying it. Multiple goroutines can hold an RLock simultaneously.
			h.mu.RLock()
			clients := h.clients[msg.TournamentID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				// Try to send the message to the client's outgoing channel
				case client.Send <- msg.Data:
				// If the channel buffer is full, the client is too slow — drop and disconnect it.
				// The default case makes this non-blocking: if Send is full we unregister
				// rather than blocking the broadcast loop for all other clients.
				default:
					h.unregister <- client
				}
			}
		}
	}
}

// BroadcastToTournament sends data to all clients currently watching the given
// tournament. This is the public API the cron pass calls after a rescore.
func (h *Hub) BroadcastToTournament(tournamentID string, data []byte) {
	h.broadcast <- &Message{TournamentID: tournamentID, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts for its tournament.
// Called when a WebSocket connection is opened.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its WebSocket connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
