package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRoutesBroadcastsByTournament(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{TournamentID: "t1", Send: make(chan []byte, 4)}
	other := &Client{TournamentID: "t2", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToTournament("t1", []byte("leaderboard"))

	select {
	case data := <-watcher.Send:
		assert.Equal(t, "leaderboard", string(data))
	case <-time.After(time.Second):
		t.Fatal("watcher never received the broadcast")
	}

	// The other tournament's watcher must see nothing.
	select {
	case data := <-other.Send:
		t.Fatalf("unexpected message for other tournament: %q", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{TournamentID: "t1", Send: make(chan []byte, 4)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		require.False(t, open, "Send should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("Send was never closed")
	}
}
