package brackets

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	inRoom := NewClient(hub, nil, TournamentRoom)
	elsewhere := NewClient(hub, nil, ZoneRoom("zone-a"))
	hub.Register(inRoom)
	hub.Register(elsewhere)

	require.Eventually(t, func() bool {
		return hub.RoomSize(TournamentRoom) == 1 && hub.RoomSize(ZoneRoom("zone-a")) == 1
	}, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(TournamentRoom, WebSocketMessage{Type: EventGroupsSeeded, RoomID: TournamentRoom})

	select {
	case raw := <-inRoom.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventGroupsSeeded, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
	assert.Empty(t, elsewhere.Send)

	hub.Unregister(inRoom)
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-inRoom.Send
	assert.False(t, open)
}
