package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/directory"
	"monopolydeal-server/internal/events"
	"monopolydeal-server/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	rooms := room.NewService(directory.NewRepository(), events.NewEventBus("", nil))
	return NewHub(rooms)
}

func drainSend(t *testing.T, c *Connection) dto.OutboundEnvelope {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	default:
		t.Fatal("expected a message on connection's send channel")
		return dto.OutboundEnvelope{}
	}
}

func TestDeriveSeed_IsDeterministicPerRoomCode(t *testing.T) {
	a := deriveSeed("ABC123")
	b := deriveSeed("ABC123")
	c := deriveSeed("XYZ999")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHandleEstablishConnection_AdmitsAndBroadcastsRoster(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	record, err := h.rooms.CreateRoom(ctx, 4)
	require.NoError(t, err)

	conn := NewConnection("conn-1", nil, h)
	raw, err := json.Marshal(map[string]string{"roomCode": record.RoomCode, "player_id": "p1", "name": "Alice"})
	require.NoError(t, err)

	h.handleEstablishConnection(ctx, conn, raw)

	playerID, roomCode := conn.GetPlayer()
	assert.Equal(t, "p1", playerID)
	assert.Equal(t, record.RoomCode, roomCode)

	msg := drainSend(t, conn)
	assert.Equal(t, "roster_update", msg.Type)
}

func TestHandleEstablishConnection_UnknownRoomSendsRejection(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	conn := NewConnection("conn-2", nil, h)
	raw, err := json.Marshal(map[string]string{"roomCode": "ZZZZZZ", "player_id": "p1", "name": "Alice"})
	require.NoError(t, err)

	h.handleEstablishConnection(ctx, conn, raw)

	msg := drainSend(t, conn)
	assert.Equal(t, "rejection", msg.Type)
}

func TestHandleGameAction_RejectsWhenNotYetConnected(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	conn := NewConnection("conn-3", nil, h)
	h.handleGameAction(ctx, conn, "skip_turn", []byte(`{}`))

	msg := drainSend(t, conn)
	assert.Equal(t, "rejection", msg.Type)
}

func TestHandlePlayerReady_TogglesAndBroadcasts(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	record, err := h.rooms.CreateRoom(ctx, 4)
	require.NoError(t, err)
	require.NoError(t, h.rooms.Join(ctx, record.RoomCode, "p1", "Alice"))

	conn := NewConnection("conn-4", nil, h)
	conn.SetPlayer("p1", record.RoomCode)
	h.addToRoom(conn, record.RoomCode)

	h.handlePlayerReady(ctx, conn, []byte(`{"isReady":true}`))

	msg := drainSend(t, conn)
	assert.Equal(t, "roster_update", msg.Type)

	r, ok := h.rooms.GetRoom(record.RoomCode)
	require.True(t, ok)
	roster := r.Roster()
	require.Len(t, roster, 1)
	assert.True(t, roster[0].IsReady)
}
