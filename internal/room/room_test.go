package room_test

import (
	"testing"

	"monopolydeal-server/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMember_RejectsOnceFull(t *testing.T) {
	r := room.New("ABCDEF", 2)
	require.NoError(t, r.AddMember("p1", "Alice"))
	require.NoError(t, r.AddMember("p2", "Bob"))
	assert.Error(t, r.AddMember("p3", "Carol"))
}

func TestAddMember_RejoiningExistingSeatIsIdempotent(t *testing.T) {
	r := room.New("ABCDEF", 2)
	require.NoError(t, r.AddMember("p1", "Alice"))
	assert.NoError(t, r.AddMember("p1", "Alice"))
	assert.Equal(t, 1, r.MemberCount())
}

func TestAddMember_RejectsAfterStart(t *testing.T) {
	r := room.New("ABCDEF", 4)
	require.NoError(t, r.AddMember("p1", "Alice"))
	require.NoError(t, r.AddMember("p2", "Bob"))
	_, err := r.Start(1)
	require.NoError(t, err)

	assert.Error(t, r.AddMember("p3", "Carol"))
}

func TestStart_RequiresAtLeastTwoPlayers(t *testing.T) {
	r := room.New("ABCDEF", 4)
	require.NoError(t, r.AddMember("p1", "Alice"))
	_, err := r.Start(1)
	assert.Error(t, err)
}

func TestStart_Twice_Fails(t *testing.T) {
	r := room.New("ABCDEF", 4)
	require.NoError(t, r.AddMember("p1", "Alice"))
	require.NoError(t, r.AddMember("p2", "Bob"))
	_, err := r.Start(1)
	require.NoError(t, err)

	_, err = r.Start(1)
	assert.Error(t, err)
}

func TestRoster_PreservesJoinOrder(t *testing.T) {
	r := room.New("ABCDEF", 4)
	require.NoError(t, r.AddMember("p1", "Alice"))
	require.NoError(t, r.AddMember("p2", "Bob"))

	roster := r.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, "p1", roster[0].ID)
	assert.Equal(t, "p2", roster[1].ID)
}

func TestSetReady_UnknownPlayerFails(t *testing.T) {
	r := room.New("ABCDEF", 4)
	assert.Error(t, r.SetReady("ghost", true))
}

func TestGame_NilBeforeStart(t *testing.T) {
	r := room.New("ABCDEF", 4)
	assert.Nil(t, r.Game())
	assert.False(t, r.IsStarted())
}
