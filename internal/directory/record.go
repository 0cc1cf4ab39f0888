// Package directory holds room metadata: the directory of rooms a client
// can look up or list, independent of the live game state inside one.
package directory

import "time"

// RosterMember is one lobby entry: a player who has connected to a room but
// whose hand/bank/properties don't exist until the game starts.
type RosterMember struct {
	PlayerID string
	Name     string
	IsReady  bool
}

// Record is a room's directory entry.
type Record struct {
	RoomCode    string
	CreatedAt   time.Time
	MaxPlayers  int
	HasStarted  bool
	PlayerIDs   []string
	Roster      []RosterMember
}
