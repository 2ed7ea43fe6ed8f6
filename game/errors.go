package game

import "errors"

// Rejected transitions. The room reports these to the offending
// connection only; the snapshot stays unchanged and nothing is broadcast.
var (
	ErrEmptyRedTeam = errors.New("cannot start game: red team is empty")
	ErrEmptyTeam    = errors.New("cannot advance turn: next team has no players")
)
