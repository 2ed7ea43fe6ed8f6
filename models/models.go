package models

// Team encodes which side a client plays for. The numeric values are
// part of the wire protocol.
type Team int

const (
	TeamNone Team = 0
	TeamRed  Team = 1
	TeamBlue Team = 2
)

// Word is one catalog entry: the word to describe and the taboo words
// the describing player must not say. Immutable once loaded.
type Word struct {
	ID     int      `json:"id"`
	Word   string   `json:"word"`
	Taboos []string `json:"taboos"`
}

// Client is one roster entry in a room.
type Client struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Team     Team   `json:"team"`
	Score    int    `json:"score"`
	IsAdmin  bool   `json:"is_admin"`
}

// RoomState is the authoritative snapshot of one room. Snapshots are
// immutable: every transition clones the current one, mutates the clone
// and swaps it in under the room gate, so a broadcast always serializes
// a fully formed state.
type RoomState struct {
	Clients       []Client `json:"clients"`
	IsStarted     bool     `json:"is_started"`
	IsEnded       bool     `json:"is_ended"`
	AdminID       string   `json:"admin_id"`
	CurrentWord   Word     `json:"current_word"`
	ActivePlayer  *Client  `json:"active_player"`
	RedTeam       []Client `json:"red_team"`
	BlueTeam      []Client `json:"blue_team"`
	LastRedIndex  int      `json:"last_red_index"`
	LastBlueIndex int      `json:"last_blue_index"`
	LastTeam      Team     `json:"last_team"`
	Timer         int      `json:"timer"`
}

// NewRoomState returns the default lobby snapshot of a freshly created room.
func NewRoomState() *RoomState {
	return &RoomState{
		Clients:  []Client{},
		RedTeam:  []Client{},
		BlueTeam: []Client{},
	}
}

// Clone returns a deep copy. Word taboo slices are shared, words are
// immutable once loaded.
func (s *RoomState) Clone() *RoomState {
	next := *s
	next.Clients = append([]Client{}, s.Clients...)
	next.RedTeam = append([]Client{}, s.RedTeam...)
	next.BlueTeam = append([]Client{}, s.BlueTeam...)
	if s.ActivePlayer != nil {
		active := *s.ActivePlayer
		next.ActivePlayer = &active
	}
	return &next
}

// HasClient reports whether a client id is present in the roster.
func (s *RoomState) HasClient(clientID string) bool {
	for i := range s.Clients {
		if s.Clients[i].ID == clientID {
			return true
		}
	}
	return false
}

// RemoveClient drops a client id from the roster. Unknown ids are a no-op.
func (s *RoomState) RemoveClient(clientID string) {
	for i := range s.Clients {
		if s.Clients[i].ID == clientID {
			s.Clients = append(s.Clients[:i], s.Clients[i+1:]...)
			return
		}
	}
}

// ResetTransient clears every mid-game field back to lobby defaults.
// Roster, scores, admin and the started/ended flags are untouched.
func (s *RoomState) ResetTransient() {
	s.CurrentWord = Word{}
	s.ActivePlayer = nil
	s.RedTeam = []Client{}
	s.BlueTeam = []Client{}
	s.LastRedIndex = 0
	s.LastBlueIndex = 0
	s.LastTeam = TeamNone
	s.Timer = 0
}
