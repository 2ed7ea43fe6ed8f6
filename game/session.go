package game

import (
	"github.com/tabuparty/gameserver/models"
)

// Session is the state machine of one room. Each transition reads the
// current snapshot, computes a new one, swaps it in and returns it for
// broadcast. Session is not safe for concurrent use; the owning room
// serializes every call through its gate.
type Session struct {
	state       *models.RoomState
	deck        *Deck
	turnSeconds int
}

// NewSession creates a lobby-state session over an already shuffled deck.
func NewSession(deck *Deck, turnSeconds int) *Session {
	return &Session{
		state:       models.NewRoomState(),
		deck:        deck,
		turnSeconds: turnSeconds,
	}
}

// State returns the current snapshot without changing it.
func (s *Session) State() *models.RoomState {
	return s.state
}

// Connect registers a client in the roster. Joining a running game first
// drops the caller from the roster, mirroring an ordinary leave, before
// the join is re-evaluated. The first client to join an empty roster
// becomes the room admin. Every (re)join resets the mid-game fields, so
// the room falls back to lobby defaults whenever anyone connects.
func (s *Session) Connect(clientID, username string) *models.RoomState {
	next := s.state.Clone()

	if next.IsStarted {
		next.RemoveClient(clientID)
	}

	if !next.HasClient(clientID) {
		client := models.Client{
			ID:       clientID,
			Username: username,
			Team:     models.TeamNone,
		}
		if len(next.Clients) == 0 {
			client.IsAdmin = true
			next.AdminID = clientID
		}
		next.Clients = append(next.Clients, client)
	}

	next.ResetTransient()

	s.state = next
	return next
}

// Disconnect removes a client from the roster. This is the leave half of
// the lifecycle; the room broadcasts the returned snapshot to survivors.
func (s *Session) Disconnect(clientID string) *models.RoomState {
	if !s.state.HasClient(clientID) {
		return s.state
	}
	next := s.state.Clone()
	next.RemoveClient(clientID)
	s.state = next
	return next
}

// SetTeam moves a client to red, blue or back to none. An unknown
// client id is a silent no-op.
func (s *Session) SetTeam(clientID string, team models.Team) *models.RoomState {
	next := s.state.Clone()
	for i := range next.Clients {
		if next.Clients[i].ID == clientID {
			switch team {
			case models.TeamRed, models.TeamBlue:
				next.Clients[i].Team = team
			default:
				next.Clients[i].Team = models.TeamNone
			}
		}
	}
	s.state = next
	return next
}

// StartGame freezes the roster into the red and blue turn orders, draws
// the deck's current word without advancing it and hands the first turn
// to the first red player. A game with no red players is rejected.
func (s *Session) StartGame() (*models.RoomState, error) {
	next := s.state.Clone()

	red := []models.Client{}
	blue := []models.Client{}
	for _, c := range next.Clients {
		switch c.Team {
		case models.TeamRed:
			red = append(red, c)
		case models.TeamBlue:
			blue = append(blue, c)
		}
	}
	if len(red) == 0 {
		return nil, ErrEmptyRedTeam
	}

	next.RedTeam = red
	next.BlueTeam = blue
	next.IsStarted = true
	next.IsEnded = false
	next.CurrentWord = s.deck.Current()
	active := red[0]
	next.ActivePlayer = &active
	next.LastRedIndex = 0
	next.LastBlueIndex = -1
	next.LastTeam = models.TeamRed
	next.Timer = s.turnSeconds

	s.state = next
	return next, nil
}

// EndGame marks the session over. Roster, scores and the rest of the
// snapshot are retained.
func (s *Session) EndGame() *models.RoomState {
	next := s.state.Clone()
	next.IsStarted = false
	next.IsEnded = true
	s.state = next
	return next
}

// Score adds a signed amount to a client's score and advances the deck,
// revealing the next word without switching the active team. An unknown
// client id leaves the snapshot untouched.
func (s *Session) Score(clientID string, delta int) *models.RoomState {
	next := s.state.Clone()
	found := false
	for i := range next.Clients {
		if next.Clients[i].ID == clientID {
			next.Clients[i].Score += delta
			found = true
		}
	}
	if !found {
		return s.state
	}
	next.CurrentWord = s.deck.Advance()
	s.state = next
	return next
}

// NextTurn hands the turn to the opposing team and advances the deck.
// Each team keeps its own round-robin pointer, which only moves on that
// team's turn, so switching never skips players. A turn toward an empty
// team is rejected.
func (s *Session) NextTurn() (*models.RoomState, error) {
	next := s.state.Clone()

	target := models.TeamRed
	if next.LastTeam == models.TeamRed {
		target = models.TeamBlue
	}

	var active models.Client
	switch target {
	case models.TeamBlue:
		if len(next.BlueTeam) == 0 {
			return nil, ErrEmptyTeam
		}
		next.LastBlueIndex++
		if next.LastBlueIndex >= len(next.BlueTeam) {
			next.LastBlueIndex = 0
		}
		active = next.BlueTeam[next.LastBlueIndex]
	default:
		if len(next.RedTeam) == 0 {
			return nil, ErrEmptyTeam
		}
		next.LastRedIndex++
		if next.LastRedIndex >= len(next.RedTeam) {
			next.LastRedIndex = 0
		}
		active = next.RedTeam[next.LastRedIndex]
	}

	next.LastTeam = target
	next.ActivePlayer = &active
	next.CurrentWord = s.deck.Advance()

	s.state = next
	return next, nil
}

// Timer decrements the countdown by one second, floor zero. Only the
// room admin may drive it; anyone else is a silent no-op. A room whose
// admin has left keeps an adminless countdown on purpose.
func (s *Session) Timer(clientID string) *models.RoomState {
	if clientID == "" || clientID != s.state.AdminID {
		return s.state
	}
	if s.state.Timer <= 0 {
		return s.state
	}
	next := s.state.Clone()
	next.Timer--
	s.state = next
	return next
}
