package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tabuparty/gameserver/models"
)

func newTestSession(words, turnSeconds int) *Session {
	deck := NewDeck(testCatalog(words), rand.New(rand.NewSource(1)))
	return NewSession(deck, turnSeconds)
}

// joinTeams wires up the usual fixture: a and b on red, c on blue.
func joinTeams(s *Session) {
	s.Connect("a", "alice")
	s.Connect("b", "bob")
	s.Connect("c", "carol")
	s.SetTeam("a", models.TeamRed)
	s.SetTeam("b", models.TeamRed)
	s.SetTeam("c", models.TeamBlue)
}

func TestConnect_FirstJoinerIsAdmin(t *testing.T) {
	s := newTestSession(5, 60)

	s.Connect("a", "alice")
	s.Connect("b", "bob")
	snap := s.Connect("c", "carol")

	if snap.AdminID != "a" {
		t.Errorf("Expected admin id to be a, got %q", snap.AdminID)
	}
	admins := 0
	for _, c := range snap.Clients {
		if c.IsAdmin {
			admins++
			if c.ID != "a" {
				t.Errorf("Expected only the first joiner to be admin, but %s is", c.ID)
			}
		}
	}
	if admins != 1 {
		t.Errorf("Expected exactly one admin, got %d", admins)
	}
}

func TestConnect_DuplicateIDJoinsOnce(t *testing.T) {
	s := newTestSession(5, 60)

	s.Connect("a", "alice")
	snap := s.Connect("a", "alice")

	if len(snap.Clients) != 1 {
		t.Errorf("Expected a single roster entry, got %d", len(snap.Clients))
	}
}

func TestConnect_ResetsTransientFields(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	snap := s.Connect("a", "alice")

	if snap.CurrentWord.ID != 0 {
		t.Error("Expected the current word to reset on connect")
	}
	if snap.ActivePlayer != nil {
		t.Error("Expected the active player to reset on connect")
	}
	if len(snap.RedTeam) != 0 || len(snap.BlueTeam) != 0 {
		t.Error("Expected the team snapshots to reset on connect")
	}
	if snap.LastTeam != models.TeamNone || snap.Timer != 0 {
		t.Error("Expected turn tracking and timer to reset on connect")
	}
}

func TestConnect_DuringGameForcesLeaveFirst(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	// Client b rejoins mid-game: dropped from the roster and re-added
	// as a fresh client.
	snap := s.Connect("b", "bob")

	if len(snap.Clients) != 3 {
		t.Fatalf("Expected 3 roster entries after rejoin, got %d", len(snap.Clients))
	}
	// The rejoin moved b to the end of the roster.
	if snap.Clients[2].ID != "b" {
		t.Errorf("Expected the rejoined client at the roster tail, got %s", snap.Clients[2].ID)
	}
	if snap.Clients[2].Team != models.TeamNone {
		t.Errorf("Expected the rejoined client to be teamless, got team %d", snap.Clients[2].Team)
	}
}

func TestStartThenEnd_KeepsRosterAndScores(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	s.Score("a", 7)

	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	snap := s.EndGame()

	if snap.IsStarted || !snap.IsEnded {
		t.Errorf("Expected is_started=false is_ended=true, got %v/%v", snap.IsStarted, snap.IsEnded)
	}
	if len(snap.Clients) != 3 {
		t.Errorf("Expected the roster to survive end_game, got %d clients", len(snap.Clients))
	}
	if snap.Clients[0].Score != 7 {
		t.Errorf("Expected score 7 to survive end_game, got %d", snap.Clients[0].Score)
	}
}

func TestStartGame_EmptyRedTeamRejected(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("c", "carol")
	s.SetTeam("c", models.TeamBlue)

	before := s.State()
	snap, err := s.StartGame()

	if err != ErrEmptyRedTeam {
		t.Fatalf("Expected ErrEmptyRedTeam, got %v", err)
	}
	if snap != nil {
		t.Error("Expected no snapshot from a rejected start")
	}
	if s.State() != before {
		t.Error("Expected the state to stay untouched after a rejected start")
	}
}

func TestStartGame_DrawsWithoutAdvancing(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)

	first := s.deck.Current()
	snap, err := s.StartGame()
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	if snap.CurrentWord.ID != first.ID {
		t.Errorf("Expected the first word of the session to equal the deck head, got %d want %d", snap.CurrentWord.ID, first.ID)
	}
	if s.deck.Current().ID != first.ID {
		t.Error("Expected start_game to leave the cursor in place")
	}
}

func TestNextTurn_RoundRobinR2B1(t *testing.T) {
	s := newTestSession(10, 60)
	joinTeams(s)
	snap, err := s.StartGame()
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	if snap.ActivePlayer == nil || snap.ActivePlayer.ID != "a" {
		t.Fatalf("Expected red's first player to open, got %+v", snap.ActivePlayer)
	}

	// Red has a and b, blue has only c: turns alternate red/blue, blue
	// always fields c while red alternates a and b.
	want := []struct {
		id   string
		team models.Team
	}{
		{"c", models.TeamBlue},
		{"b", models.TeamRed},
		{"c", models.TeamBlue},
		{"a", models.TeamRed},
		{"c", models.TeamBlue},
		{"b", models.TeamRed},
	}
	for i, expect := range want {
		snap, err = s.NextTurn()
		if err != nil {
			t.Fatalf("NextTurn %d failed: %v", i, err)
		}
		if snap.ActivePlayer.ID != expect.id {
			t.Errorf("Turn %d: expected active player %s, got %s", i, expect.id, snap.ActivePlayer.ID)
		}
		if snap.LastTeam != expect.team {
			t.Errorf("Turn %d: expected last team %d, got %d", i, expect.team, snap.LastTeam)
		}
	}
}

func TestNextTurn_AdvancesDeck(t *testing.T) {
	s := newTestSession(10, 60)
	joinTeams(s)
	start, err := s.StartGame()
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	snap, err := s.NextTurn()
	if err != nil {
		t.Fatalf("NextTurn failed: %v", err)
	}
	if snap.CurrentWord.ID == start.CurrentWord.ID {
		t.Error("Expected next_turn to reveal a new word")
	}
}

func TestNextTurn_EmptyOpposingTeamRejected(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")
	s.SetTeam("a", models.TeamRed)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	before := s.State()
	_, err := s.NextTurn()

	if err != ErrEmptyTeam {
		t.Fatalf("Expected ErrEmptyTeam, got %v", err)
	}
	if s.State() != before {
		t.Error("Expected the state to stay untouched after a rejected turn")
	}
}

func TestNextTurn_BeforeStartRejected(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")

	if _, err := s.NextTurn(); err != ErrEmptyTeam {
		t.Fatalf("Expected ErrEmptyTeam before start_game, got %v", err)
	}
}

func TestSetTeam_Idempotent(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")

	first := s.SetTeam("a", models.TeamBlue)
	second := s.SetTeam("a", models.TeamBlue)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical snapshots from repeated set_team:\n%+v\n%+v", first, second)
	}
}

func TestSetTeam_UnknownClientIsNoop(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")

	before := s.State()
	snap := s.SetTeam("ghost", models.TeamRed)

	if !reflect.DeepEqual(before, snap) {
		t.Error("Expected set_team on an unknown client to change nothing")
	}
}

func TestSetTeam_InvalidValueMeansNone(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")
	s.SetTeam("a", models.TeamRed)

	snap := s.SetTeam("a", models.Team(9))
	if snap.Clients[0].Team != models.TeamNone {
		t.Errorf("Expected an out-of-range team to normalize to none, got %d", snap.Clients[0].Team)
	}
}

func TestScore_Accumulates(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")

	s.Score("a", 5)
	snap := s.Score("a", -2)

	if snap.Clients[0].Score != 3 {
		t.Errorf("Expected a net score of 3, got %d", snap.Clients[0].Score)
	}
}

func TestScore_AdvancesWord(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	start, err := s.StartGame()
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	snap := s.Score("a", 1)
	if snap.CurrentWord.ID == start.CurrentWord.ID {
		t.Error("Expected scoring to reveal the next word")
	}
	if snap.ActivePlayer.ID != start.ActivePlayer.ID {
		t.Error("Expected scoring to keep the active player")
	}
}

func TestScore_UnknownClientIsNoop(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	before := s.State()
	snap := s.Score("ghost", 5)

	if snap != before {
		t.Error("Expected score on an unknown client to change nothing")
	}
	if snap.CurrentWord.ID != before.CurrentWord.ID {
		t.Error("Expected the deck not to advance for an unknown client")
	}
}

func TestTimer_AdminDecrementsFloorZero(t *testing.T) {
	s := newTestSession(5, 1)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	snap := s.Timer("a")
	if snap.Timer != 0 {
		t.Errorf("Expected timer 0 after one tick, got %d", snap.Timer)
	}
	snap = s.Timer("a")
	if snap.Timer != 0 {
		t.Errorf("Expected the timer to floor at 0, got %d", snap.Timer)
	}
}

func TestTimer_NonAdminIsNoop(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	before := s.State()
	snap := s.Timer("b")

	if snap != before {
		t.Error("Expected a non-admin timer call to change nothing")
	}
	if snap.Timer != 60 {
		t.Errorf("Expected the timer to stay at 60, got %d", snap.Timer)
	}
}

func TestTimer_NoopAfterAdminLeaves(t *testing.T) {
	s := newTestSession(5, 60)
	joinTeams(s)
	if _, err := s.StartGame(); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	// The admin leaving does not reassign admin_id; the countdown is
	// adminless from here on.
	snap := s.Disconnect("a")
	if snap.AdminID != "a" {
		t.Fatalf("Expected admin_id to keep pointing at the departed admin, got %q", snap.AdminID)
	}

	before := s.State()
	if got := s.Timer("b"); got != before {
		t.Error("Expected timer calls to stay no-ops once the admin left")
	}
	if got := s.Timer("c"); got != before {
		t.Error("Expected timer calls to stay no-ops once the admin left")
	}
}

func TestDisconnect_RemovesClient(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")
	s.Connect("b", "bob")

	snap := s.Disconnect("a")

	if len(snap.Clients) != 1 || snap.Clients[0].ID != "b" {
		t.Errorf("Expected only b to remain, got %+v", snap.Clients)
	}
}

func TestDisconnect_UnknownClientIsNoop(t *testing.T) {
	s := newTestSession(5, 60)
	s.Connect("a", "alice")

	before := s.State()
	if got := s.Disconnect("ghost"); got != before {
		t.Error("Expected disconnecting an unknown client to change nothing")
	}
}
