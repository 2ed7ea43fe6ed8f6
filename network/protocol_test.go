package network

import (
	"testing"

	"github.com/tabuparty/gameserver/models"
)

func TestParseEnvelope_Connect(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"action":"connect","client_id":"a","username":"alice"}`))
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if env.Action != ActionConnect || env.ClientID != "a" || env.Username != "alice" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestParseEnvelope_SetTeamCarriesTeam(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"action":"set_team","client_id":"a","team":2}`))
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if env.Team != models.TeamBlue {
		t.Errorf("Expected team blue, got %d", env.Team)
	}
}

func TestParseEnvelope_ScoreCarriesSignedScore(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"action":"score","client_id":"a","score":-2}`))
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if env.Score != -2 {
		t.Errorf("Expected score -2, got %d", env.Score)
	}
}

func TestParseEnvelope_MissingAction(t *testing.T) {
	if _, err := ParseEnvelope([]byte(`{"client_id":"a"}`)); err != ErrMissingAction {
		t.Errorf("Expected ErrMissingAction, got %v", err)
	}
}

func TestParseEnvelope_ConnectWithoutUsername(t *testing.T) {
	if _, err := ParseEnvelope([]byte(`{"action":"connect","client_id":"a"}`)); err != ErrMissingField {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestParseEnvelope_TimerWithoutClient(t *testing.T) {
	if _, err := ParseEnvelope([]byte(`{"action":"timer"}`)); err != ErrMissingField {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestParseEnvelope_MalformedJSON(t *testing.T) {
	if _, err := ParseEnvelope([]byte(`{"action":`)); err == nil {
		t.Error("Expected a decode error for malformed JSON")
	}
}

func TestParseEnvelope_UnknownActionIsAccepted(t *testing.T) {
	// Unknown actions are a dispatcher concern, not a protocol error.
	env, err := ParseEnvelope([]byte(`{"action":"dance"}`))
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if env.Action != "dance" {
		t.Errorf("Expected the action to pass through, got %q", env.Action)
	}
}
