package network

import (
	"encoding/json"
	"errors"

	"github.com/tabuparty/gameserver/models"
)

// Action names understood by the room dispatcher.
const (
	ActionGetData   = "get_data"
	ActionConnect   = "connect"
	ActionSetTeam   = "set_team"
	ActionStartGame = "start_game"
	ActionEndGame   = "end_game"
	ActionScore     = "score"
	ActionNextTurn  = "next_turn"
	ActionTimer     = "timer"
)

// Protocol errors abort the connection without a broadcast.
var (
	ErrMissingAction = errors.New("message has no action")
	ErrMissingField  = errors.New("message is missing a required field")
)

// Envelope is one inbound client message. Only the fields the chosen
// action needs are expected to be set. The client_id inside the message,
// not the connection's path parameter, is the identity game logic acts on.
type Envelope struct {
	Action   string      `json:"action"`
	ClientID string      `json:"client_id"`
	Username string      `json:"username"`
	Team     models.Team `json:"team"`
	Score    int         `json:"score"`
}

// ParseEnvelope decodes and validates one inbound message.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Action == "" {
		return nil, ErrMissingAction
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *Envelope) validate() error {
	switch e.Action {
	case ActionConnect:
		if e.ClientID == "" || e.Username == "" {
			return ErrMissingField
		}
	case ActionSetTeam, ActionScore, ActionTimer:
		if e.ClientID == "" {
			return ErrMissingField
		}
	}
	return nil
}

// ErrorResult is sent only to the connection whose action was rejected.
type ErrorResult struct {
	Error string `json:"error"`
}
