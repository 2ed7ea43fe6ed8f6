// room/room.go
package room

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/tabuparty/gameserver/game"
	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/models"
	"github.com/tabuparty/gameserver/network"
	"github.com/tabuparty/gameserver/session"
)

// Room owns the authoritative state of one game. The mutex is the
// room's gate: every transition, every broadcast and the disconnect
// cleanup run under it, so actions on one room are linearizable while
// different rooms proceed fully in parallel.
type Room struct {
	ID string

	mu          sync.Mutex
	session     *game.Session
	sessions    []*session.Session // join order, which is also broadcast order
	closed      bool
	broadcaster Broadcaster
}

// NewRoom creates a room around an already shuffled deck. The deck is
// shuffled exactly once here and shared by every connection, so the
// cursor-to-word mapping is consistent room-wide.
func NewRoom(id string, gameSession *game.Session, broadcaster Broadcaster) *Room {
	return &Room{
		ID:          id,
		session:     gameSession,
		broadcaster: broadcaster,
	}
}

// State returns the current snapshot.
func (r *Room) State() *models.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.State()
}

// HandleAction runs one transition and broadcasts the result. Rejected
// transitions are reported to the offending session only; the snapshot
// stays unchanged and the room stays quiet.
func (r *Room) HandleAction(sess *session.Session, env *network.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	var (
		snap *models.RoomState
		err  error
	)
	switch env.Action {
	case network.ActionGetData:
		snap = r.session.State()
	case network.ActionConnect:
		snap = r.session.Connect(env.ClientID, env.Username)
	case network.ActionSetTeam:
		snap = r.session.SetTeam(env.ClientID, env.Team)
	case network.ActionStartGame:
		snap, err = r.session.StartGame()
	case network.ActionEndGame:
		snap = r.session.EndGame()
	case network.ActionScore:
		snap = r.session.Score(env.ClientID, env.Score)
	case network.ActionNextTurn:
		snap, err = r.session.NextTurn()
	case network.ActionTimer:
		snap = r.session.Timer(env.ClientID)
	default:
		logger.Log.Debugf("Room %s: ignoring unknown action %q", r.ID, env.Action)
		snap = r.session.State()
	}

	if err != nil {
		logger.Log.Infof("Room %s: rejected %s from session %s: %v", r.ID, env.Action, sess.GetID(), err)
		r.sendErrorLocked(sess, err)
		return
	}
	r.broadcastLocked(snap)
}

func (r *Room) sendErrorLocked(sess *session.Session, cause error) {
	data, err := json.Marshal(network.ErrorResult{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := sess.Send(data); err != nil {
		logger.Log.Warnf("Room %s: failed to deliver rejection to session %s: %v", r.ID, sess.GetID(), err)
	}
}

// broadcastLocked sends the snapshot to every session in join order.
// A failed send is an implicit disconnect: the session is dropped, its
// client leaves the roster and the survivors get the post-removal
// snapshot. Runs under the gate.
func (r *Room) broadcastLocked(snap *models.RoomState) {
	for {
		data, err := json.Marshal(snap)
		if err != nil {
			logger.Log.Errorf("Room %s: failed to marshal snapshot: %v", r.ID, err)
			return
		}

		failed := r.broadcaster.Broadcast(r.sessions, data)
		if len(failed) == 0 {
			return
		}

		for _, sess := range failed {
			logger.Log.Warnf("Room %s: dropping session %s after failed send", r.ID, sess.GetID())
			r.dropSessionLocked(sess)
			_ = sess.Close()
			snap = r.session.Disconnect(sess.ClientID())
		}
		if len(r.sessions) == 0 {
			r.closed = true
			return
		}
	}
}

func (r *Room) dropSessionLocked(sess *session.Session) bool {
	for i := range r.sessions {
		if r.sessions[i] == sess {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// addSession registers a connection. Returns false when the room lost a
// race with its own destruction; the caller retries against a fresh room.
func (r *Room) addSession(sess *session.Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.sessions = append(r.sessions, sess)
	return true
}

// removeSession is the disconnect path: drop the connection, remove its
// client from the roster and tell the survivors. Reports whether the
// room emptied and should leave the registry.
func (r *Room) removeSession(sess *session.Session) (destroyed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return true
	}

	if !r.dropSessionLocked(sess) {
		// Already dropped by a failed broadcast.
		return len(r.sessions) == 0
	}

	snap := r.session.Disconnect(sess.ClientID())
	if len(r.sessions) == 0 {
		r.closed = true
		return true
	}
	r.broadcastLocked(snap)
	return r.closed
}

// ConnectionCount reports the number of live connections.
func (r *Room) ConnectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// --- Registry ---

// WordCatalog is the read-only collaborator that seeds each room's deck.
type WordCatalog interface {
	List() ([]models.Word, error)
}

// Manager owns the room table. Rooms are created lazily on first join
// and destroyed when their last connection leaves.
type Manager struct {
	rooms       map[string]*Room
	mutex       sync.RWMutex
	catalog     WordCatalog
	broadcaster Broadcaster
	turnSeconds int
}

func NewManager(catalog WordCatalog, broadcaster Broadcaster, turnSeconds int) *Manager {
	return &Manager{
		rooms:       make(map[string]*Room),
		catalog:     catalog,
		broadcaster: broadcaster,
		turnSeconds: turnSeconds,
	}
}

// Join registers a connection with a room, creating the room on first
// join. Repeated joins by different connections are fine.
func (m *Manager) Join(roomID string, sess *session.Session) *Room {
	for {
		m.mutex.Lock()
		r, exists := m.rooms[roomID]
		if !exists {
			r = m.newRoom(roomID)
			m.rooms[roomID] = r
		}
		m.mutex.Unlock()

		if r.addSession(sess) {
			sess.RoomID = roomID
			return r
		}
		// The room was destroyed between lookup and join; go again.
	}
}

// Leave runs the disconnect cleanup for one connection and removes the
// room from the table once it has no connections left. The discarded
// state has no durable effect; a later join starts from defaults.
func (m *Manager) Leave(r *Room, sess *session.Session) {
	if r.removeSession(sess) {
		m.mutex.Lock()
		if m.rooms[r.ID] == r {
			delete(m.rooms, r.ID)
		}
		m.mutex.Unlock()
		logger.Log.Infof("Room %s destroyed", r.ID)
	}
}

func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	r, exists := m.rooms[roomID]
	return r, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

func (m *Manager) newRoom(roomID string) *Room {
	catalog, err := m.catalog.List()
	if err != nil {
		// A room without words still runs; the current word stays zero.
		logger.Log.Warnf("Room %s: word catalog unavailable, starting with an empty deck: %v", roomID, err)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	deck := game.NewDeck(catalog, rng)
	logger.Log.Infof("Room %s created, deck of %d words", roomID, deck.Size())
	return NewRoom(roomID, game.NewSession(deck, m.turnSeconds), m.broadcaster)
}
