package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tabuparty/gameserver/broadcast"
	"github.com/tabuparty/gameserver/config"
	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/monitor"
	"github.com/tabuparty/gameserver/network"
	"github.com/tabuparty/gameserver/persistence"
	"github.com/tabuparty/gameserver/room"
	gameserver_rpc "github.com/tabuparty/gameserver/rpc"
	"github.com/tabuparty/gameserver/services"
	"github.com/tabuparty/gameserver/session"
	"github.com/tabuparty/gameserver/timer"
)

type GameServer struct {
	addr           string
	metricsAddr    string
	idleTimeout    time.Duration
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	wordService    *services.WordService
	rpcServer      *gameserver_rpc.Server
	monitor        *monitor.Monitor
	timers         *timer.Manager
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.WordStore) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		metricsAddr:    cfg.Server.MetricsAddress,
		idleTimeout:    cfg.Game.SessionIdleTimeout,
		sessionManager: session.NewManager(),
		wordService:    services.NewWordService(store),
		monitor:        monitor.NewMonitor("tabuparty"),
		timers:         timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // the game has no origin restrictions
			},
		},
	}

	s.roomManager = room.NewManager(store, broadcast.NewRoomBroadcaster(), cfg.Game.TurnSeconds)

	rpcServer, err := gameserver_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(gameserver_rpc.NewWordBankService(s.wordService))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.metricsAddr)

	if s.idleTimeout > 0 {
		s.timers.Add(s.idleTimeout, s.idleTimeout, s.sweepIdleSessions)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{room_id}/{client_id}", s.handleWebSocket)
	mux.HandleFunc("POST /_/word/{$}", s.handleCreateWord)
	mux.HandleFunc("GET /_/word/{$}", s.handleListWords)
	mux.HandleFunc("DELETE /_/word/{word_id}/{$}", s.handleDeleteWord)

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room_id")
	pathClientID := r.PathValue("client_id")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn), roomID, pathClientID)
}

func (s *GameServer) handleConnection(wsConn *network.WSConnection, roomID, pathClientID string) {
	sess := session.NewSession(uuid.New().String(), wsConn)
	// The path identity is advisory; message client_id fields override it.
	sess.SetClientID(pathClientID)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	rm := s.roomManager.Join(roomID, sess)
	s.monitor.SetActiveRooms(s.roomManager.Count())

	logger.Log.Infof("New connection from %s, session %s, room %s", wsConn.RemoteAddr(), sess.GetID(), roomID)

	defer func() {
		logger.Log.Infof("Connection closed from %s, session %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		s.roomManager.Leave(rm, sess)
		s.monitor.SetActiveRooms(s.roomManager.Count())
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := wsConn.ReadEnvelope()
			if err != nil {
				// Either the peer went away or it spoke garbage; both
				// abort the connection without a broadcast.
				logger.Log.Infof("Session %s read ended: %v", sess.GetID(), err)
				return
			}
			s.handleEnvelope(rm, sess, env)
		}
	}
}

func (s *GameServer) handleEnvelope(rm *room.Room, sess *session.Session, env *network.Envelope) {
	sess.Touch()
	// Only a connect rebinds the session's identity; actions like score
	// name other clients without speaking for them.
	if env.Action == network.ActionConnect {
		sess.SetClientID(env.ClientID)
	}

	s.monitor.IncActionsReceived()
	start := time.Now()
	rm.HandleAction(sess, env)
	s.monitor.ObserveBroadcastLatency(time.Since(start))
}

// sweepIdleSessions closes connections with no inbound traffic for the
// configured timeout. The close fails their read loop, which runs the
// ordinary disconnect cleanup.
func (s *GameServer) sweepIdleSessions() {
	cutoff := time.Now().Add(-s.idleTimeout)
	for _, sess := range s.sessionManager.IdleSince(cutoff) {
		logger.Log.Infof("Closing idle session %s (last active %s)", sess.GetID(), sess.LastActive().Format(time.RFC3339))
		_ = sess.Close()
	}
}
