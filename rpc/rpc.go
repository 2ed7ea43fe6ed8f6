package rpc

import (
	"encoding/gob"
	"net"
	"net/rpc"

	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/models"
	"github.com/tabuparty/gameserver/services"
)

func init() {
	// The Result envelope carries interface{} data; gob needs to know
	// the concrete types crossing the wire.
	gob.Register(map[string]interface{}{})
	gob.Register([]models.Word{})
}

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller through the net/rpc package.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// WordBankService exposes the word inventory over net/rpc, for tooling
// that manages the catalog without going through HTTP.
type WordBankService struct {
	words *services.WordService
}

func NewWordBankService(words *services.WordService) *WordBankService {
	return &WordBankService{words: words}
}

type CreateWordArgs struct {
	Word   string
	Taboos []string
}

type DeleteWordArgs struct {
	ID int
}

type ListWordsArgs struct{}

// WordReply carries the same result envelope as the HTTP API.
type WordReply struct {
	Result services.Result
}

func (ws *WordBankService) CreateWord(args *CreateWordArgs, reply *WordReply) error {
	result, err := ws.words.Create(args.Word, args.Taboos)
	reply.Result = result
	if err != nil {
		return err
	}
	return nil
}

func (ws *WordBankService) ListWords(args *ListWordsArgs, reply *WordReply) error {
	result, err := ws.words.List()
	reply.Result = result
	if err != nil {
		return err
	}
	return nil
}

func (ws *WordBankService) DeleteWord(args *DeleteWordArgs, reply *WordReply) error {
	result, err := ws.words.Delete(args.ID)
	reply.Result = result
	if err != nil {
		return err
	}
	return nil
}
