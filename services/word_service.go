package services

import (
	"github.com/tabuparty/gameserver/persistence"
)

// Result is the envelope every word bank operation answers with.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// WordService wraps a WordStore for the HTTP and RPC edges. The
// returned error is the raw store error so callers can map rejections
// and failures to their own status codes.
type WordService struct {
	store persistence.WordStore
}

func NewWordService(store persistence.WordStore) *WordService {
	return &WordService{store: store}
}

func (s *WordService) Create(word string, taboos []string) (Result, error) {
	if taboos == nil {
		// The SQL backends store taboos in a NOT NULL array column.
		taboos = []string{}
	}
	if _, err := s.store.Create(word, taboos); err != nil {
		return failure(err), err
	}
	return ok(map[string]interface{}{}), nil
}

func (s *WordService) List() (Result, error) {
	words, err := s.store.List()
	if err != nil {
		return failure(err), err
	}
	return ok(words), nil
}

func (s *WordService) Delete(id int) (Result, error) {
	if err := s.store.Delete(id); err != nil {
		return failure(err), err
	}
	return ok(map[string]interface{}{}), nil
}

func ok(data interface{}) Result {
	return Result{Success: true, Message: "ok", Data: data}
}

func failure(err error) Result {
	return Result{Success: false, Message: err.Error(), Data: map[string]interface{}{}}
}
