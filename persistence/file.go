// persistence/file.go
package persistence

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/tabuparty/gameserver/models"
)

// FileStore keeps the catalog in one JSON file, rewritten whole on every
// change. It is the default backend and needs no external services.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore opens or creates the catalog file.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save([]models.Word{}); err != nil {
			return nil, err
		}
	}
	// Fail fast on an unreadable or corrupt file.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Create(word string, taboos []string) (models.Word, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	words, err := s.load()
	if err != nil {
		return models.Word{}, err
	}
	for _, w := range words {
		if w.Word == word {
			return models.Word{}, ErrDuplicateWord
		}
	}

	entry := models.Word{
		ID:     nextID(words),
		Word:   word,
		Taboos: taboos,
	}
	words = append(words, entry)
	if err := s.save(words); err != nil {
		return models.Word{}, err
	}
	return entry, nil
}

func (s *FileStore) List() ([]models.Word, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.load()
}

func (s *FileStore) Delete(id int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	words, err := s.load()
	if err != nil {
		return err
	}
	kept := words[:0]
	for _, w := range words {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(words) {
		return ErrWordNotFound
	}
	return s.save(kept)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() ([]models.Word, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	words := []models.Word{}
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *FileStore) save(words []models.Word) error {
	data, err := json.MarshalIndent(words, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
