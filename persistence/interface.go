// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/tabuparty/gameserver/models"
)

// WordStore is the word bank: the flat catalog of words and taboo lists
// that seeds every room's deck. List is read once per room creation;
// Create and Delete serve the inventory API.
type WordStore interface {
	Create(word string, taboos []string) (models.Word, error)
	List() ([]models.Word, error)
	Delete(id int) error
	Close() error
}

// Domain rejections, distinct from store failures. The wording is part
// of the API response contract.
var (
	ErrDuplicateWord = errors.New("this word is already exist")
	ErrWordNotFound  = errors.New("this word is not exist")
)

// IsRejection reports whether an error is a domain rejection rather
// than a store failure, deciding 400 versus 500 at the API edge.
func IsRejection(err error) bool {
	return errors.Is(err, ErrDuplicateWord) || errors.Is(err, ErrWordNotFound)
}

// nextID assigns max existing id + 1, or 1 for an empty catalog.
func nextID(words []models.Word) int {
	max := 0
	for _, w := range words {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1
}
