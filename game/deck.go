package game

import (
	"math/rand"

	"github.com/tabuparty/gameserver/models"
)

// Deck is a room's shuffled, cyclic view of the word catalog. The
// permutation is fixed when the room is created and never reshuffled,
// so the cursor-to-word mapping is identical for every connection in
// the room. Only the cursor moves, and it wraps past the last word.
type Deck struct {
	words  []models.Word
	cursor int
}

// NewDeck shuffles a copy of the catalog with the given source.
func NewDeck(catalog []models.Word, rng *rand.Rand) *Deck {
	words := make([]models.Word, len(catalog))
	copy(words, catalog)
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return &Deck{words: words}
}

// Current returns the word under the cursor without advancing it.
// A zero Word is returned when the catalog is empty.
func (d *Deck) Current() models.Word {
	if len(d.words) == 0 {
		return models.Word{}
	}
	return d.words[d.cursor]
}

// Advance moves the cursor one position, wrapping to the start of the
// shuffled sequence, and returns the word now under it.
func (d *Deck) Advance() models.Word {
	if len(d.words) == 0 {
		return models.Word{}
	}
	d.cursor = (d.cursor + 1) % len(d.words)
	return d.words[d.cursor]
}

// Size returns the catalog size.
func (d *Deck) Size() int {
	return len(d.words)
}
