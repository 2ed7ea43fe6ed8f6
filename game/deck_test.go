package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/tabuparty/gameserver/models"
)

func testCatalog(n int) []models.Word {
	catalog := make([]models.Word, 0, n)
	for i := 1; i <= n; i++ {
		catalog = append(catalog, models.Word{
			ID:     i,
			Word:   fmt.Sprintf("word%d", i),
			Taboos: []string{"taboo1", "taboo2"},
		})
	}
	return catalog
}

func TestDeck_ShuffleIsPermutation(t *testing.T) {
	deck := NewDeck(testCatalog(10), rand.New(rand.NewSource(1)))

	seen := make(map[int]bool)
	for i := 0; i < deck.Size(); i++ {
		seen[deck.Current().ID] = true
		deck.Advance()
	}

	if len(seen) != 10 {
		t.Errorf("Expected 10 distinct words in one cycle, got %d", len(seen))
	}
}

func TestDeck_CursorWraps(t *testing.T) {
	deck := NewDeck(testCatalog(3), rand.New(rand.NewSource(1)))

	first := deck.Current()
	deck.Advance()
	deck.Advance()
	wrapped := deck.Advance()

	if wrapped.ID != first.ID {
		t.Errorf("Expected the cursor to wrap back to word %d, got %d", first.ID, wrapped.ID)
	}
}

func TestDeck_OrderStableAcrossCycles(t *testing.T) {
	deck := NewDeck(testCatalog(5), rand.New(rand.NewSource(42)))

	var firstCycle, secondCycle []int
	for i := 0; i < deck.Size(); i++ {
		firstCycle = append(firstCycle, deck.Current().ID)
		deck.Advance()
	}
	for i := 0; i < deck.Size(); i++ {
		secondCycle = append(secondCycle, deck.Current().ID)
		deck.Advance()
	}

	for i := range firstCycle {
		if firstCycle[i] != secondCycle[i] {
			t.Fatalf("Shuffle order changed between cycles at position %d: %d vs %d", i, firstCycle[i], secondCycle[i])
		}
	}
}

func TestDeck_SameSeedSameOrder(t *testing.T) {
	a := NewDeck(testCatalog(8), rand.New(rand.NewSource(7)))
	b := NewDeck(testCatalog(8), rand.New(rand.NewSource(7)))

	for i := 0; i < a.Size(); i++ {
		if a.Current().ID != b.Current().ID {
			t.Fatalf("Decks with the same seed diverged at position %d", i)
		}
		a.Advance()
		b.Advance()
	}
}

func TestDeck_EmptyCatalog(t *testing.T) {
	deck := NewDeck(nil, rand.New(rand.NewSource(1)))

	if got := deck.Current(); got.ID != 0 || got.Word != "" {
		t.Errorf("Expected a zero word from an empty deck, got %+v", got)
	}
	if got := deck.Advance(); got.ID != 0 {
		t.Errorf("Expected advancing an empty deck to stay zero, got %+v", got)
	}
}
