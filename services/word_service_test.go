package services

import (
	"path/filepath"
	"testing"

	"github.com/tabuparty/gameserver/models"
	"github.com/tabuparty/gameserver/persistence"
)

func newTestService(t *testing.T) *WordService {
	t.Helper()
	store, err := persistence.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return NewWordService(store)
}

func TestWordService_CreateEnvelope(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Create("apple", []string{"fruit"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !result.Success || result.Message != "ok" {
		t.Errorf("Expected a success envelope, got %+v", result)
	}
}

func TestWordService_DuplicateEnvelope(t *testing.T) {
	svc := newTestService(t)
	svc.Create("apple", nil)

	result, err := svc.Create("apple", nil)
	if err != persistence.ErrDuplicateWord {
		t.Fatalf("Expected ErrDuplicateWord, got %v", err)
	}
	if result.Success {
		t.Error("Expected a failure envelope for a duplicate word")
	}
	if result.Message != "this word is already exist" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
}

func TestWordService_ListReturnsCatalog(t *testing.T) {
	svc := newTestService(t)
	svc.Create("apple", []string{"fruit"})
	svc.Create("river", []string{"water"})

	result, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	words, ok := result.Data.([]models.Word)
	if !ok {
		t.Fatalf("Expected the catalog in the data field, got %T", result.Data)
	}
	if len(words) != 2 {
		t.Errorf("Expected 2 words, got %d", len(words))
	}
}

func TestWordService_DeleteUnknown(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Delete(99)
	if err != persistence.ErrWordNotFound {
		t.Fatalf("Expected ErrWordNotFound, got %v", err)
	}
	if result.Success {
		t.Error("Expected a failure envelope for an unknown id")
	}
	if result.Message != "this word is not exist" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
}
