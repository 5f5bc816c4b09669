package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
)

func TestCursorStoreMissingFileIsNone(t *testing.T) {
	store := NewCursorStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if got := store.Load(); got.Kind != job.CursorNone {
		t.Errorf("missing file should load as None, got %v", got)
	}
}

func TestCursorStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewCursorStore(filepath.Join(t.TempDir(), "cursor.json"))

	want := job.BlockCursor(12345)
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := store.Load()
	if got != want {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestCursorStoreOverwritesPreviousValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.json")
	store := NewCursorStore(path)

	if err := store.Save(job.BlockCursor(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(job.TransactionCursor("sig-2")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := store.Load()
	want := job.TransactionCursor("sig-2")
	if got != want {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestCursorStoreCorruptFileIsNone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cursor.json")
	store := NewCursorStore(path)

	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := store.Load(); got.Kind != job.CursorNone {
		t.Errorf("corrupt file should load as None, got %v", got)
	}
}
