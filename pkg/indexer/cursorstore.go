package indexer

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
)

// persistedState is the on-disk shape of the state file (§6):
// {"cursor": {"<tag>": <value>}}.
type persistedState struct {
	Cursor job.Cursor `json:"cursor"`
}

// CursorStore persists one network's cursor to a JSON file. Writes are
// atomic (temp file + rename) so a crash mid-write never corrupts the file
// an in-flight read might see; pkg/database's persistence goes through
// Postgres and has no file-based analogue to imitate here.
type CursorStore struct {
	path string
}

func NewCursorStore(path string) *CursorStore {
	return &CursorStore{path: path}
}

// Load reads the persisted cursor. A missing or corrupt file is equivalent
// to None (§4.4) rather than an error — handle_init in logic.rs treats a
// fresh deployment and a wiped state file identically.
func (s *CursorStore) Load() job.Cursor {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Printf("⚠️ cannot read state file %s, starting from None: %v", s.path, err)
		return job.NoneCursor()
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("⚠️ state file %s is malformed, starting from None: %v", s.path, err)
		return job.NoneCursor()
	}
	return state.Cursor
}

// Save atomically overwrites the state file with cursor.
func (s *CursorStore) Save(cursor job.Cursor) error {
	data, err := json.Marshal(persistedState{Cursor: cursor})
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".cursor-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}
