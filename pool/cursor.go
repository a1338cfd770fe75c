package pool

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/luxfi/sui-arb/model"
)

// CursorStore persists, per protocol, the last processed event cursor
// so a restart resumes backfill without reprocessing (spec.md §4.A). It
// is backed by a single JSON file: {protocol: event_id | null}, matching
// the wire format in spec.md §6.
type CursorStore struct {
	path string
	mu   sync.Mutex
}

// NewCursorStore opens (without yet reading) the cursor file at path.
func NewCursorStore(path string) *CursorStore {
	return &CursorStore{path: path}
}

// Load returns the persisted cursor map, or an empty map if the file
// does not yet exist.
func (s *CursorStore) Load() (map[model.Protocol]*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[model.Protocol]*string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make(map[model.Protocol]*string, len(raw))
	for k, v := range raw {
		out[model.Protocol(k)] = v
	}
	return out, nil
}

// Save persists cursor. A persistence failure here is Fatal per spec.md
// §4.A/§7: the caller is expected to abort the owning protocol's
// backfill task on error.
func (s *CursorStore) Save(protocol model.Protocol, cursor *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadLocked()
	if err != nil {
		return err
	}
	all[string(protocol)] = cursor
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *CursorStore) loadLocked() (map[string]*string, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]*string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
