package rtad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rileyhilliard/rtad/internal/errors"
)

const (
	stateDirName  = "rtad"
	stateFileName = "state.json"
)

// DefaultStatePath returns $XDG_STATE_HOME/rtad/state.json, falling back to
// ~/.local/state/rtad/state.json.
func DefaultStatePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, stateDirName, stateFileName), nil
}

// StateStore is durable client storage for sort state: a JSON object keyed
// by table state key (lastbTableSortState, proxyTableSortState).
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a store backed by the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the backing file.
func (s *StateStore) Path() string { return s.path }

// Load returns the sort state stored under key, or nil if none is stored.
// A stored value that is not a valid sort state is reported as an ErrState
// error; callers treat the table as unsorted.
func (s *StateStore) Load(key string) (*SortState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read()
	if err != nil {
		return nil, err
	}
	msg, ok := raw[key]
	if !ok {
		return nil, nil
	}

	var st SortState
	if err := json.Unmarshal(msg, &st); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrState,
			fmt.Sprintf("Stored sort state %s is malformed", key),
			"Run 'rtad state reset' to clear it")
	}
	if !st.Direction.Valid() || st.Column < 0 {
		return nil, errors.New(errors.ErrState,
			fmt.Sprintf("Stored sort state %s is invalid (%s)", key, string(msg)),
			"Run 'rtad state reset' to clear it")
	}
	return &st, nil
}

// Save stores st under key.
func (s *StateStore) Save(key string, st SortState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readForWrite()
	if err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	raw[key] = data
	return s.write(raw)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *StateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := raw[key]; !ok {
		return nil
	}
	delete(raw, key)
	return s.write(raw)
}

// Clear removes every stored key.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrState,
			"Cannot remove state file "+s.path,
			"Check permissions on the state directory")
	}
	return nil
}

// All returns every stored entry as raw JSON, valid or not.
func (s *StateStore) All() (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// read returns the stored object; a missing file is an empty object.
func (s *StateStore) read() (map[string]json.RawMessage, error) {
	raw, _, err := s.decode()
	return raw, err
}

// decode loads the state file. corrupt is true when the file exists but is
// not a JSON object.
func (s *StateStore) decode() (raw map[string]json.RawMessage, corrupt bool, err error) {
	raw = make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, false, nil
		}
		return nil, false, errors.WrapWithCode(err, errors.ErrState,
			"Cannot read state file "+s.path,
			"Check permissions on the state directory")
	}
	if len(data) == 0 {
		return raw, false, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, true, errors.WrapWithCode(err, errors.ErrState,
			"State file "+s.path+" is corrupt",
			"Run 'rtad state reset' to start fresh")
	}
	return raw, false, nil
}

// readForWrite is read, except a corrupt file is replaced rather than
// blocking every later save.
func (s *StateStore) readForWrite() (map[string]json.RawMessage, error) {
	raw, corrupt, err := s.decode()
	if corrupt {
		return make(map[string]json.RawMessage), nil
	}
	return raw, err
}

// write replaces the state file atomically.
func (s *StateStore) write(raw map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrState,
			"Cannot create state directory "+dir,
			"Check permissions or set state.path in your .rtad.yaml")
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, stateFileName+".*")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrState,
			"Cannot write state file "+s.path,
			"Check permissions on the state directory")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrState, "Cannot write state file "+s.path, "")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrState, "Cannot write state file "+s.path, "")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrState, "Cannot replace state file "+s.path, "")
	}
	return nil
}
