package kanban

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists a board as a single JSON document.
//
// The document is read in full and rewritten in full on every mutation
// (write-through). Two sessions writing concurrently follow last-writer-
// wins: the second save silently overwrites the first. That is a known
// limitation of the board, kept as-is.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted board. When no state file exists yet, the
// provided cards are seeded into the first stage and the resulting board
// is returned (but not yet saved).
func (s *Store) Load(initial []Card) (*Board, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		board := NewBoard()
		board.Seed(initial)
		return board, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load kanban state: %w", err)
	}

	board := NewBoard()
	if err := json.Unmarshal(data, board); err != nil {
		return nil, fmt.Errorf("load kanban state: %w", err)
	}
	// Columns added after the file was written must still exist.
	for _, stage := range Stages {
		if board.Columns[stage] == nil {
			board.Columns[stage] = []Card{}
		}
	}
	return board, nil
}

// Save rewrites the full board document. The write goes through a
// temporary file and rename so a crash mid-write cannot truncate the
// previous state.
func (s *Store) Save(board *Board) error {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("save kanban state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save kanban state: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".kanban-*.json")
	if err != nil {
		return fmt.Errorf("save kanban state: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save kanban state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save kanban state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save kanban state: %w", err)
	}
	return nil
}

// AdvanceAndSave moves a card and persists the board before reporting the
// move complete. A failed persist returns the error; in-memory state may
// have moved, so callers should reload on failure.
func (s *Store) AdvanceAndSave(board *Board, cte, nf string) (MoveEvent, error) {
	event, err := board.Advance(cte, nf)
	if err != nil {
		return MoveEvent{}, err
	}
	if err := s.Save(board); err != nil {
		return MoveEvent{}, err
	}
	return event, nil
}

// AdvanceWithAuthAndSave is AdvanceAndSave behind the shared-secret gate.
// On authorization failure nothing moves and nothing is written.
func (s *Store) AdvanceWithAuthAndSave(board *Board, cte, nf, credential, secret string) (MoveEvent, error) {
	event, err := board.AdvanceWithAuth(cte, nf, credential, secret)
	if err != nil {
		return MoveEvent{}, err
	}
	if err := s.Save(board); err != nil {
		return MoveEvent{}, err
	}
	return event, nil
}
