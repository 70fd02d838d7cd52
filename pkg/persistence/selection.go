package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// SelectionVersion is the current version of the selection file format.
const SelectionVersion = 1

var (
	// ErrFingerprintMismatch is returned by Verify when the profile's pins or
	// limits changed since it was selected.
	ErrFingerprintMismatch = errors.New("profile fingerprint mismatch")

	// ErrProfileMismatch is returned by Verify when the selection names a
	// different profile.
	ErrProfileMismatch = errors.New("profile name mismatch")

	// ErrUnsupportedVersion is returned by Load for files written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported selection version")
)

// Selection is the persisted board profile choice.
type Selection struct {
	// Version is the selection file format version.
	Version int `json:"version"`

	// SavedAt is when the selection was saved.
	SavedAt time.Time `json:"saved_at"`

	// Profile is the selected board profile name.
	Profile string `json:"profile"`

	// Target is the firmware target of the profile, informational only.
	Target string `json:"target,omitempty"`

	// Fingerprint is board.Fingerprint of the profile at selection time.
	Fingerprint string `json:"fingerprint"`
}

// NewSelection captures the current identity of p.
func NewSelection(p board.Profile) *Selection {
	return &Selection{
		Profile:     p.Name,
		Target:      p.Target,
		Fingerprint: board.Fingerprint(p),
	}
}

// Verify checks that p is the profile sel was taken from and that its pins
// and limits have not changed since.
func Verify(sel Selection, p board.Profile) error {
	if sel.Profile != p.Name {
		return fmt.Errorf("%w: selected %q, got %q", ErrProfileMismatch, sel.Profile, p.Name)
	}
	if fp := board.Fingerprint(p); fp != sel.Fingerprint {
		return fmt.Errorf("%w: %s: stored %.12s, current %.12s", ErrFingerprintMismatch, p.Name, sel.Fingerprint, fp)
	}
	return nil
}

// SelectionStore manages persistence of a Selection to a JSON file.
type SelectionStore struct {
	mu   sync.Mutex
	path string
}

// NewSelectionStore creates a store backed by path.
func NewSelectionStore(path string) *SelectionStore {
	return &SelectionStore{path: path}
}

// Path returns the file the store writes to.
func (s *SelectionStore) Path() string {
	return s.path
}

// Save writes sel to disk, creating the parent directory when needed.
// Version is always set to SelectionVersion; SavedAt defaults to now.
func (s *SelectionStore) Save(sel *Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	sel.Version = SelectionVersion
	if sel.SavedAt.IsZero() {
		sel.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a power cut never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the selection from disk.
// Returns nil, nil if no selection has been saved.
func (s *SelectionStore) Load() (*Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sel := &Selection{}
	if err := json.Unmarshal(data, sel); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if sel.Version > SelectionVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, sel.Version)
	}
	return sel, nil
}

// Clear removes the selection file. A missing file is not an error.
func (s *SelectionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
