package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/persistence"
)

// ErrNoSelection is returned by RunCurrent when no profile was selected.
var ErrNoSelection = errors.New("no profile selected")

// RunSelect records name as the active profile in the state file.
func RunSelect(reg *board.Registry, name, statePath string, w io.Writer) error {
	p, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	store := persistence.NewSelectionStore(statePath)
	sel := persistence.NewSelection(p)
	if err := store.Save(sel); err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}
	slog.Debug("selection saved", "path", statePath, "profile", p.Name)

	fmt.Fprintf(w, "selected %s (%.16s)\n", sel.Profile, sel.Fingerprint)
	return nil
}

// RunCurrent prints the selected profile and verifies that its pins and
// limits still match what was selected.
func RunCurrent(reg *board.Registry, statePath string, w io.Writer) error {
	store := persistence.NewSelectionStore(statePath)
	sel, err := store.Load()
	if err != nil {
		return err
	}
	if sel == nil {
		return fmt.Errorf("%w (state file %s)", ErrNoSelection, statePath)
	}

	fmt.Fprintf(w, "%s selected at %s\n", sel.Profile, sel.SavedAt.Format("2006-01-02 15:04:05"))

	p, err := reg.Lookup(sel.Profile)
	if err != nil {
		return err
	}
	if err := persistence.Verify(*sel, p); err != nil {
		return err
	}
	fmt.Fprintf(w, "fingerprint ok (%.16s)\n", sel.Fingerprint)
	return nil
}

// RunClear forgets the selected profile.
func RunClear(statePath string) error {
	return persistence.NewSelectionStore(statePath).Clear()
}
