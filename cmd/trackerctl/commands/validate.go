package commands

import (
	"fmt"
	"io"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// RunValidate checks a YAML profile file, including name clashes with the
// built-in and catalog profiles, and lists the profiles it defines.
func RunValidate(path string, w io.Writer) error {
	profiles, err := board.LoadFile(path)
	if err != nil {
		return err
	}

	reg, err := board.Catalog()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if err := reg.Register(p); err != nil {
			return err
		}
	}

	for _, p := range profiles {
		fmt.Fprintf(w, "ok  %-28s %.16s\n", p.Name, board.Fingerprint(p))
	}
	fmt.Fprintf(w, "%d profile(s) valid\n", len(profiles))
	return nil
}
