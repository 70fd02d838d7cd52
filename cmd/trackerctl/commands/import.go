package commands

import (
	"io"
	"os"

	"github.com/mysoltrk/mysoltrk-go/internal/codegen"
	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// RunImport reads a firmware configuration header and prints it as a YAML
// profile document, ready to be passed with -config.
func RunImport(path, name, description string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := codegen.ParseHeader(name, f)
	if err != nil {
		return err
	}
	p.Description = description

	data, err := board.MarshalYAML([]board.Profile{p})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
