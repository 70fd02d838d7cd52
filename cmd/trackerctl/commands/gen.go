package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/mysoltrk/mysoltrk-go/internal/codegen"
	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// GenOptions configures the gen command.
type GenOptions struct {
	// Format is "go" or "header".
	Format string

	// Profiles to generate. Empty means every registered profile for Go
	// output; header output needs exactly one.
	Profiles []string

	// Package is the Go package name. Defaults to the output directory name.
	Package string

	// Output is the output file. Empty writes to stdout.
	Output string
}

// RunGen generates Go or C header source for registered profiles.
func RunGen(reg *board.Registry, opts GenOptions, stdout io.Writer) error {
	profiles, err := selectProfiles(reg, opts.Profiles)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "go", "":
		if opts.Output != "" {
			return codegen.WriteGo(opts.Output, opts.Package, profiles)
		}
		pkg := opts.Package
		if pkg == "" {
			pkg = "profiles"
		}
		src, err := codegen.GenerateGo(pkg, profiles)
		if err != nil {
			return err
		}
		_, err = stdout.Write(src)
		return err

	case "header":
		if len(profiles) != 1 {
			return fmt.Errorf("header output needs exactly one profile, got %d", len(profiles))
		}
		src, err := codegen.GenerateHeader(profiles[0])
		if err != nil {
			return err
		}
		if opts.Output != "" {
			return os.WriteFile(opts.Output, src, 0o644)
		}
		_, err = stdout.Write(src)
		return err

	default:
		return fmt.Errorf("unknown format: %s (supported: go, header)", opts.Format)
	}
}

func selectProfiles(reg *board.Registry, names []string) ([]board.Profile, error) {
	if len(names) == 0 {
		return reg.Profiles(), nil
	}
	profiles := make([]board.Profile, 0, len(names))
	for _, name := range names {
		p, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
