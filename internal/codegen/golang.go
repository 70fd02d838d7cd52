package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

var (
	// ErrNoProfiles is returned when there is nothing to generate.
	ErrNoProfiles = errors.New("no profiles to generate")

	// ErrInvalidPackage is returned for a package name that is not a Go identifier.
	ErrInvalidPackage = errors.New("invalid package name")
)

type goFileData struct {
	Package  string
	Profiles []board.Profile
}

// GenerateGo returns a formatted Go source file for package pkg declaring a
// Profiles function that rebuilds profiles.
func GenerateGo(pkg string, profiles []board.Profile) ([]byte, error) {
	code, err := renderGo(pkg, profiles)
	if err != nil {
		return nil, err
	}
	formatted, err := imports.Process(pkg+"_profiles.go", []byte(code), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports: %w", err)
	}
	return formatted, nil
}

// WriteGo generates Go source for profiles and writes it to path. The
// package name defaults to the name of the directory holding path.
// Output that fails to format is written to path.broken instead.
func WriteGo(path, pkg string, profiles []board.Profile) error {
	if pkg == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		pkg = filepath.Base(filepath.Dir(abs))
	}
	code, err := renderGo(pkg, profiles)
	if err != nil {
		return err
	}
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

func renderGo(pkg string, profiles []board.Profile) (string, error) {
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPackage, pkg)
	}
	if len(profiles) == 0 {
		return "", ErrNoProfiles
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return "", err
		}
	}
	return renderTemplate("goFile", goFileData{Package: pkg, Profiles: profiles})
}
