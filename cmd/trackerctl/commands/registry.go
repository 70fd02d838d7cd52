// Package commands implements the trackerctl CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// LoadRegistry returns the built-in and catalog profiles, extended with the
// profiles of the YAML file at configPath when it is not empty.
func LoadRegistry(configPath string) (*board.Registry, error) {
	reg, err := board.Catalog()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return reg, nil
	}
	if err := reg.LoadFile(configPath); err != nil {
		return nil, fmt.Errorf("loading %s: %w", configPath, err)
	}
	slog.Debug("loaded profile file", "path", configPath, "profiles", reg.Len())
	return reg, nil
}

// ParseSideFlag parses a side name (right, left, unknown; r and l accepted).
func ParseSideFlag(s string) (limits.Side, error) {
	switch strings.ToLower(s) {
	case "right", "r":
		return limits.SideRight, nil
	case "left", "l":
		return limits.SideLeft, nil
	case "", "unknown", "any":
		return limits.SideUnknown, nil
	default:
		return 0, fmt.Errorf("invalid side: %s (valid: right, left, unknown)", s)
	}
}
