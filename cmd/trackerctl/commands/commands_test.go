package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/guard"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
	"github.com/mysoltrk/mysoltrk-go/pkg/log"
	"github.com/mysoltrk/mysoltrk-go/pkg/persistence"
)

const extraProfileYAML = `profiles:
  - name: garden-tracker
    description: Garden tracker
    target: avr
    pins:
      actuator_right: [4, 7]
      actuator_left: [6, 5]
      shunt: 18
      vref: 21
    limits:
      max_samples: 8
      guard_window: 400ms
      max_movement: 2s
      min_vref: 90
      shunt:
        shared: 25
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, []string{
		board.ActuatorMovements,
		board.SolarTrackerReinvented,
		"solar-tracker-shared-shunt",
	}, reg.Names())

	reg, err = LoadRegistry(writeFile(t, "boards.yaml", extraProfileYAML))
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSideFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    limits.Side
		wantErr bool
	}{
		{"right", limits.SideRight, false},
		{"L", limits.SideLeft, false},
		{"", limits.SideUnknown, false},
		{"up", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSideFlag(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRunList(t *testing.T) {
	var buf bytes.Buffer
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	require.NoError(t, RunList(reg, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], board.ActuatorMovements)
	assert.Contains(t, lines[2], "yes")
}

func TestRunShow(t *testing.T) {
	reg := board.Builtins()

	var buf bytes.Buffer
	require.NoError(t, RunShow(reg, board.SolarTrackerReinvented, "text", &buf))
	out := buf.String()
	assert.Contains(t, out, "solar-tracker-reinvented (avr)")
	assert.Contains(t, out, "guard window:    500ms")
	assert.Contains(t, out, "shunt left:      35")
	assert.Contains(t, out, "photoresistors:  14, 15, 16, 17 (driver 12)")
	assert.Contains(t, out, "light threshold: 700")

	buf.Reset()
	require.NoError(t, RunShow(reg, board.ActuatorMovements, "yaml", &buf))
	profiles, err := board.ParseYAML(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, board.ActuatorMovements, profiles[0].Name)

	assert.ErrorIs(t, RunShow(reg, "nope", "text", &buf), board.ErrUnknownProfile)
	assert.Error(t, RunShow(reg, board.ActuatorMovements, "xml", &buf))
}

func TestRunValidate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunValidate(writeFile(t, "ok.yaml", extraProfileYAML), &buf))
	assert.Contains(t, buf.String(), "ok  garden-tracker")
	assert.Contains(t, buf.String(), "1 profile(s) valid")

	clash := strings.Replace(extraProfileYAML, "garden-tracker", board.ActuatorMovements, 1)
	err := RunValidate(writeFile(t, "clash.yaml", clash), &buf)
	assert.ErrorIs(t, err, board.ErrDuplicateProfile)

	clash = strings.Replace(extraProfileYAML, "garden-tracker", "solar-tracker-shared-shunt", 1)
	err = RunValidate(writeFile(t, "clash2.yaml", clash), &buf)
	assert.ErrorIs(t, err, board.ErrDuplicateProfile)

	bad := strings.Replace(extraProfileYAML, "guard_window: 400ms", "guard_window: 5s", 1)
	err = RunValidate(writeFile(t, "bad.yaml", bad), &buf)
	assert.ErrorIs(t, err, limits.ErrGuardWindowTooLong)
}

func TestRunCheck(t *testing.T) {
	reg := board.Builtins()

	tests := []struct {
		name string
		opts CheckOptions
		want guard.Verdict
	}{
		{"right overcurrent", CheckOptions{Side: limits.SideRight, Shunt: 31, Vref: 80, Elapsed: 500 * time.Millisecond}, guard.VerdictOvercurrent},
		{"right at threshold", CheckOptions{Side: limits.SideRight, Shunt: 30, Vref: 80, Elapsed: 500 * time.Millisecond}, guard.VerdictContinue},
		{"under-voltage", CheckOptions{Side: limits.SideRight, Shunt: 0, Vref: 79, Elapsed: 600 * time.Millisecond}, guard.VerdictUnderVoltage},
		{"guard window", CheckOptions{Side: limits.SideRight, Shunt: 99, Vref: 0, Elapsed: 499 * time.Millisecond}, guard.VerdictGuardWindow},
		{"timeout", CheckOptions{Side: limits.SideLeft, Shunt: 0, Vref: 200, Elapsed: 801 * time.Millisecond}, guard.VerdictTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Profile = board.SolarTrackerReinvented
			var buf bytes.Buffer
			res, err := RunCheck(reg, tt.opts, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Verdict)
			assert.Contains(t, buf.String(), "verdict: "+tt.want.String())
		})
	}
}

func TestRunCheckLight(t *testing.T) {
	dark := 100
	res, err := RunCheck(board.Builtins(), CheckOptions{
		Profile: board.SolarTrackerReinvented,
		Vref:    200,
		Light:   &dark,
		Elapsed: 600 * time.Millisecond,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, res.LowLight)
	assert.Equal(t, guard.VerdictLowLight, res.Start)
	assert.Equal(t, guard.VerdictContinue, res.Verdict)

	_, err = RunCheck(board.Builtins(), CheckOptions{Profile: "nope"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, board.ErrUnknownProfile)
}

func TestRunGen(t *testing.T) {
	reg := board.Builtins()

	var buf bytes.Buffer
	require.NoError(t, RunGen(reg, GenOptions{Format: "go"}, &buf))
	assert.Contains(t, buf.String(), "package profiles")
	assert.Contains(t, buf.String(), board.SolarTrackerReinvented)

	buf.Reset()
	require.NoError(t, RunGen(reg, GenOptions{Format: "header", Profiles: []string{board.SolarTrackerReinvented}}, &buf))
	assert.Contains(t, buf.String(), "#define MAX_SHUNT_VALUE_L")

	assert.Error(t, RunGen(reg, GenOptions{Format: "header"}, &buf))
	assert.Error(t, RunGen(reg, GenOptions{Format: "rust"}, &buf))
	assert.ErrorIs(t, RunGen(reg, GenOptions{Profiles: []string{"nope"}}, &buf), board.ErrUnknownProfile)

	out := filepath.Join(t.TempDir(), "config.h")
	require.NoError(t, RunGen(reg, GenOptions{Format: "header", Profiles: []string{board.ActuatorMovements}, Output: out}, &buf))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#define MAX_SECONDS_MOVEMENT")
}

func TestRunImport(t *testing.T) {
	var header bytes.Buffer
	require.NoError(t, RunGen(board.Builtins(), GenOptions{Format: "header", Profiles: []string{board.SolarTrackerReinvented}}, &header))
	path := writeFile(t, "config.h", header.String())

	var buf bytes.Buffer
	require.NoError(t, RunImport(path, "imported", "from firmware", &buf))

	profiles, err := board.ParseYAML(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "imported", profiles[0].Name)
	assert.Equal(t, "from firmware", profiles[0].Description)
	assert.True(t, profiles[0].Tracking())
	assert.True(t, profiles[0].Debug)
}

func TestSelectAndCurrent(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state", "selection.json")
	reg := board.Builtins()

	var buf bytes.Buffer
	err := RunCurrent(reg, statePath, &buf)
	assert.ErrorIs(t, err, ErrNoSelection)

	require.NoError(t, RunSelect(reg, board.ActuatorMovements, statePath, &buf))
	assert.Contains(t, buf.String(), "selected actuator-movements")

	buf.Reset()
	require.NoError(t, RunCurrent(reg, statePath, &buf))
	assert.Contains(t, buf.String(), "fingerprint ok")

	// Tamper with the stored fingerprint.
	store := persistence.NewSelectionStore(statePath)
	sel, err := store.Load()
	require.NoError(t, err)
	sel.Fingerprint = strings.Repeat("0", 64)
	require.NoError(t, store.Save(sel))
	assert.ErrorIs(t, RunCurrent(reg, statePath, &buf), persistence.ErrFingerprintMismatch)

	require.NoError(t, RunClear(statePath))
	assert.ErrorIs(t, RunCurrent(reg, statePath, &buf), ErrNoSelection)

	assert.ErrorIs(t, RunSelect(reg, "nope", statePath, &buf), board.ErrUnknownProfile)
}

func writeEventLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.evlog")
	fl, err := log.NewFileLogger(path)
	require.NoError(t, err)

	base := time.Date(2026, 6, 21, 9, 0, 0, 0, time.UTC)
	for _, e := range []log.Event{
		{Timestamp: base, MovementID: "aaaaaaaa-1111", Profile: "p", Kind: log.KindMovementStart, Side: limits.SideRight},
		{Timestamp: base.Add(time.Second), MovementID: "aaaaaaaa-1111", Profile: "p", Kind: log.KindTrip, Reason: log.ReasonOvercurrent, Side: limits.SideRight, Shunt: 31, Threshold: 30, Elapsed: time.Second},
		{Timestamp: base.Add(2 * time.Second), MovementID: "aaaaaaaa-1111", Profile: "p", Kind: log.KindMovementEnd, Reason: log.ReasonOvercurrent, Elapsed: 2 * time.Second},
		{Timestamp: base.Add(3 * time.Second), Profile: "p", Kind: log.KindInhibit, Reason: log.ReasonUnderVoltage, Vref: 70, Threshold: 80},
	} {
		fl.Log(e)
	}
	require.NoError(t, fl.Close())
	return path
}

func TestRunEvents(t *testing.T) {
	path := writeEventLog(t)

	var buf bytes.Buffer
	require.NoError(t, RunEvents(path, EventsOptions{}, &buf))
	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "2026-06-21T09:00:01.000Z TRIP")
	assert.Contains(t, out, "[mv:aaaaaaaa] RIGHT OVERCURRENT shunt=31>30 after 1s")
	assert.Contains(t, out, "UNDER_VOLTAGE vref=70<80")

	buf.Reset()
	require.NoError(t, RunEvents(path, EventsOptions{Reason: "overcurrent"}, &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	buf.Reset()
	require.NoError(t, RunEvents(path, EventsOptions{Kind: "trip", Format: "jsonl"}, &buf))
	assert.Contains(t, buf.String(), `"reason":"OVERCURRENT"`)
	assert.Contains(t, buf.String(), `"elapsed_ms":1000`)

	buf.Reset()
	require.NoError(t, RunEvents(path, EventsOptions{Format: "summary"}, &buf))
	assert.Contains(t, buf.String(), "4 events")
	assert.Contains(t, buf.String(), "TRIP OVERCURRENT")

	buf.Reset()
	require.NoError(t, RunEvents(path, EventsOptions{TimeStart: "2026-06-21T09:00:02Z"}, &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestRunEventsErrors(t *testing.T) {
	path := writeEventLog(t)
	var buf bytes.Buffer

	assert.Error(t, RunEvents(path, EventsOptions{Kind: "bogus"}, &buf))
	assert.Error(t, RunEvents(path, EventsOptions{Reason: "bogus"}, &buf))
	assert.Error(t, RunEvents(path, EventsOptions{TimeEnd: "yesterday"}, &buf))
	assert.Error(t, RunEvents(path, EventsOptions{Format: "xml"}, &buf))

	err := RunEvents(filepath.Join(t.TempDir(), "missing.evlog"), EventsOptions{}, &buf)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
