// Command trackerctl inspects, validates and exercises the actuator safety
// limits of tracker board profiles.
//
// Usage:
//
//	trackerctl <command> [flags] [args]
//
// Commands:
//
//	list      List board profiles
//	show      Show a profile's pins and limits
//	validate  Validate a YAML profile file
//	check     Evaluate sensor readings against a profile
//	gen       Generate Go or C header source for profiles
//	import    Convert a firmware config header to a YAML profile
//	select    Record the profile a tracker runs with
//	current   Show and verify the recorded profile
//	events    View a safety event log
//	simulate  Interactive movement simulator
//
// Every command accepts -config <file.yaml> to add profiles to the built-in
// ones and -log-level to control diagnostic output.
//
// Examples:
//
//	# Is a right-motor shunt reading of 31 an overcurrent 600ms into a move?
//	trackerctl check -profile solar-tracker-reinvented -side right -shunt 31 -vref 120 -elapsed 600ms
//
//	# Generate the firmware header of a profile kept in YAML
//	trackerctl gen -config boards.yaml -format header -profile garden-tracker -o config.h
//
//	# Show only overcurrent trips of a bench run
//	trackerctl events -reason overcurrent bench.evlog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mysoltrk/mysoltrk-go/cmd/trackerctl/commands"
	"github.com/mysoltrk/mysoltrk-go/cmd/trackerctl/interactive"
	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/log"
)

const usage = `trackerctl - Tracker Board Safety Limits Tool

Usage:
  trackerctl <command> [flags] [args]

Commands:
  list      List board profiles
  show      Show a profile's pins and limits
  validate  Validate a YAML profile file
  check     Evaluate sensor readings against a profile
  gen       Generate Go or C header source for profiles
  import    Convert a firmware config header to a YAML profile
  select    Record the profile a tracker runs with
  current   Show and verify the recorded profile
  events    View a safety event log
  simulate  Interactive movement simulator

Use "trackerctl <command> -help" for more information about a command.
`

const defaultStatePath = "mysoltrk-selection.json"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "list":
		runList(args)
	case "show":
		runShow(args)
	case "validate":
		runValidate(args)
	case "check":
		runCheck(args)
	case "gen":
		runGen(args)
	case "import":
		runImport(args)
	case "select":
		runSelect(args)
	case "current":
		runCurrent(args)
	case "events":
		runEvents(args)
	case "simulate":
		runSimulate(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// globalFlags are accepted by every command.
type globalFlags struct {
	config   *string
	logLevel *string
}

func newFlagSet(name, synopsis, help string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "trackerctl %s - %s\n\nUsage:\n  trackerctl %s %s\n\nFlags:\n", name, help, name, synopsis)
		fs.PrintDefaults()
	}
	g := &globalFlags{
		config:   fs.String("config", "", "YAML profile file added to the built-in profiles"),
		logLevel: fs.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)"),
	}
	return fs, g
}

// parse parses args, configures logging and exits on error.
func parse(fs *flag.FlagSet, g *globalFlags, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(*g.logLevel)); err != nil {
		fatal(fmt.Errorf("invalid log level: %s", *g.logLevel))
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func (g *globalFlags) registry() *board.Registry {
	reg, err := commands.LoadRegistry(*g.config)
	if err != nil {
		fatal(err)
	}
	return reg
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func requireArg(fs *flag.FlagSet, what string) string {
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: %s required\n", what)
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runList(args []string) {
	fs, g := newFlagSet("list", "[flags]", "List board profiles")
	parse(fs, g, args)

	if err := commands.RunList(g.registry(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runShow(args []string) {
	fs, g := newFlagSet("show", "[flags] <profile>", "Show a profile's pins and limits")
	format := fs.String("format", "text", "Output format (text, yaml)")
	parse(fs, g, args)
	name := requireArg(fs, "profile name")

	if err := commands.RunShow(g.registry(), name, *format, os.Stdout); err != nil {
		fatal(err)
	}
}

func runValidate(args []string) {
	fs, g := newFlagSet("validate", "[flags] <file.yaml>", "Validate a YAML profile file")
	parse(fs, g, args)
	path := requireArg(fs, "profile file path")

	if err := commands.RunValidate(path, os.Stdout); err != nil {
		fatal(err)
	}
}

func runCheck(args []string) {
	fs, g := newFlagSet("check", "-profile <name> [flags]", "Evaluate sensor readings against a profile")
	profile := fs.String("profile", "", "Profile name (required)")
	side := fs.String("side", "unknown", "Moving motor (right, left, unknown)")
	shunt := fs.Int("shunt", 0, "Averaged shunt reading")
	vref := fs.Int("vref", 0, "Averaged vref reading")
	light := fs.Int("light", -1, "Light reading (default: the profile's light threshold)")
	elapsed := fs.Duration("elapsed", 0, "Time since movement start")
	parse(fs, g, args)

	if *profile == "" {
		fmt.Fprintln(os.Stderr, "Error: -profile required")
		fs.Usage()
		os.Exit(1)
	}
	s, err := commands.ParseSideFlag(*side)
	if err != nil {
		fatal(err)
	}

	opts := commands.CheckOptions{
		Profile: *profile,
		Side:    s,
		Shunt:   *shunt,
		Vref:    *vref,
		Elapsed: *elapsed,
	}
	if *light >= 0 {
		opts.Light = light
	}

	res, err := commands.RunCheck(g.registry(), opts, os.Stdout)
	if err != nil {
		fatal(err)
	}
	// Exit status 2 lets scripts tell a stop decision from an error.
	if res.Verdict.Stop() || res.Start.Stop() {
		os.Exit(2)
	}
}

func runGen(args []string) {
	fs, g := newFlagSet("gen", "[flags]", "Generate Go or C header source for profiles")
	format := fs.String("format", "go", "Output format (go, header)")
	profiles := fs.String("profile", "", "Comma-separated profile names (default: all)")
	pkg := fs.String("pkg", "", "Go package name (default: output directory name, or profiles)")
	output := fs.String("o", "", "Output file (default: stdout)")
	parse(fs, g, args)

	opts := commands.GenOptions{
		Format:  *format,
		Package: *pkg,
		Output:  *output,
	}
	if *profiles != "" {
		opts.Profiles = strings.Split(*profiles, ",")
	}

	if err := commands.RunGen(g.registry(), opts, os.Stdout); err != nil {
		fatal(err)
	}
}

func runImport(args []string) {
	fs, g := newFlagSet("import", "-name <profile> [flags] <config.h>", "Convert a firmware config header to a YAML profile")
	name := fs.String("name", "", "Name of the new profile (required)")
	description := fs.String("description", "", "Profile description")
	parse(fs, g, args)
	path := requireArg(fs, "header path")

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name required")
		fs.Usage()
		os.Exit(1)
	}
	if err := commands.RunImport(path, *name, *description, os.Stdout); err != nil {
		fatal(err)
	}
}

func runSelect(args []string) {
	fs, g := newFlagSet("select", "[flags] <profile>", "Record the profile a tracker runs with")
	state := fs.String("state", defaultStatePath, "Selection state file")
	clearSel := fs.Bool("clear", false, "Forget the recorded profile instead")
	parse(fs, g, args)

	if *clearSel {
		if err := commands.RunClear(*state); err != nil {
			fatal(err)
		}
		return
	}
	name := requireArg(fs, "profile name")
	if err := commands.RunSelect(g.registry(), name, *state, os.Stdout); err != nil {
		fatal(err)
	}
}

func runCurrent(args []string) {
	fs, g := newFlagSet("current", "[flags]", "Show and verify the recorded profile")
	state := fs.String("state", defaultStatePath, "Selection state file")
	parse(fs, g, args)

	if err := commands.RunCurrent(g.registry(), *state, os.Stdout); err != nil {
		fatal(err)
	}
}

func runEvents(args []string) {
	fs, g := newFlagSet("events", "[flags] <file.evlog>", "View a safety event log")
	movement := fs.String("movement", "", "Filter by movement ID")
	profile := fs.String("profile", "", "Filter by profile name")
	kind := fs.String("kind", "", "Filter by kind (start, end, trip, inhibit, session_expired)")
	reason := fs.String("reason", "", "Filter by reason (overcurrent, under_voltage, timeout, low_light, work_expired)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	format := fs.String("format", "text", "Output format (text, jsonl, summary)")
	parse(fs, g, args)
	path := requireArg(fs, "log file path")

	opts := commands.EventsOptions{
		MovementID: *movement,
		Profile:    *profile,
		Kind:       *kind,
		Reason:     *reason,
		TimeStart:  *timeStart,
		TimeEnd:    *timeEnd,
		Format:     *format,
	}
	if err := commands.RunEvents(path, opts, os.Stdout); err != nil {
		fatal(err)
	}
}

func runSimulate(args []string) {
	fs, g := newFlagSet("simulate", "-profile <name> [flags]", "Interactive movement simulator")
	profile := fs.String("profile", "", "Profile name (required)")
	logPath := fs.String("log", "", "Also append safety events to this file")
	parse(fs, g, args)

	if *profile == "" {
		fmt.Fprintln(os.Stderr, "Error: -profile required")
		fs.Usage()
		os.Exit(1)
	}
	p, err := g.registry().Lookup(*profile)
	if err != nil {
		fatal(err)
	}

	var logger log.Logger
	if *logPath != "" {
		fl, err := log.NewFileLogger(*logPath)
		if err != nil {
			fatal(err)
		}
		defer fl.Close()
		logger = fl
		slog.Info("logging safety events", "path", *logPath)
	}

	sim, err := interactive.New(p, logger)
	if err != nil {
		fatal(err)
	}
	start := time.Now()
	if err := sim.Run(); err != nil {
		fatal(err)
	}
	slog.Debug("simulator exited", "duration", time.Since(start))
}
