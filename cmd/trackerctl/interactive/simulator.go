// Package interactive provides the interactive movement simulator of
// trackerctl.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/guard"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
	"github.com/mysoltrk/mysoltrk-go/pkg/log"
	"github.com/mysoltrk/mysoltrk-go/pkg/sampling"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// Simulator drives a guard from typed sensor readings and a simulated clock.
type Simulator struct {
	profile  board.Profile
	guard    *guard.Guard
	clock    *Clock
	rl       *readline.Instance
	movement *guard.Movement
	session  *guard.Session
}

// New creates a simulator for p with a readline prompt. Safety events go to
// the terminal and to logger, when not nil.
func New(p board.Profile, logger log.Logger) (*Simulator, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          p.Name + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	console := log.NewSlogAdapter(slog.New(slog.NewTextHandler(rl.Stdout(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	s, err := newSimulator(p, log.NewMultiLogger(console, logger), NewClock(time.Now()))
	if err != nil {
		rl.Close()
		return nil, err
	}
	s.rl = rl
	return s, nil
}

func newSimulator(p board.Profile, logger log.Logger, clock *Clock) (*Simulator, error) {
	g, err := guard.New(guard.Config{
		Profile: p.Name,
		Limits:  p.Limits,
		Logger:  logger,
		Clock:   clock.Now,
	})
	if err != nil {
		return nil, err
	}
	return &Simulator{profile: p, guard: g, clock: clock}, nil
}

// Run reads commands until quit or end of input.
func (s *Simulator) Run() error {
	defer s.rl.Close()

	out := s.rl.Stdout()
	s.printHelp(out)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.Exec(line, out); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// Exec runs a single command line, writing its output to w.
func (s *Simulator) Exec(line string, w io.Writer) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)
		return nil
	case "status", "s":
		s.cmdStatus(w)
		return nil
	case "start":
		return s.cmdStart(args, w)
	case "begin", "b":
		return s.cmdBegin(args, w)
	case "read", "r":
		return s.cmdRead(args, w)
	case "advance", "a":
		return s.cmdAdvance(args, w)
	case "end", "e":
		s.cmdEnd(w)
		return nil
	case "session":
		s.session = s.guard.BeginSession()
		fmt.Fprintf(w, "session started, max work %s\n", formatRemaining(s.session.Remaining()))
		return nil
	case "expired":
		return s.cmdExpired(w)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command: %s (type 'help')", cmd)
	}
}

func (s *Simulator) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Movement simulator commands:
  start <vref> [light]   - Check whether a movement may start
  begin <right|left>     - Begin a movement (ends the current one)
  read <shunt> <vref>    - Poll the current movement

Readings are raw samples, comma separated (e.g. 30,31,29). They are
repeated to fill MaxSamples reads and averaged like on the board.
  advance <duration>     - Advance the simulated clock (e.g. 250ms, 2s)
  end                    - End the current movement
  session                - Begin a work session
  expired                - Check the work session
  status                 - Show simulator state
  help                   - Show this help
  quit                   - Exit`)
}

func (s *Simulator) cmdStatus(w io.Writer) {
	fmt.Fprintf(w, "profile %s, clock %s\n", s.profile.Name, s.clock.Now().Format("15:04:05.000"))
	if s.movement == nil {
		fmt.Fprintln(w, "movement: none")
	} else {
		fmt.Fprintf(w, "movement: %s %s, elapsed %v, stopped %s\n",
			s.movement.ID()[:8], s.movement.Side(), s.movement.Elapsed(), s.movement.Stopped())
	}
	if s.session == nil {
		fmt.Fprintln(w, "session: none")
	} else {
		fmt.Fprintf(w, "session: elapsed %v, remaining %s\n", s.session.Elapsed(), formatRemaining(s.session.Remaining()))
	}
}

func (s *Simulator) cmdStart(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: start <vref> [light]")
	}
	vref, err := s.average("vref", args[0])
	if err != nil {
		return err
	}
	light := 0
	if t, ok := s.profile.Limits.Tracking(); ok {
		light = t.LightThreshold
	}
	if len(args) > 1 {
		if light, err = s.average("light", args[1]); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "start: %s\n", s.guard.CanStart(vref, light))
	return nil
}

func (s *Simulator) cmdBegin(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: begin <right|left>")
	}
	var side limits.Side
	switch strings.ToLower(args[0]) {
	case "right", "r":
		side = limits.SideRight
	case "left", "l":
		side = limits.SideLeft
	default:
		return fmt.Errorf("invalid side: %s", args[0])
	}
	if s.movement != nil {
		s.movement.End()
	}
	s.movement = s.guard.Begin(side)
	fmt.Fprintf(w, "movement %s begun, guard window %v, max %v\n",
		s.movement.ID()[:8], s.guard.Limits().GuardWindow(), s.guard.Limits().MaxMovement())
	return nil
}

func (s *Simulator) cmdRead(args []string, w io.Writer) error {
	if s.movement == nil {
		return errors.New("no movement, use 'begin' first")
	}
	if len(args) < 2 {
		return errors.New("usage: read <shunt> <vref>")
	}
	shunt, err := parseSamples("shunt", args[0])
	if err != nil {
		return err
	}
	vref, err := parseSamples("vref", args[1])
	if err != nil {
		return err
	}
	v, err := s.movement.Poll(shunt, vref)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v: %s\n", s.movement.Elapsed(), v)
	return nil
}

// average returns one averaged reading of the samples in arg.
func (s *Simulator) average(name, arg string) (int, error) {
	src, err := parseSamples(name, arg)
	if err != nil {
		return 0, err
	}
	a, err := sampling.NewAverager(src, s.profile.Limits.MaxSamples())
	if err != nil {
		return 0, err
	}
	return a.Read()
}

// parseSamples parses comma separated samples into a source that repeats
// them in order.
func parseSamples(name, arg string) (sampling.Source, error) {
	fields := strings.Split(arg, ",")
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		values[i] = v
	}
	next := 0
	return sampling.SourceFunc(func() (int, error) {
		v := values[next%len(values)]
		next++
		return v, nil
	}), nil
}

func (s *Simulator) cmdAdvance(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: advance <duration>")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if d < 0 {
		return errors.New("the clock only moves forward")
	}
	s.clock.Advance(d)
	fmt.Fprintf(w, "clock %s\n", s.clock.Now().Format("15:04:05.000"))
	return nil
}

func (s *Simulator) cmdEnd(w io.Writer) {
	if s.movement == nil {
		fmt.Fprintln(w, "no movement")
		return
	}
	v := s.movement.End()
	fmt.Fprintf(w, "movement ended after %v: %s\n", s.movement.Elapsed(), v)
	s.movement = nil
}

func (s *Simulator) cmdExpired(w io.Writer) error {
	if s.session == nil {
		return errors.New("no session, use 'session' first")
	}
	if s.session.Expired() {
		fmt.Fprintf(w, "session expired, sleep %v\n", s.session.SleepDelay())
		return nil
	}
	fmt.Fprintf(w, "session active, remaining %s\n", formatRemaining(s.session.Remaining()))
	return nil
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		return "unlimited"
	}
	return d.String()
}
