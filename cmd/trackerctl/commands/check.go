package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/guard"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// CheckOptions are the readings evaluated by the check command.
type CheckOptions struct {
	Profile string
	Side    limits.Side
	Shunt   int
	Vref    int
	Light   *int
	Elapsed time.Duration
}

// CheckResult is the outcome of RunCheck.
type CheckResult struct {
	Overcurrent  bool
	UnderVoltage bool
	GuardWindow  bool
	TimedOut     bool
	LowLight     bool
	Start        guard.Verdict
	Verdict      guard.Verdict
}

// Evaluate applies the limits of p to opts without logging anything.
func Evaluate(p board.Profile, opts CheckOptions) (CheckResult, error) {
	g, err := guard.New(guard.Config{Profile: p.Name, Limits: p.Limits})
	if err != nil {
		return CheckResult{}, err
	}
	l := p.Limits
	light := 0
	if opts.Light != nil {
		light = *opts.Light
	} else if t, ok := l.Tracking(); ok {
		light = t.LightThreshold
	}

	m := g.Begin(opts.Side)
	res := CheckResult{
		Overcurrent:  l.IsOvercurrent(opts.Shunt, opts.Side),
		UnderVoltage: l.IsUnderVoltage(opts.Vref),
		GuardWindow:  l.IsWithinGuardWindow(opts.Elapsed),
		TimedOut:     l.IsMovementTimedOut(opts.Elapsed),
		LowLight:     l.IsBelowLightThreshold(light),
		Start:        g.CanStart(opts.Vref, light),
		Verdict:      m.Evaluate(opts.Elapsed, opts.Shunt, opts.Vref),
	}
	return res, nil
}

// RunCheck evaluates readings against a profile and prints every predicate
// together with the guard verdict.
func RunCheck(reg *board.Registry, opts CheckOptions, w io.Writer) (CheckResult, error) {
	p, err := reg.Lookup(opts.Profile)
	if err != nil {
		return CheckResult{}, err
	}
	res, err := Evaluate(p, opts)
	if err != nil {
		return CheckResult{}, err
	}

	l := p.Limits
	fmt.Fprintf(w, "profile %s, side %s, elapsed %v\n", p.Name, opts.Side, opts.Elapsed)
	fmt.Fprintf(w, "  overcurrent:    %-5t shunt %d, threshold %d\n", res.Overcurrent, opts.Shunt, l.ShuntThreshold(opts.Side))
	fmt.Fprintf(w, "  under-voltage:  %-5t vref %d, minimum %d\n", res.UnderVoltage, opts.Vref, l.MinVref())
	fmt.Fprintf(w, "  guard window:   %-5t window %v\n", res.GuardWindow, l.GuardWindow())
	fmt.Fprintf(w, "  timed out:      %-5t max %v\n", res.TimedOut, l.MaxMovement())
	if t, ok := l.Tracking(); ok {
		fmt.Fprintf(w, "  low light:      %-5t threshold %d\n", res.LowLight, t.LightThreshold)
	}
	fmt.Fprintf(w, "start: %s\n", res.Start)
	fmt.Fprintf(w, "verdict: %s\n", res.Verdict)
	return res, nil
}
