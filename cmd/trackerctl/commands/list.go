package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// RunList prints one line per registered profile.
func RunList(reg *board.Registry, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTARGET\tTRACKING\tDESCRIPTION")
	for _, p := range reg.Profiles() {
		tracking := "no"
		if p.Tracking() {
			tracking = "yes"
		}
		target := p.Target
		if target == "" {
			target = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, target, tracking, p.Description)
	}
	return tw.Flush()
}
