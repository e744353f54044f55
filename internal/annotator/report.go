package annotator

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Render prints the grouped PASS/SKIP/FAIL listing followed by the
// summary counts.
func (r *Report) Render(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if len(r.Succeeded) > 0 {
		fmt.Fprintf(w, "%s\n", bold("Annotated:"))
		for _, o := range r.Succeeded {
			fmt.Fprintf(w, "  %s  %s  %s\n", green("PASS"), o.Path,
				dim("("+strings.Join(o.Contributors, ", ")+")"))
		}
		fmt.Fprintln(w)
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "%s\n", bold("Skipped:"))
		for _, o := range r.Skipped {
			fmt.Fprintf(w, "  %s  %s  %s\n", yellow("SKIP"), o.Path, dim("("+o.Detail+")"))
		}
		fmt.Fprintln(w)
	}

	if len(r.Failed) > 0 {
		fmt.Fprintf(w, "%s\n", bold("Failed:"))
		for _, o := range r.Failed {
			fmt.Fprintf(w, "  %s  %s\n", red("FAIL"), o.Path)
			if o.Detail != "" {
				for _, line := range strings.Split(o.Detail, "\n") {
					fmt.Fprintf(w, "         %s\n", red(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "Total:   %d\n", r.Total())
	fmt.Fprintf(w, "%s\n", color.GreenString("Success: %d", len(r.Succeeded)))
	fmt.Fprintf(w, "%s\n", color.YellowString("Skipped: %d", len(r.Skipped)))
	if len(r.Failed) > 0 {
		fmt.Fprintf(w, "%s\n", color.RedString("Failed:  %d", len(r.Failed)))
	} else {
		fmt.Fprintf(w, "Failed:  %d\n", len(r.Failed))
	}
}
