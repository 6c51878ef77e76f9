package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lintwire/lintwire/pkg/lint"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// printSummary writes a short human-readable summary for anyone reading
// the CI log directly. The published Markdown report is the canonical
// output; this is a convenience mirror.
func printSummary(w io.Writer, c lint.Classified, workspaceDir string) {
	if c.ErrorCount() == 0 && c.WarningCount() == 0 {
		fmt.Fprintf(w, "%s\n", colored("No offenses found.", colorGreen))
		return
	}

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%d error(s), %d warning(s)", c.ErrorCount(), c.WarningCount())))
	for _, o := range c.Errors {
		printOffense(w, "✖", colorRed, o, workspaceDir)
	}
	for _, o := range c.Warnings {
		printOffense(w, "▲", colorYellow, o, workspaceDir)
	}
}

func printOffense(w io.Writer, mark, color string, o lint.Offense, workspaceDir string) {
	loc := lint.ResolveLocation(o.URI, workspaceDir)

	msg := o.Message
	if msg == "" {
		msg = o.Check
	}

	fmt.Fprintf(w, "  %s %s:%d %s\n", colored(mark, color), loc.Path, o.Start.Line, msg)
}
