package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lintwire/lintwire/pkg/lint"
)

// EmitAnnotations writes GitHub workflow commands for each offense so
// the runner surfaces them as inline file annotations. Offenses without
// a workspace-relative path or a usable line are skipped; the runner
// cannot anchor those.
func EmitAnnotations(w io.Writer, c lint.Classified, workspaceDir string) {
	for _, o := range c.Errors {
		emitAnnotation(w, "error", o, workspaceDir)
	}
	for _, o := range c.Warnings {
		emitAnnotation(w, "warning", o, workspaceDir)
	}
}

func emitAnnotation(w io.Writer, level string, o lint.Offense, workspaceDir string) {
	loc := lint.ResolveLocation(o.URI, workspaceDir)
	if !loc.Relative || o.Start.Line <= 0 {
		return
	}

	msg := o.Message
	if msg == "" {
		msg = o.Check
	}
	fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d::%s\n",
		level, loc.Path, o.Start.Line, o.Start.Character, escapeAnnotation(msg))
}

// escapeAnnotation escapes the data portion of a workflow command.
// Percent first, so the escapes themselves survive.
func escapeAnnotation(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
