// Package report renders classified offenses as Markdown for PR comments
// and as GitHub workflow annotations.
package report

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lintwire/lintwire/pkg/lint"
)

// Report is the rendered outcome of a run.
type Report struct {
	ErrorCount   int
	WarningCount int
	Body         string // full Markdown document
	Fallback     string // inline body published when the report file cannot be written
}

// Renderer builds Markdown reports from classified offenses.
// RepoURL and CommitSHA enable per-offense source links; RunID enables
// the run-details footer. Any of them may be empty.
type Renderer struct {
	PRNumber     string
	WorkspaceDir string
	RepoURL      string
	CommitSHA    string
	RunID        string

	Log *zap.Logger
}

// Render assembles the Markdown report for a classified offense set.
func (r *Renderer) Render(c lint.Classified) Report {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	title := fmt.Sprintf("## Lint Report for PR #%s\n", r.PRNumber)

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")

	if c.ErrorCount() == 0 && c.WarningCount() == 0 {
		summary := "✅ **0 error(s), 0 warning(s) found.**\n"
		sb.WriteString(summary)
		sb.WriteString(r.footer())
		return Report{
			Body:     sb.String(),
			Fallback: r.fallback(title, summary),
		}
	}

	summary := fmt.Sprintf("**%d error(s), %d warning(s) found.**\n", c.ErrorCount(), c.WarningCount())
	sb.WriteString(summary)
	sb.WriteString("\n")

	if c.ErrorCount() > 0 {
		sb.WriteString("### Errors\n\n")
		for _, o := range c.Errors {
			r.writeOffense(&sb, o, log)
		}
	}

	if c.ErrorCount() > 0 && c.WarningCount() > 0 {
		sb.WriteString("\n---\n\n")
	}

	if c.WarningCount() > 0 {
		sb.WriteString("### Warnings\n\n")
		for _, o := range c.Warnings {
			r.writeOffense(&sb, o, log)
		}
	}

	sb.WriteString(r.footer())

	return Report{
		ErrorCount:   c.ErrorCount(),
		WarningCount: c.WarningCount(),
		Body:         sb.String(),
		Fallback:     r.fallback(title, summary),
	}
}

// Failure renders the report published when a stage of the run fails
// after setup. Counts stay zero; the body carries the error text.
func (r *Renderer) Failure(runErr error) Report {
	title := fmt.Sprintf("## Lint Report for PR #%s\n", r.PRNumber)
	line := fmt.Sprintf("⚠️ **Script failed:** %v\n", runErr)
	body := title + "\n" + line

	return Report{
		Body:     body,
		Fallback: body,
	}
}

// footer returns the run-details link block, or "" when the repo URL or
// run ID is missing.
func (r *Renderer) footer() string {
	if r.RepoURL == "" || r.RunID == "" {
		return ""
	}
	return fmt.Sprintf("\n[View full run details](%s/actions/runs/%s)\n", r.RepoURL, r.RunID)
}

// fallback builds the inline body used in place of a file path when the
// report file cannot be written. It keeps the title, summary, and
// run-details link but drops the per-offense sections.
func (r *Renderer) fallback(title, summary string) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(summary)
	sb.WriteString("\n⚠️ Could not write the report file. Full results are in the workflow log.\n")
	sb.WriteString(r.footer())
	return sb.String()
}

func (r *Renderer) writeOffense(sb *strings.Builder, o lint.Offense, log *zap.Logger) {
	loc := lint.ResolveLocation(o.URI, r.WorkspaceDir)
	if loc.DecodeErr != nil {
		log.Warn("could not decode offense uri",
			zap.String("uri", o.URI),
			zap.Error(loc.DecodeErr))
	}

	message := o.Message
	if message == "" {
		message = "No message provided"
	}
	check := o.Check
	if check == "" {
		check = "unknown"
	}

	if link := r.offenseLink(loc, o.Start.Line); link != "" {
		fmt.Fprintf(sb, "- [%s](%s) `%d:%d`\n", loc.Path, link, o.Start.Line, o.Start.Character)
	} else {
		fmt.Fprintf(sb, "- %s `%d:%d`\n", loc.Path, o.Start.Line, o.Start.Character)
	}
	fmt.Fprintf(sb, "  %s (%s)\n", message, check)
}

// offenseLink builds a blob link for an offense, or "" when any of the
// required pieces is missing: repo URL, commit, a workspace-relative
// path, and a positive line number.
func (r *Renderer) offenseLink(loc lint.Location, line int) string {
	if r.RepoURL == "" || r.CommitSHA == "" || !loc.Relative || line <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/blob/%s/%s#L%d", r.RepoURL, r.CommitSHA, strings.TrimPrefix(loc.Path, "/"), line)
}
