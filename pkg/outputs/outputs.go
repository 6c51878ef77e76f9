// Package outputs publishes run results through the CI platform's
// output file protocol: name=value records appended to the file named
// by GITHUB_OUTPUT.
package outputs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lintwire/lintwire/pkg/report"
)

// ErrNoDestination reports that the output destination is unset or its
// directory does not exist.
var ErrNoDestination = errors.New("output destination unavailable")

// Publisher appends name=value records to the CI output file.
type Publisher struct {
	Path string // destination file, from GITHUB_OUTPUT
	Log  *zap.Logger
}

// Check verifies the destination is usable: the path is set and its
// parent directory exists. Callers run this before the engine so a
// missing destination aborts the run before any work happens.
func (p *Publisher) Check() error {
	if p.Path == "" {
		return fmt.Errorf("%w: GITHUB_OUTPUT is not set", ErrNoDestination)
	}
	if _, err := os.Stat(filepath.Dir(p.Path)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDestination, err)
	}
	return nil
}

// Publish writes the four output records for a rendered report. An
// empty reportFile means the report file could not be written, so the
// inline fallback body is published in its place. Each record is
// best-effort: a failed write is logged as a warning and the remaining
// records are still attempted.
func (p *Publisher) Publish(rep report.Report, reportFile string) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	fallback := ""
	if reportFile == "" {
		fallback = rep.Fallback
	}

	records := []struct {
		name  string
		value string
	}{
		{"comment_body_file", reportFile},
		{"fallback_comment_body", fallback},
		{"error_count", strconv.Itoa(rep.ErrorCount)},
		{"warning_count", strconv.Itoa(rep.WarningCount)},
	}
	for _, rec := range records {
		if err := p.write(rec.name, rec.value); err != nil {
			log.Warn("writing output record",
				zap.String("name", rec.name),
				zap.Error(err))
		}
	}
}

func (p *Publisher) write(name, value string) error {
	f, err := os.OpenFile(p.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, Escape(value)); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

// Escape encodes a value for a single-line output record. Percent is
// escaped first so the escapes themselves survive round-tripping.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
