// Package engine invokes the external lint engine and parses its
// offense output.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/lintwire/lintwire/pkg/lint"
)

// ErrNotFound reports that the engine binary could not be resolved.
var ErrNotFound = errors.New("engine not found")

// Runner executes the lint engine against a workspace.
type Runner struct {
	Command      string        // engine binary name or path
	Args         []string      // arguments passed through to the engine
	WorkspaceDir string        // working directory for the engine process
	Timeout      time.Duration // zero means no timeout

	Log *zap.Logger
}

// Check verifies the engine binary can be resolved. Callers run this
// before touching any outputs so a missing engine aborts the run before
// anything is published.
func (r *Runner) Check() error {
	if _, err := exec.LookPath(r.Command); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, r.Command)
	}
	return nil
}

// Run executes the engine and parses its stdout into offenses.
// Engines conventionally exit non-zero when they find offenses, so a
// non-zero exit is tolerated as long as stdout parses as an offense
// envelope.
func (r *Runner) Run(ctx context.Context) ([]lint.Offense, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Dir = r.WorkspaceDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	log.Debug("engine finished",
		zap.String("command", r.Command),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("clean_exit", runErr == nil))

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("engine timed out after %s", r.Timeout)
	}

	offenses, parseErr := parseOffenses(stdout.Bytes())
	if runErr != nil && parseErr != nil {
		return nil, fmt.Errorf("engine failed: %w\nstderr: %s", runErr, stderr.String())
	}
	if parseErr != nil {
		return nil, parseErr
	}
	if runErr != nil {
		log.Debug("engine exited non-zero with parseable output", zap.Error(runErr))
	}
	return offenses, nil
}

// parseOffenses decodes the engine's JSON envelope. A document that
// parses but has no offenses array is rejected: it usually means the
// engine printed something other than results.
func parseOffenses(data []byte) ([]lint.Offense, error) {
	var envelope struct {
		Offenses *[]lint.Offense `json:"offenses"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parsing engine output: %w", err)
	}
	if envelope.Offenses == nil {
		return nil, fmt.Errorf("engine output has no offenses array")
	}
	return *envelope.Offenses, nil
}
