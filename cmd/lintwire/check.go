package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lintwire/lintwire/internal/archive"
	"github.com/lintwire/lintwire/internal/history"
	"github.com/lintwire/lintwire/internal/logging"
	"github.com/lintwire/lintwire/pkg/config"
	"github.com/lintwire/lintwire/pkg/engine"
	"github.com/lintwire/lintwire/pkg/lint"
	"github.com/lintwire/lintwire/pkg/outputs"
	"github.com/lintwire/lintwire/pkg/report"
	"github.com/lintwire/lintwire/pkg/sarif"
)

func newCheckCmd() *cobra.Command {
	var (
		engineCmd   string
		engineArgs  []string
		timeout     time.Duration
		ignore      []string
		annotations bool
		sarifOut    string
		archiveDest string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the lint engine and publish a report",
		Long: `Runs the configured lint engine against the workspace, classifies its
findings, renders a Markdown report, and publishes the results through
the workflow output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), checkOpts{
				engine:      engineCmd,
				engineArgs:  engineArgs,
				timeout:     timeout,
				ignore:      ignore,
				annotations: annotations,
				sarifOut:    sarifOut,
				archiveDest: archiveDest,
			})
		},
	}

	cmd.Flags().StringVar(&engineCmd, "engine", "", "Lint engine binary (default: from .lintwire.yml, then theme-check)")
	cmd.Flags().StringArrayVar(&engineArgs, "engine-arg", nil, "Extra argument passed to the engine (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Engine timeout (default: from .lintwire.yml, then 5m)")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "Workspace glob whose offenses are dropped (repeatable)")
	cmd.Flags().BoolVar(&annotations, "annotations", false, "Emit workflow annotations for each offense")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write findings as SARIF 2.1.0 to this path")
	cmd.Flags().StringVar(&archiveDest, "archive", "", "Archive the report (directory, s3://bucket/prefix, or gs://bucket/prefix)")

	return cmd
}

type checkOpts struct {
	engine      string
	engineArgs  []string
	timeout     time.Duration
	ignore      []string
	annotations bool
	sarifOut    string
	archiveDest string
}

func runCheck(ctx context.Context, opts checkOpts) error {
	log, err := logging.New(verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	rc, err := config.FromEnv()
	if err != nil {
		return err
	}

	cfg, err := loadWorkspaceConfig(rc.WorkspaceDir)
	if err != nil {
		return err
	}

	// Flags win over .lintwire.yml, which wins over built-in defaults.
	engineCmd := firstNonEmpty(opts.engine, cfg.Engine.Command)
	engineArgs := cfg.Engine.Args
	if len(opts.engineArgs) > 0 {
		engineArgs = opts.engineArgs
	}
	timeout := time.Duration(cfg.Engine.Timeout)
	if opts.timeout > 0 {
		timeout = opts.timeout
	}
	ignore := cfg.Ignore
	if len(opts.ignore) > 0 {
		ignore = opts.ignore
	}
	annotations := opts.annotations || cfg.Report.Annotations
	archiveDest := firstNonEmpty(opts.archiveDest, cfg.Archive.Destination)

	// Setup checks run before the engine so a broken destination or a
	// missing binary aborts without publishing anything.
	pub := &outputs.Publisher{Path: rc.OutputPath, Log: log}
	if err := pub.Check(); err != nil {
		return err
	}

	runner := &engine.Runner{
		Command:      engineCmd,
		Args:         engineArgs,
		WorkspaceDir: rc.WorkspaceDir,
		Timeout:      timeout,
		Log:          log,
	}
	if err := runner.Check(); err != nil {
		return err
	}

	if err := lint.ValidateIgnorePatterns(ignore); err != nil {
		return err
	}

	renderer := &report.Renderer{
		PRNumber:     rc.PRNumber,
		WorkspaceDir: rc.WorkspaceDir,
		RepoURL:      rc.RepoURL,
		CommitSHA:    rc.CommitSHA,
		RunID:        rc.RunID,
		Log:          log,
	}

	fmt.Fprintf(os.Stderr, "Running %s...\n", engineCmd)
	offenses, runErr := runner.Run(ctx)
	if runErr != nil {
		return publishFailure(pub, renderer, runErr, log)
	}

	kept := lint.FilterIgnored(offenses, rc.WorkspaceDir, ignore)
	c := lint.Classify(kept)
	log.Debug("classified offenses",
		zap.Int("reported", len(offenses)),
		zap.Int("after_ignore", len(kept)),
		zap.Int("errors", c.ErrorCount()),
		zap.Int("warnings", c.WarningCount()))

	printSummary(os.Stderr, c, rc.WorkspaceDir)

	rep := renderer.Render(c)
	reportFile, writeErr := outputs.WriteReportFile(rep.Body)
	if writeErr != nil {
		log.Warn("writing report file", zap.Error(writeErr))
	}
	pub.Publish(rep, reportFile)

	// A report that could not be persisted forces a failing exit even
	// on a clean lint run.
	failed := writeErr != nil || lint.ShouldFail(rep.ErrorCount, rep.WarningCount, rc.FailOnWarnings)

	// Extras. None of these change the published counts or the exit
	// decision; their failures are logged and swallowed.
	if annotations {
		report.EmitAnnotations(os.Stdout, c, rc.WorkspaceDir)
	}
	if opts.sarifOut != "" {
		if err := sarif.Export(opts.sarifOut, c, rc.WorkspaceDir, version); err != nil {
			log.Warn("sarif export failed", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "SARIF written to %s\n", opts.sarifOut)
		}
	}
	if archiveDest != "" {
		archiveReport(ctx, archiveDest, rc, rep, log)
	}
	if cfg.History.DSN != "" {
		recordHistory(ctx, cfg.History.DSN, rc, rep, failed, log)
	}

	if writeErr != nil {
		return fmt.Errorf("publishing report: %w", writeErr)
	}
	if failed {
		return fmt.Errorf("lint found %d error(s), %d warning(s)", rep.ErrorCount, rep.WarningCount)
	}
	return nil
}

// publishFailure publishes a failure report so the workflow comment
// explains what went wrong, then returns the run error for the exit
// decision.
func publishFailure(pub *outputs.Publisher, renderer *report.Renderer, runErr error, log *zap.Logger) error {
	rep := renderer.Failure(runErr)

	reportFile, err := outputs.WriteReportFile(rep.Body)
	if err != nil {
		log.Warn("writing failure report file", zap.Error(err))
		reportFile = ""
	}
	pub.Publish(rep, reportFile)

	return fmt.Errorf("lint run failed: %w", runErr)
}

// archiveReport stores the rendered report body. Failures are logged
// and otherwise ignored.
func archiveReport(ctx context.Context, dest string, rc config.RunContext, rep report.Report, log *zap.Logger) {
	store, err := archive.New(ctx, dest)
	if err != nil {
		log.Warn("archive unavailable", zap.String("destination", dest), zap.Error(err))
		return
	}

	name := rc.RunID
	if name == "" {
		name = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	key := path.Join(rc.PRNumber, name+".md")

	if err := store.PutReport(ctx, key, []byte(rep.Body)); err != nil {
		log.Warn("archiving report", zap.String("key", key), zap.Error(err))
		return
	}
	log.Debug("report archived", zap.String("destination", dest), zap.String("key", key))
}

// recordHistory inserts the run into Postgres. Failures are logged and
// otherwise ignored.
func recordHistory(ctx context.Context, dsn string, rc config.RunContext, rep report.Report, failed bool, log *zap.Logger) {
	db, err := history.Open(dsn)
	if err != nil {
		log.Warn("history unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	_, err = history.NewService(db).RecordRun(ctx, history.Run{
		PRNumber:     rc.PRNumber,
		CommitSHA:    rc.CommitSHA,
		RunID:        rc.RunID,
		ErrorCount:   rep.ErrorCount,
		WarningCount: rep.WarningCount,
		Failed:       failed,
	})
	if err != nil {
		log.Warn("recording run history", zap.Error(err))
	}
}

func loadWorkspaceConfig(wsRoot string) (*config.Config, error) {
	cfgFile := config.FindConfigFile(wsRoot)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
