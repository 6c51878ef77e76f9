package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lintwire/lintwire/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		prNumber string
		dsn      string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded lint runs for a pull request",
		Long:  `Lists runs recorded in Postgres by previous check invocations, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), historyOpts{
				prNumber: prNumber,
				dsn:      dsn,
				limit:    limit,
			})
		},
	}

	cmd.Flags().StringVar(&prNumber, "pr", "", "Pull request number (required)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN (default: from .lintwire.yml)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	_ = cmd.MarkFlagRequired("pr")

	return cmd
}

type historyOpts struct {
	prNumber string
	dsn      string
	limit    int
}

func runHistory(ctx context.Context, opts historyOpts) error {
	dsn := opts.dsn
	if dsn == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg, err := loadWorkspaceConfig(cwd)
		if err != nil {
			return err
		}
		dsn = cfg.History.DSN
	}
	if dsn == "" {
		return fmt.Errorf("no history database configured: pass --dsn or set history.dsn in .lintwire.yml")
	}

	db, err := history.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := history.NewService(db).ListRunsByPR(ctx, opts.prNumber, opts.limit)
	if err != nil {
		return err
	}

	printRuns(os.Stdout, opts.prNumber, runs)
	return nil
}

func printRuns(w io.Writer, prNumber string, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintf(w, "No recorded runs for PR #%s.\n", prNumber)
		return
	}

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Lint runs for PR #%s", prNumber)))
	for _, r := range runs {
		status := colored("pass", colorGreen)
		if r.Failed {
			status = colored("fail", colorRed)
		}
		fmt.Fprintf(w, "  %s  %s  %d error(s), %d warning(s)  commit %s  run %s\n",
			r.CreatedAt.Format(time.RFC3339), status,
			r.ErrorCount, r.WarningCount, shortSHA(r.CommitSHA), r.RunID)
	}
}

func shortSHA(sha string) string {
	if sha == "" {
		return "unknown"
	}
	return sha[:minInt(7, len(sha))]
}
