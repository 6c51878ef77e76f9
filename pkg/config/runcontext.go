package config

import (
	"fmt"
	"os"
)

// RunContext carries the per-run parameters read from the environment.
// It is passed explicitly through the pipeline; nothing consults these
// variables again after startup.
type RunContext struct {
	PRNumber       string // PR_NUMBER, "N/A" when absent
	WorkspaceDir   string // WORKSPACE_PATH, working directory when absent
	OutputPath     string // GITHUB_OUTPUT, required
	RepoURL        string // REPO_URL
	CommitSHA      string // COMMIT_SHA
	RunID          string // RUN_ID
	FailOnWarnings bool   // FAIL_ON_WARNINGS, true only for the literal "true"
}

// FromEnv reads the run context from the environment.
func FromEnv() (RunContext, error) {
	wd, err := os.Getwd()
	if err != nil {
		return RunContext{}, fmt.Errorf("getting working directory: %w", err)
	}

	return RunContext{
		PRNumber:       envOrDefault("PR_NUMBER", "N/A"),
		WorkspaceDir:   envOrDefault("WORKSPACE_PATH", wd),
		OutputPath:     os.Getenv("GITHUB_OUTPUT"),
		RepoURL:        os.Getenv("REPO_URL"),
		CommitSHA:      os.Getenv("COMMIT_SHA"),
		RunID:          os.Getenv("RUN_ID"),
		FailOnWarnings: os.Getenv("FAIL_ON_WARNINGS") == "true",
	}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
