package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lintwire/lintwire/internal/history"
	"github.com/lintwire/lintwire/pkg/lint"
)

func summaryInput() lint.Classified {
	return lint.Classified{
		Errors: []lint.Offense{
			{
				URI:      "file:///workspace/sections/header.liquid",
				Start:    lint.Position{Line: 12, Character: 4},
				Severity: lint.SeverityError,
				Message:  "Unknown tag 'includ'",
				Check:    "SyntaxError",
			},
		},
		Warnings: []lint.Offense{
			{
				URI:      "file:///workspace/snippets/price.liquid",
				Start:    lint.Position{Line: 3, Character: 0},
				Severity: lint.SeverityWarning,
				Message:  "Unused assign",
				Check:    "UnusedAssign",
			},
		},
	}
}

func TestPrintSummary_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	printSummary(&buf, summaryInput(), "/workspace")

	output := buf.String()
	if !strings.Contains(output, "1 error(s), 1 warning(s)") {
		t.Errorf("expected counts header, got:\n%s", output)
	}
	if !strings.Contains(output, "sections/header.liquid:12 Unknown tag 'includ'") {
		t.Errorf("expected error line, got:\n%s", output)
	}
	if !strings.Contains(output, "snippets/price.liquid:3 Unused assign") {
		t.Errorf("expected warning line, got:\n%s", output)
	}
}

func TestPrintSummary_CleanRun(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	printSummary(&buf, lint.Classified{}, "/workspace")

	if !strings.Contains(buf.String(), "No offenses found.") {
		t.Errorf("expected clean-run message, got:\n%s", buf.String())
	}
}

func TestPrintSummary_MessageFallsBackToCheck(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	c := lint.Classified{
		Errors: []lint.Offense{
			{URI: "file:///workspace/a.liquid", Start: lint.Position{Line: 1}, Check: "MissingTemplate"},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, c, "/workspace")

	if !strings.Contains(buf.String(), "a.liquid:1 MissingTemplate") {
		t.Errorf("expected check name as message fallback, got:\n%s", buf.String())
	}
}

func TestPrintSummary_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	printSummary(&buf, summaryInput(), "/workspace")

	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestPrintRuns(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	runs := []history.Run{
		{
			PRNumber:     "42",
			CommitSHA:    "abc123def456",
			RunID:        "987654",
			ErrorCount:   2,
			WarningCount: 1,
			Failed:       true,
			CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			PRNumber:  "42",
			CommitSHA: "def456abc789",
			RunID:     "987000",
			CreatedAt: time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	printRuns(&buf, "42", runs)

	output := buf.String()
	if !strings.Contains(output, "Lint runs for PR #42") {
		t.Errorf("expected header, got:\n%s", output)
	}
	if !strings.Contains(output, "fail") || !strings.Contains(output, "pass") {
		t.Errorf("expected pass and fail statuses, got:\n%s", output)
	}
	if !strings.Contains(output, "2 error(s), 1 warning(s)") {
		t.Errorf("expected counts, got:\n%s", output)
	}
	if !strings.Contains(output, "commit abc123d") {
		t.Errorf("expected short sha, got:\n%s", output)
	}
}

func TestPrintRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, "7", nil)

	if !strings.Contains(buf.String(), "No recorded runs for PR #7.") {
		t.Errorf("expected empty message, got:\n%s", buf.String())
	}
}
