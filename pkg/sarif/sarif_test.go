package sarif

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintwire/lintwire/pkg/lint"
)

func TestExport(t *testing.T) {
	c := lint.Classified{
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

	path := filepath.Join(t.TempDir(), "results.sarif")
	if err := Export(path, c, "/workspace", "1.2.3"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sarif file: %v", err)
	}

	var doc Log
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshaling sarif file: %v", err)
	}

	if doc.Version != "2.1.0" {
		t.Errorf("Version = %q, want 2.1.0", doc.Version)
	}
	if doc.Schema == "" {
		t.Error("expected $schema to be set")
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("len(Runs) = %d, want 1", len(doc.Runs))
	}

	run := doc.Runs[0]
	if run.Tool.Driver.Name != "lintwire" {
		t.Errorf("Driver.Name = %q, want lintwire", run.Tool.Driver.Name)
	}
	if run.Tool.Driver.Version != "1.2.3" {
		t.Errorf("Driver.Version = %q, want 1.2.3", run.Tool.Driver.Version)
	}
	if len(run.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(run.Results))
	}

	errRes := run.Results[0]
	if errRes.Level != "error" {
		t.Errorf("Results[0].Level = %q, want error", errRes.Level)
	}
	if errRes.RuleID != "SyntaxError" {
		t.Errorf("Results[0].RuleID = %q, want SyntaxError", errRes.RuleID)
	}
	if errRes.Message.Text != "Unknown tag 'includ'" {
		t.Errorf("Results[0].Message.Text = %q", errRes.Message.Text)
	}
	if got := errRes.Locations[0].PhysicalLocation.ArtifactLocation.URI; got != "sections/header.liquid" {
		t.Errorf("Results[0] URI = %q, want workspace-relative path", got)
	}
	if got := errRes.Locations[0].PhysicalLocation.Region.StartLine; got != 12 {
		t.Errorf("Results[0] StartLine = %d, want 12", got)
	}

	warnRes := run.Results[1]
	if warnRes.Level != "warning" {
		t.Errorf("Results[1].Level = %q, want warning", warnRes.Level)
	}
}

func TestExportClampsZeroLine(t *testing.T) {
	c := lint.Classified{
		Errors: []lint.Offense{
			{URI: "file:///workspace/layout/theme.liquid", Check: "MissingTemplate"},
		},
	}

	path := filepath.Join(t.TempDir(), "results.sarif")
	if err := Export(path, c, "/workspace", "dev"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sarif file: %v", err)
	}

	var doc Log
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshaling sarif file: %v", err)
	}

	if got := doc.Runs[0].Results[0].Locations[0].PhysicalLocation.Region.StartLine; got != 1 {
		t.Errorf("StartLine = %d, want 1 for missing position", got)
	}
}

func TestExportEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.sarif")
	if err := Export(path, lint.Classified{}, "/workspace", "dev"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sarif file: %v", err)
	}

	var doc Log
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshaling sarif file: %v", err)
	}

	if len(doc.Runs) != 1 {
		t.Fatalf("len(Runs) = %d, want 1", len(doc.Runs))
	}
	if len(doc.Runs[0].Results) != 0 {
		t.Errorf("len(Results) = %d, want 0", len(doc.Runs[0].Results))
	}
}
