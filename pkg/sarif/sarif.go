// Package sarif serializes classified offenses as SARIF 2.1.0 so code
// scanning uploads and editors can consume a run's results.
package sarif

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lintwire/lintwire/pkg/lint"
)

// Log is the top-level SARIF document.
type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

// Run is a single tool invocation.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool identifies the producing tool.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver names the tool and its version.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Result is one finding.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error or warning
	Locations []Location `json:"locations"`
}

// Message wraps the finding text.
type Message struct {
	Text string `json:"text"`
}

// Location wraps a physical location.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation is a file plus region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation is the file URI.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is the position within the file. SARIF regions are 1-based.
type Region struct {
	StartLine int `json:"startLine"`
}

const schemaURL = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"

// Export writes a SARIF document for the classified offenses.
func Export(path string, c lint.Classified, workspaceDir, version string) error {
	results := make([]Result, 0, c.ErrorCount()+c.WarningCount())
	for _, o := range c.Errors {
		results = append(results, toResult(o, "error", workspaceDir))
	}
	for _, o := range c.Warnings {
		results = append(results, toResult(o, "warning", workspaceDir))
	}

	doc := Log{
		Version: "2.1.0",
		Schema:  schemaURL,
		Runs: []Run{
			{
				Tool:    Tool{Driver: Driver{Name: "lintwire", Version: version}},
				Results: results,
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling sarif: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sarif: %w", err)
	}
	return nil
}

func toResult(o lint.Offense, level string, workspaceDir string) Result {
	loc := lint.ResolveLocation(o.URI, workspaceDir)

	startLine := o.Start.Line
	if startLine <= 0 {
		startLine = 1
	}

	return Result{
		RuleID:  o.Check,
		Level:   level,
		Message: Message{Text: o.Message},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: loc.Path},
					Region:           Region{StartLine: startLine},
				},
			},
		},
	}
}
