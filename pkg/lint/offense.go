// Package lint defines the offense data model for lintwire.
// These types are the shared vocabulary across all stages of a run:
// engine invocation, classification, rendering, and publication.
package lint

import "fmt"

// Severity is the integer severity an engine assigns to an offense.
type Severity int

// Severities the classifier understands. Engines may emit other values;
// those offenses are excluded from counts and from the report.
const (
	SeverityError   Severity = 0
	SeverityWarning Severity = 1
)

// String returns a human-readable label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Position is a position within a file as reported by the engine.
// Line values of zero or below mean the engine had no usable position.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Offense is a single finding reported by the engine.
type Offense struct {
	URI      string   `json:"uri"` // file:// URI of the offending file; may be empty
	Start    Position `json:"start"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Check    string   `json:"check"` // rule identifier, e.g. "SyntaxError"
}

// Classified holds offenses partitioned by severity, in engine order.
type Classified struct {
	Errors   []Offense
	Warnings []Offense
}

// ErrorCount returns the number of classified errors.
func (c Classified) ErrorCount() int { return len(c.Errors) }

// WarningCount returns the number of classified warnings.
func (c Classified) WarningCount() int { return len(c.Warnings) }
