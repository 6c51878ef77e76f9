package lint

// Classify partitions offenses into errors and warnings, preserving
// encounter order within each class. Offenses with any other severity
// are dropped without being counted.
func Classify(offenses []Offense) Classified {
	var c Classified
	for _, o := range offenses {
		switch o.Severity {
		case SeverityError:
			c.Errors = append(c.Errors, o)
		case SeverityWarning:
			c.Warnings = append(c.Warnings, o)
		}
	}
	return c
}

// ShouldFail reports whether a run with the given counts must exit
// non-zero. Errors always fail the run; warnings fail it only when
// failOnWarnings is set.
func ShouldFail(errorCount, warningCount int, failOnWarnings bool) bool {
	if errorCount > 0 {
		return true
	}
	return failOnWarnings && warningCount > 0
}
