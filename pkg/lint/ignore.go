package lint

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidateIgnorePatterns checks that every pattern is a valid doublestar
// glob. Called before the engine runs so a bad pattern fails the run
// early instead of after a full lint pass.
func ValidateIgnorePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

// FilterIgnored drops offenses whose workspace-relative path matches any
// of the glob patterns ("vendor/**", "**/*.min.liquid"). Offenses
// without a derivable relative path are always kept.
func FilterIgnored(offenses []Offense, workspaceDir string, patterns []string) []Offense {
	if len(patterns) == 0 {
		return offenses
	}

	var kept []Offense
	for _, o := range offenses {
		loc := ResolveLocation(o.URI, workspaceDir)
		if loc.Relative && matchesAny(patterns, loc.Path) {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		// Patterns are validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
