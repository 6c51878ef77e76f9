package outputs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// WriteReportFile writes the report body to a fresh file in the OS temp
// directory and returns its path. The name embeds a timestamp and a
// UUID so concurrent runs on one runner never collide.
func WriteReportFile(body string) (string, error) {
	name := fmt.Sprintf("lintwire-report-%d-%s.md", time.Now().UnixNano(), uuid.New().String())
	path := filepath.Join(os.TempDir(), name)

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}
	return path, nil
}
