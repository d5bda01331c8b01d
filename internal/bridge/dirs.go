package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var nowFunc = time.Now

// EnsureDirs provisions the shared exchange directories. Idempotent.
func EnsureDirs(dataDir string) error {
	for _, sub := range []string{"input", "output", "temp"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create %s dir: %w", sub, err)
		}
	}
	return nil
}
