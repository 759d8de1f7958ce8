package store

import (
	"os"
	"path/filepath"
)

// DefaultDBFileName is the SQLite file used when no connection string is given.
const DefaultDBFileName = "runs.db"

// DefaultDBFilePath returns the default SQLite database location under the
// user config directory, falling back to the working directory when the
// config directory cannot be resolved.
func DefaultDBFilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return DefaultDBFileName
	}

	dir := filepath.Join(configDir, "lintscore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DefaultDBFileName
	}
	return filepath.Join(dir, DefaultDBFileName)
}
