package config

import (
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the state directory
const HomeEnv = "TREEGEN_HOME"

// StateDirName is the per-directory state directory holding config.yaml
const StateDirName = ".treegen"

// ResolveHome returns the treegen state directory for dir.
// Priority order:
//  1. TREEGEN_HOME environment variable (if set)
//  2. <dir>/.treegen
//
// The directory is not created.
func ResolveHome(dir string) string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	return filepath.Join(dir, StateDirName)
}
