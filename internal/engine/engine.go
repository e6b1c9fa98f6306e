// Package engine provides the core business logic for depmode operations.
//
// The engine package acts as the orchestration layer between CLI commands
// and the leaf packages. It coordinates workspace location, dependency
// discovery, mode detection, manifest rewriting, and lock-file
// synchronization.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Status: Reports the current dependency mode of a workspace
//   - Switch: Converts internal dependencies between local and remote mode
//   - Bump: Raises the workspace version across the root manifest
package engine

import (
	"os"

	"github.com/danieljhkim/depmode/internal/cargo"
	"github.com/danieljhkim/depmode/internal/config"
	"github.com/danieljhkim/depmode/internal/fsops"
)

// Engine orchestrates all depmode operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	runner cargo.Runner
	cfg    *config.Config
}

// New creates a new Engine with the given dependencies. A nil runner makes
// every operation build the real runner from the loaded configuration, and
// a nil cfg makes every operation load the configuration from the
// workspace root; tests inject fixed values instead.
func New(fs fsops.FS, runner cargo.Runner, cfg *config.Config) *Engine {
	return &Engine{
		fs:     fs,
		runner: runner,
		cfg:    cfg,
	}
}

// loadConfig resolves the configuration for the workspace rooted at root.
func (e *Engine) loadConfig(root string) (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	return config.Load(root)
}

// lockRunner resolves the lock synchronizer for the given configuration.
func (e *Engine) lockRunner(cfg *config.Config) cargo.Runner {
	if e.runner != nil {
		return e.runner
	}
	return cargo.NewRealRunner(cfg.Lock.Command)
}

// fileMode returns the permissions to write path with, preserving the
// existing mode when the file can be inspected.
func (e *Engine) fileMode(path string) os.FileMode {
	if info, err := e.fs.Lstat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
