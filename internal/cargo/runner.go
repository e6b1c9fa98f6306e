// Package cargo shells out to the cargo binary for lock-file maintenance.
package cargo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// syncTimeout bounds a lock synchronization run; cargo can hang on a
// broken registry mirror.
const syncTimeout = 5 * time.Minute

// Runner synchronizes the lock file after manifest declarations change.
type Runner interface {
	// Sync refreshes the lock file of the workspace rooted at dir.
	Sync(ctx context.Context, dir string) error

	// SyncWorkspace refreshes only the workspace members' lock entries.
	SyncWorkspace(ctx context.Context, dir string) error
}

// RealRunner executes the configured command with os/exec.
type RealRunner struct {
	command []string
}

// NewRealRunner returns a runner for the given argv.
func NewRealRunner(command []string) *RealRunner {
	if len(command) == 0 {
		command = []string{"cargo", "update"}
	}
	return &RealRunner{command: command}
}

// Sync refreshes the lock file of the workspace rooted at dir.
func (r *RealRunner) Sync(ctx context.Context, dir string) error {
	return r.run(ctx, dir, r.command)
}

// SyncWorkspace refreshes only the workspace members' lock entries.
func (r *RealRunner) SyncWorkspace(ctx context.Context, dir string) error {
	argv := append(append([]string{}, r.command...), "--workspace")
	return r.run(ctx, dir, argv)
}

func (r *RealRunner) run(ctx context.Context, dir string, argv []string) error {
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", argv[0], err)
	}

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			return fmt.Errorf("%s failed: %w\n%s", strings.Join(argv, " "), err, msg)
		}
		return fmt.Errorf("%s failed: %w", strings.Join(argv, " "), err)
	}

	return nil
}

// FakeRunner records sync invocations for tests.
type FakeRunner struct {
	// Calls records each invocation as "sync:<dir>" or "sync-workspace:<dir>".
	Calls []string

	// Err, when set, is returned from every call.
	Err error
}

// Sync records the call and returns the injected error.
func (f *FakeRunner) Sync(ctx context.Context, dir string) error {
	f.Calls = append(f.Calls, "sync:"+dir)
	return f.Err
}

// SyncWorkspace records the call and returns the injected error.
func (f *FakeRunner) SyncWorkspace(ctx context.Context, dir string) error {
	f.Calls = append(f.Calls, "sync-workspace:"+dir)
	return f.Err
}
