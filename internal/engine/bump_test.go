package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/depmode/internal/cargo"
	"github.com/danieljhkim/depmode/internal/config"
	"github.com/danieljhkim/depmode/internal/fsops"
	"github.com/danieljhkim/depmode/internal/mode"
	"github.com/danieljhkim/depmode/internal/version"
)

func TestBump_Patch(t *testing.T) {
	root := newWorkspace(t)
	eng, runner := newTestEngine(t)

	result, err := eng.Bump(context.Background(), &BumpRequest{CWD: root, Level: version.Patch})
	if err != nil {
		t.Fatalf("Bump() error = %v", err)
	}
	if result.From != "1.2.0" || result.To != "1.2.1" {
		t.Errorf("From/To = %s/%s, want 1.2.0/1.2.1", result.From, result.To)
	}

	rootContent := readFile(t, filepath.Join(root, "Cargo.toml"))
	if !strings.Contains(rootContent, "version = \"1.2.1\"\n") {
		t.Errorf("workspace version not bumped:\n%s", rootContent)
	}
	if !strings.Contains(rootContent, `dep-a = { version = "1.2.1" }`) {
		t.Errorf("internal dependency version not bumped:\n%s", rootContent)
	}
	if !strings.Contains(rootContent, `serde = "1.0"`) {
		t.Errorf("external dependency was touched:\n%s", rootContent)
	}

	// Member manifests are not bumped; they inherit through the workspace.
	if got := readFile(t, filepath.Join(root, "crates", "crate-b", "Cargo.toml")); got != crateBManifest {
		t.Errorf("member manifest changed:\n%s", got)
	}

	if len(runner.Calls) != 1 || runner.Calls[0] != "sync-workspace:"+root {
		t.Errorf("runner.Calls = %v, want one workspace-scoped sync", runner.Calls)
	}
}

func TestBump_PreservesMode(t *testing.T) {
	root := newWorkspace(t)
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.Switch(ctx, &SwitchRequest{CWD: root, Target: mode.Local}); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Bump(ctx, &BumpRequest{CWD: root, Level: version.Minor}); err != nil {
		t.Fatal(err)
	}

	rootContent := readFile(t, filepath.Join(root, "Cargo.toml"))
	if !strings.Contains(rootContent, `dep-a = { version = "1.3.0", path = "crates/dep-a" }`) {
		t.Errorf("bump lost the local path:\n%s", rootContent)
	}

	status, err := eng.Status(ctx, &StatusRequest{CWD: root})
	if err != nil {
		t.Fatal(err)
	}
	if status.Mode != mode.Local {
		t.Errorf("mode after bump = %v, want local", status.Mode)
	}
	if status.Version != "1.3.0" {
		t.Errorf("version after bump = %q, want 1.3.0", status.Version)
	}
}

func TestBump_DryRun(t *testing.T) {
	root := newWorkspace(t)
	eng, runner := newTestEngine(t)

	result, err := eng.Bump(context.Background(), &BumpRequest{CWD: root, Level: version.Major, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.To != "2.0.0" {
		t.Errorf("To = %q, want 2.0.0", result.To)
	}
	if got := readFile(t, filepath.Join(root, "Cargo.toml")); got != rootRemote {
		t.Error("dry run wrote to disk")
	}
	if len(runner.Calls) != 0 {
		t.Error("dry run ran the lock sync")
	}
}

func TestBump_LockFailureIsWarning(t *testing.T) {
	root := newWorkspace(t)
	runner := &cargo.FakeRunner{Err: errors.New("offline")}
	eng := New(fsops.NewRealFS(), runner, config.Default())

	result, err := eng.Bump(context.Background(), &BumpRequest{CWD: root, Level: version.Patch})
	if err != nil {
		t.Fatalf("lock failure must not fail the bump: %v", err)
	}
	if result.LockWarning == "" {
		t.Error("expected a lock warning")
	}
}

func TestBump_InvalidVersionIsFatal(t *testing.T) {
	root := newWorkspace(t)
	content := strings.Replace(rootRemote, `version = "1.2.0"`, `version = "one.two"`, 1)
	writeFile(t, filepath.Join(root, "Cargo.toml"), content)

	eng, _ := newTestEngine(t)
	_, err := eng.Bump(context.Background(), &BumpRequest{CWD: root, Level: version.Patch})
	if err == nil {
		t.Fatal("expected error for a malformed workspace version")
	}
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("error %T is not a Diagnostic", err)
	}
}
