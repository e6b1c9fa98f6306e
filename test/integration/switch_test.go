package integration

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/mode"
)

func TestFullSwitchWorkflow(t *testing.T) {
	root := buildWorkspace(t)
	eng, runner := setupEngine(t)
	ctx := context.Background()

	// Fresh checkout is remote.
	status, err := eng.Status(ctx, &engine.StatusRequest{CWD: root})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Mode != mode.Remote {
		t.Fatalf("initial mode = %v, want remote", status.Mode)
	}
	if status.Version != "0.3.1" {
		t.Fatalf("version = %q, want 0.3.1", status.Version)
	}
	want := []string{"amalgam", "amalgam-core", "amalgam-parser"}
	if !reflect.DeepEqual(status.InternalDeps, want) {
		t.Fatalf("InternalDeps = %v, want %v", status.InternalDeps, want)
	}

	// Toggle lands on local.
	result, err := eng.Switch(ctx, &engine.SwitchRequest{CWD: root})
	if err != nil {
		t.Fatalf("Switch() error = %v", err)
	}
	if result.From != mode.Remote || result.To != mode.Local {
		t.Fatalf("From/To = %v/%v", result.From, result.To)
	}

	rootContent := readFile(t, filepath.Join(root, "Cargo.toml"))
	for _, wantLine := range []string{
		`amalgam-core = { version = "0.3.1", path = "crates/amalgam-core" }`,
		`amalgam-parser = { version = "0.3.1", path = "crates/amalgam-parser" }`,
		// Directory override routes the cli crate.
		`amalgam = { version = "0.3.1", path = "crates/amalgam-cli" }`,
	} {
		if !strings.Contains(rootContent, wantLine) {
			t.Errorf("root manifest missing %q:\n%s", wantLine, rootContent)
		}
	}

	// Hand formatting around the declarations survives.
	for _, keep := range []string{
		"# amalgam workspace\n",
		"# internal crates\n",
		"# third party\n",
		`serde = { version = "1.0", features = ["derive"] }`,
		`tokio = "1.38"`,
		`edition = "2021"`,
	} {
		if !strings.Contains(rootContent, keep) {
			t.Errorf("root manifest lost %q:\n%s", keep, rootContent)
		}
	}

	parser := readFile(t, filepath.Join(root, "crates", "amalgam-parser", "Cargo.toml"))
	if got := strings.Count(parser, `amalgam-core = { version = "0.3.1", path = "../amalgam-core" }`); got != 2 {
		t.Errorf("parser deps and dev-deps not both local (%d):\n%s", got, parser)
	}

	cli := readFile(t, filepath.Join(root, "crates", "amalgam-cli", "Cargo.toml"))
	if !strings.Contains(cli, `amalgam-parser = { version = "0.3.1", path = "../amalgam-parser" }`) {
		t.Errorf("cli manifest not converted:\n%s", cli)
	}

	// The lock was synchronized once.
	if len(runner.Calls) != 1 || runner.Calls[0] != "sync:"+root {
		t.Errorf("runner.Calls = %v", runner.Calls)
	}

	// Detection agrees, and a re-run is a no-op.
	status, err = eng.Status(ctx, &engine.StatusRequest{CWD: root})
	if err != nil {
		t.Fatal(err)
	}
	if status.Mode != mode.Local {
		t.Fatalf("mode after switch = %v, want local", status.Mode)
	}

	again, err := eng.Switch(ctx, &engine.SwitchRequest{CWD: root, Target: mode.Local})
	if err != nil {
		t.Fatal(err)
	}
	if !again.NoOp {
		t.Error("re-running the switch must be a no-op")
	}
	if len(runner.Calls) != 1 {
		t.Error("no-op switch ran the lock sync")
	}

	// Back to remote for publishing.
	result, err = eng.Switch(ctx, &engine.SwitchRequest{CWD: root, Target: mode.Remote})
	if err != nil {
		t.Fatal(err)
	}
	if result.To != mode.Remote {
		t.Fatalf("To = %v", result.To)
	}
	rootContent = readFile(t, filepath.Join(root, "Cargo.toml"))
	if strings.Contains(rootContent, "crates/amalgam") {
		t.Errorf("remote manifest still carries member paths:\n%s", rootContent)
	}
	parser = readFile(t, filepath.Join(root, "crates", "amalgam-parser", "Cargo.toml"))
	if got := strings.Count(parser, "amalgam-core = \"0.3.1\"\n"); got != 2 {
		t.Errorf("parser not restored to bare versions (%d):\n%s", got, parser)
	}
}

func TestInterruptedSwitchIsResumable(t *testing.T) {
	root := buildWorkspace(t)
	eng, _ := setupEngine(t)
	ctx := context.Background()

	// Simulate an interrupted run: one member converted, the rest remote.
	path := filepath.Join(root, "crates", "amalgam-parser", "Cargo.toml")
	content := strings.ReplaceAll(readFile(t, path),
		"amalgam-core = \"0.3.1\"",
		`amalgam-core = { version = "0.3.1", path = "../amalgam-core" }`)
	writeFile(t, path, content)

	status, err := eng.Status(ctx, &engine.StatusRequest{CWD: root})
	if err != nil {
		t.Fatal(err)
	}
	if status.Mode != mode.Mixed {
		t.Fatalf("mode = %v, want mixed", status.Mode)
	}

	// Re-running the switch repairs the tree to a single mode.
	if _, err := eng.Switch(ctx, &engine.SwitchRequest{CWD: root, Target: mode.Local}); err != nil {
		t.Fatal(err)
	}
	status, err = eng.Status(ctx, &engine.StatusRequest{CWD: root})
	if err != nil {
		t.Fatal(err)
	}
	if status.Mode != mode.Local {
		t.Fatalf("mode after repair = %v, want local", status.Mode)
	}
}

func TestStaleRootManifestStillDiscovers(t *testing.T) {
	root := buildWorkspace(t)
	eng, _ := setupEngine(t)

	// A brand new crate exists on disk but the root manifest has not been
	// updated yet; discovery must still see it.
	writeFile(t, filepath.Join(root, "crates", "amalgam-codegen", "Cargo.toml"), `[package]
name = "amalgam-codegen"
version = { workspace = true }
`)

	status, err := eng.Status(context.Background(), &engine.StatusRequest{CWD: root})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, dep := range status.InternalDeps {
		if dep == "amalgam-codegen" {
			found = true
		}
	}
	if !found {
		t.Errorf("InternalDeps = %v, want amalgam-codegen included", status.InternalDeps)
	}
}
