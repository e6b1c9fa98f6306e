package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/depmode/internal/cargo"
	"github.com/danieljhkim/depmode/internal/config"
	"github.com/danieljhkim/depmode/internal/fsops"
)

const rootRemote = `[workspace]
members = ["crates/*"]

[workspace.package]
version = "1.2.0"

[workspace.dependencies]
dep-a = { version = "1.2.0" }
serde = "1.0"
`

const depAManifest = `[package]
name = "dep-a"
version = { workspace = true }

[dependencies]
serde = { workspace = true }
`

const crateBManifest = `[package]
name = "crate-b"
version = { workspace = true }

[dependencies]
dep-a = "1.2.0"
serde = { workspace = true }

[dev-dependencies]
dep-a = "1.2.0"
`

// newWorkspace builds the two-crate fixture on disk in remote mode and
// returns its root.
func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), rootRemote)
	writeFile(t, filepath.Join(root, "crates", "dep-a", "Cargo.toml"), depAManifest)
	writeFile(t, filepath.Join(root, "crates", "crate-b", "Cargo.toml"), crateBManifest)
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

// newTestEngine wires the engine with the real filesystem, a fake lock
// runner, and a fixed default configuration.
func newTestEngine(t *testing.T) (*Engine, *cargo.FakeRunner) {
	t.Helper()
	runner := &cargo.FakeRunner{}
	return New(fsops.NewRealFS(), runner, config.Default()), runner
}
