package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/depmode/internal/cargo"
	"github.com/danieljhkim/depmode/internal/config"
	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/fsops"
)

// rootManifest is a hand-formatted root manifest the way maintainers write
// them: comments, blank lines, and externals mixed with internal deps.
const rootManifest = `# amalgam workspace
[workspace]
members = ["crates/*"]
resolver = "2"

[workspace.package]
version = "0.3.1"
edition = "2021"
license = "MIT"

[workspace.dependencies]
# internal crates
amalgam-core = { version = "0.3.1" }
amalgam-parser = { version = "0.3.1" }
amalgam = { version = "0.3.1" }

# third party
serde = { version = "1.0", features = ["derive"] }
tokio = "1.38"
`

const coreManifest = `[package]
name = "amalgam-core"
version = { workspace = true }
edition = { workspace = true }

[dependencies]
serde = { workspace = true }
`

const parserManifest = `[package]
name = "amalgam-parser"
version = { workspace = true }

[dependencies]
amalgam-core = "0.3.1"
serde = { workspace = true }

[dev-dependencies]
amalgam-core = "0.3.1"
`

// The CLI crate lives in a directory that does not match its crate name.
const cliManifest = `[package]
name = "amalgam"
version = { workspace = true }

[dependencies]
amalgam-core = "0.3.1"
amalgam-parser = "0.3.1"
`

// buildWorkspace lays the fixture out on disk and returns its root.
func buildWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), rootManifest)
	writeFile(t, filepath.Join(root, "crates", "amalgam-core", "Cargo.toml"), coreManifest)
	writeFile(t, filepath.Join(root, "crates", "amalgam-parser", "Cargo.toml"), parserManifest)
	writeFile(t, filepath.Join(root, "crates", "amalgam-cli", "Cargo.toml"), cliManifest)
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

// setupEngine wires a real filesystem against a fake lock runner, with the
// amalgam naming convention configured.
func setupEngine(t *testing.T) (*engine.Engine, *cargo.FakeRunner) {
	t.Helper()
	cfg := config.Default()
	cfg.InternalPrefix = "amalgam"
	cfg.DirOverrides = map[string]string{"amalgam": "amalgam-cli"}
	runner := &cargo.FakeRunner{}
	return engine.New(fsops.NewRealFS(), runner, cfg), runner
}
