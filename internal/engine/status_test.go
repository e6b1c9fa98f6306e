package engine

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danieljhkim/depmode/internal/mode"
)

func TestStatus_RemoteWorkspace(t *testing.T) {
	root := newWorkspace(t)
	eng, _ := newTestEngine(t)

	result, err := eng.Status(context.Background(), &StatusRequest{CWD: root})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if result.Root != root {
		t.Errorf("Root = %q, want %q", result.Root, root)
	}
	if result.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", result.Version)
	}
	if result.Mode != mode.Remote {
		t.Errorf("Mode = %v, want remote", result.Mode)
	}
	if want := []string{"crate-b", "dep-a"}; !reflect.DeepEqual(result.InternalDeps, want) {
		t.Errorf("InternalDeps = %v, want %v", result.InternalDeps, want)
	}
	if len(result.Files) != 3 {
		t.Errorf("Files = %d entries, want 3", len(result.Files))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestStatus_FromNestedDirectory(t *testing.T) {
	root := newWorkspace(t)
	eng, _ := newTestEngine(t)

	nested := filepath.Join(root, "crates", "crate-b")
	result, err := eng.Status(context.Background(), &StatusRequest{CWD: nested})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if result.Root != root {
		t.Errorf("Root = %q, want %q", result.Root, root)
	}
}

func TestStatus_MixedWorkspace(t *testing.T) {
	root := newWorkspace(t)
	eng, _ := newTestEngine(t)

	// Convert crate-b by hand, leaving the root remote.
	path := filepath.Join(root, "crates", "crate-b", "Cargo.toml")
	content := strings.ReplaceAll(readFile(t, path),
		`dep-a = "1.2.0"`,
		`dep-a = { version = "1.2.0", path = "../dep-a" }`)
	writeFile(t, path, content)

	result, err := eng.Status(context.Background(), &StatusRequest{CWD: root})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if result.Mode != mode.Mixed {
		t.Errorf("Mode = %v, want mixed", result.Mode)
	}
}

func TestStatus_UnknownWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[workspace]\nmembers = []\n\n[workspace.package]\nversion = \"0.1.0\"\n")
	writeFile(t, filepath.Join(root, "crates", ".keep"), "")

	eng, _ := newTestEngine(t)
	result, err := eng.Status(context.Background(), &StatusRequest{CWD: root})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if result.Mode != mode.Unknown {
		t.Errorf("Mode = %v, want unknown", result.Mode)
	}
	if len(result.InternalDeps) != 0 {
		t.Errorf("InternalDeps = %v, want none", result.InternalDeps)
	}
}

func TestStatus_MalformedMemberIsWarning(t *testing.T) {
	root := newWorkspace(t)
	writeFile(t, filepath.Join(root, "crates", "broken", "Cargo.toml"), "[package\nname=")

	eng, _ := newTestEngine(t)
	result, err := eng.Status(context.Background(), &StatusRequest{CWD: root})
	if err != nil {
		t.Fatalf("Status() error = %v, want skip-with-warning", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "broken") {
		t.Errorf("warning %q does not name the bad manifest", result.Warnings[0])
	}
}

func TestStatus_MalformedRootIsFatal(t *testing.T) {
	root := newWorkspace(t)
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[workspace]\nmembers = [\n")

	eng, _ := newTestEngine(t)
	_, err := eng.Status(context.Background(), &StatusRequest{CWD: root})
	if err == nil {
		t.Fatal("expected error for malformed root manifest")
	}
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("error %T is not a Diagnostic", err)
	}
	if len(diag.Suggestions) == 0 {
		t.Error("diagnostic carries no suggestions")
	}
}

func TestStatus_NotAWorkspace(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Status(context.Background(), &StatusRequest{CWD: t.TempDir()})
	if !errors.Is(err, ErrNotAWorkspace) {
		t.Errorf("error = %v, want ErrNotAWorkspace", err)
	}
}
