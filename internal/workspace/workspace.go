// Package workspace locates Cargo workspace roots and enumerates their
// member crates.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/depmode/internal/fsops"
	"github.com/danieljhkim/depmode/internal/manifest"
)

// Workspace describes the on-disk layout of a Cargo workspace.
type Workspace struct {
	// Root is the absolute path of the workspace root directory.
	Root string

	// MembersDir is the directory holding member crates, relative to Root.
	MembersDir string
}

// Member is one crate directory inside the members directory.
type Member struct {
	// Name is the directory name, which is not necessarily the crate name.
	Name string

	// Dir is the absolute path of the member directory.
	Dir string

	// ManifestPath is the absolute path of the member's manifest.
	ManifestPath string
}

// New returns a workspace rooted at root with members under membersDir.
func New(root, membersDir string) *Workspace {
	return &Workspace{Root: root, MembersDir: membersDir}
}

// ManifestPath returns the absolute path of the root manifest.
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.Root, manifest.FileName)
}

// MembersPath returns the absolute path of the members directory.
func (w *Workspace) MembersPath() string {
	return filepath.Join(w.Root, w.MembersDir)
}

// Locate finds the workspace root by walking up from startDir to the nearest
// directory whose manifest declares a [workspace] table.
func Locate(fs fsops.FS, startDir string) (string, error) {
	absPath, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		candidate := filepath.Join(current, manifest.FileName)
		if ok, err := fs.Exists(candidate); err == nil && ok {
			data, err := fs.ReadFile(candidate)
			if err == nil && manifest.DeclaresWorkspace(data) {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached the filesystem root
			return "", fmt.Errorf("no %s declaring [workspace] found", manifest.FileName)
		}
		current = parent
	}
}

// Validate checks that the workspace layout exists on disk.
func (w *Workspace) Validate(fs fsops.FS) error {
	ok, err := fs.Exists(w.ManifestPath())
	if err != nil {
		return fmt.Errorf("failed to check root manifest: %w", err)
	}
	if !ok {
		return fmt.Errorf("root manifest %s not found", w.ManifestPath())
	}

	ok, err = fs.Exists(w.MembersPath())
	if err != nil {
		return fmt.Errorf("failed to check members directory: %w", err)
	}
	if !ok {
		return fmt.Errorf("members directory %s not found", w.MembersPath())
	}

	return nil
}

// Members lists the crates under the members directory. Only direct
// subdirectories containing a manifest count; there is no recursion.
func (w *Workspace) Members(fs fsops.FS) ([]Member, error) {
	entries, err := fs.ReadDir(w.MembersPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read members directory: %w", err)
	}

	var members []Member
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(w.MembersPath(), entry.Name())
		manifestPath := filepath.Join(dir, manifest.FileName)
		ok, err := fs.Exists(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to check member manifest: %w", err)
		}
		if !ok {
			continue
		}
		members = append(members, Member{
			Name:         entry.Name(),
			Dir:          dir,
			ManifestPath: manifestPath,
		})
	}

	return members, nil
}
