// Package manifest reads Cargo manifests and provides the line-level
// scanning primitives the rest of depmode is built on.
//
// Reading is structural: TOML is decoded into Manifest values for
// discovery and version lookups. Writing never goes through a TOML
// serializer; the rewrite package edits manifests line by line using the
// scanner in this package so that untouched bytes survive a round trip.
package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file name at every level of a workspace.
const FileName = "Cargo.toml"

// Manifest is the decoded view of a Cargo.toml file. Only the tables
// depmode cares about are mapped; everything else is ignored.
type Manifest struct {
	Package         *Package              `toml:"package"`
	Workspace       *Workspace            `toml:"workspace"`
	Dependencies    map[string]Dependency `toml:"dependencies"`
	DevDependencies map[string]Dependency `toml:"dev-dependencies"`
}

// Package is the [package] table of a crate manifest.
type Package struct {
	Name    string            `toml:"name"`
	Version InheritableString `toml:"version"`
}

// Workspace is the [workspace] table of a root manifest.
type Workspace struct {
	Members      []string              `toml:"members"`
	Package      *WorkspacePackage     `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// WorkspacePackage is the [workspace.package] table holding values members
// inherit, most importantly the shared version.
type WorkspacePackage struct {
	Version string `toml:"version"`
}

// Dependency is one decoded dependency value. Cargo allows two spellings,
// a bare version string and an inline table, so decoding goes through
// UnmarshalTOML rather than struct tags.
type Dependency struct {
	// Version is the declared version requirement, empty when absent.
	Version string

	// Path is the local path the declaration points at, empty when absent.
	Path string

	// Workspace marks a declaration that inherits the workspace-level value.
	Workspace bool

	// Bare marks a declaration written as a plain string.
	Bare bool
}

// UnmarshalTOML folds the string-or-table dependency forms into one value.
func (d *Dependency) UnmarshalTOML(value interface{}) error {
	switch v := value.(type) {
	case string:
		d.Version = v
		d.Bare = true
	case map[string]interface{}:
		if s, ok := v["version"].(string); ok {
			d.Version = s
		}
		if s, ok := v["path"].(string); ok {
			d.Path = s
		}
		if b, ok := v["workspace"].(bool); ok {
			d.Workspace = b
		}
	default:
		return fmt.Errorf("unsupported dependency value of type %T", value)
	}
	return nil
}

// InheritableString is a manifest field that is either a literal string or
// inherited from the workspace via { workspace = true }.
type InheritableString struct {
	Value     string
	Workspace bool
}

// UnmarshalTOML accepts both spellings of an inheritable field.
func (s *InheritableString) UnmarshalTOML(value interface{}) error {
	switch v := value.(type) {
	case string:
		s.Value = v
	case map[string]interface{}:
		if b, ok := v["workspace"].(bool); ok {
			s.Workspace = b
		}
	default:
		return fmt.Errorf("unsupported field value of type %T", value)
	}
	return nil
}

// Parse decodes manifest data.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// DeclaresWorkspace reports whether the manifest data contains a
// [workspace] table. It scans headers textually so that a broken manifest
// still identifies a workspace root.
func DeclaresWorkspace(data []byte) bool {
	for _, line := range SplitLines(data) {
		body, _ := LineBody(line)
		name, ok := HeaderName(body)
		if !ok {
			continue
		}
		if name == "workspace" || hasDottedPrefix(name, "workspace") {
			return true
		}
	}
	return false
}

func hasDottedPrefix(name, prefix string) bool {
	return len(name) > len(prefix)+1 && name[:len(prefix)+1] == prefix+"."
}
