// Package discover identifies which dependencies of a workspace are
// internal, meaning they resolve to member crates of the workspace itself.
package discover

import (
	"path"
	"sort"
	"strings"

	"github.com/danieljhkim/depmode/internal/manifest"
)

// Set is an unordered collection of internal dependency names.
type Set map[string]struct{}

// NewSet returns a set containing the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Internal returns the names of the workspace-internal dependencies. Two
// signals are unioned:
//
//  1. Entries in the root [workspace.dependencies] table that point a path
//     into the members directory, or whose name carries the configured
//     internal prefix.
//  2. The declared package name of each member crate. Nil entries stand
//     for members whose manifest did not parse and are skipped.
//
// With an empty prefix the root name signal is disabled, since it would
// match every third-party dependency, while every member's self-declared
// name still counts: a crate living in the members directory is a member.
func Internal(root *manifest.Manifest, members []*manifest.Manifest, membersDir, prefix string) Set {
	set := NewSet()

	if root != nil && root.Workspace != nil {
		for name, dep := range root.Workspace.Dependencies {
			switch {
			case dep.Path != "":
				if pathWithin(dep.Path, membersDir) {
					set.Add(name)
				}
			case prefix != "" && strings.HasPrefix(name, prefix):
				set.Add(name)
			}
		}
	}

	for _, m := range members {
		if m == nil || m.Package == nil {
			continue
		}
		name := m.Package.Name
		if name == "" {
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			set.Add(name)
		}
	}

	return set
}

// pathWithin reports whether the manifest path p points inside dir.
// Manifest paths are slash-separated regardless of platform.
func pathWithin(p, dir string) bool {
	p = path.Clean(p)
	return p == dir || strings.HasPrefix(p, dir+"/")
}
