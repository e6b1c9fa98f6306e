// Package rewrite performs line-oriented edits on Cargo manifests.
//
// The rewriter never re-serializes TOML. It walks the manifest's lines,
// replaces the declarations it was asked to change with a canonical
// rendering, and passes every other byte through untouched, including
// terminators. Rendering happens fully in memory; callers write the result
// back only when it succeeds, so a manifest is never left half-edited.
package rewrite

import (
	"strings"

	"github.com/danieljhkim/depmode/internal/manifest"
)

// Edit describes one dependency declaration to replace.
type Edit struct {
	// Name is the dependency key as it appears in the manifest.
	Name string

	// Dev restricts the edit to the [dev-dependencies] section. Edits
	// without it apply in every other dependency-bearing section.
	Dev bool

	// Spec is the declaration to write.
	Spec manifest.DependencySpec
}

// Render applies edits to manifest content and returns the new content
// along with the number of lines that actually changed. Rendering an
// already converted manifest returns it byte for byte with a zero count.
//
// A line is eligible for an edit when it sits in a matching
// dependency-bearing section, contains the dependency name as a token, is
// not a comment, and does not inherit the workspace-level value. At most
// one edit consumes a line; the replaced line keeps its terminator.
func Render(content []byte, edits []Edit) ([]byte, int) {
	lines := manifest.SplitLines(content)
	section := manifest.SectionNone
	changed := 0

	var out strings.Builder
	out.Grow(len(content) + 64)

	for _, line := range lines {
		body, terminator := manifest.LineBody(line)

		if name, ok := manifest.HeaderName(body); ok {
			section = manifest.SectionForHeader(name)
			out.WriteString(line)
			continue
		}

		edit, ok := matchEdit(section, body, edits)
		if !ok {
			out.WriteString(line)
			continue
		}

		rendered := edit.Spec.Render(edit.Name)
		out.WriteString(rendered)
		out.WriteString(terminator)
		if rendered != body {
			changed++
		}
	}

	return []byte(out.String()), changed
}

// matchEdit returns the first edit eligible for the line, if any.
func matchEdit(section manifest.Section, body string, edits []Edit) (Edit, bool) {
	if !manifest.DependencyBearing(section) {
		return Edit{}, false
	}
	if manifest.IsComment(body) || manifest.InheritsWorkspace(body) {
		return Edit{}, false
	}

	for _, edit := range edits {
		if edit.Dev != (section == manifest.SectionDevDependencies) {
			continue
		}
		if manifest.HasNameToken(body, edit.Name) {
			return edit, true
		}
	}
	return Edit{}, false
}
