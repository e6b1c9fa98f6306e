package rewrite

import (
	"regexp"
	"strings"

	"github.com/danieljhkim/depmode/internal/discover"
	"github.com/danieljhkim/depmode/internal/manifest"
)

var (
	wsVersionLineRe = regexp.MustCompile(`^(\s*version\s*=\s*")[^"]*(")`)
	versionValueRe  = regexp.MustCompile(`((?:^|[^\w-])version\s*=\s*")[^"]*(")`)
	bareValueRe     = regexp.MustCompile(`^(\s*[^=\s]+\s*=\s*")[^"]*(")`)
)

// RenderVersionBump rewrites version values in a root manifest to
// newVersion: the version line under [workspace.package] and the version
// carried by every internal dependency declaration. Unlike Render it edits
// values in place, so a declaration's path and the rest of the line
// survive and a bump never changes the dependency mode.
func RenderVersionBump(content []byte, names discover.Set, newVersion string) ([]byte, int) {
	lines := manifest.SplitLines(content)
	section := manifest.SectionNone
	changed := 0

	var out strings.Builder
	out.Grow(len(content))

	for _, line := range lines {
		body, terminator := manifest.LineBody(line)

		if name, ok := manifest.HeaderName(body); ok {
			section = manifest.SectionForHeader(name)
			out.WriteString(line)
			continue
		}

		replaced := body
		switch {
		case section == manifest.SectionWorkspacePackage && !manifest.IsComment(body):
			if wsVersionLineRe.MatchString(body) {
				replaced = wsVersionLineRe.ReplaceAllString(body, "${1}"+newVersion+"${2}")
			}
		case manifest.DependencyBearing(section) && !manifest.IsComment(body) && !manifest.InheritsWorkspace(body):
			if matchesAny(body, names) {
				switch {
				case manifest.HasVersionKey(body):
					replaced = versionValueRe.ReplaceAllString(body, "${1}"+newVersion+"${2}")
				case manifest.BareStringValue(body):
					replaced = bareValueRe.ReplaceAllString(body, "${1}"+newVersion+"${2}")
				}
			}
		}

		out.WriteString(replaced)
		out.WriteString(terminator)
		if replaced != body {
			changed++
		}
	}

	return []byte(out.String()), changed
}

func matchesAny(body string, names discover.Set) bool {
	for name := range names {
		if manifest.HasNameToken(body, name) {
			return true
		}
	}
	return false
}
