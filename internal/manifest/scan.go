package manifest

import (
	"regexp"
	"strings"
)

// Section identifies the manifest table a line belongs to while scanning.
// Only the tables that can hold rewritable declarations are distinguished;
// every other header maps to SectionNone.
type Section int

const (
	SectionNone Section = iota
	SectionWorkspacePackage
	SectionWorkspaceDependencies
	SectionDependencies
	SectionDevDependencies
)

// SectionForHeader maps a table header name to its section.
func SectionForHeader(name string) Section {
	switch name {
	case "workspace.package":
		return SectionWorkspacePackage
	case "workspace.dependencies":
		return SectionWorkspaceDependencies
	case "dependencies":
		return SectionDependencies
	case "dev-dependencies":
		return SectionDevDependencies
	default:
		return SectionNone
	}
}

// DependencyBearing reports whether a section holds dependency declarations.
func DependencyBearing(s Section) bool {
	switch s {
	case SectionWorkspaceDependencies, SectionDependencies, SectionDevDependencies:
		return true
	default:
		return false
	}
}

// HeaderName extracts the table name from a section header line. The second
// return is false when the line is not a header. Array-of-tables headers
// ([[bin]]) report their inner name, which never matches a known section.
func HeaderName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	end := strings.IndexByte(trimmed, ']')
	if end < 0 {
		return "", false
	}
	name := strings.TrimSpace(strings.Trim(trimmed[:end+1], "[]"))
	return name, true
}

// SplitLines splits content into lines, each retaining its terminator. The
// final element has no terminator when the file does not end in a newline.
func SplitLines(content []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, string(content[start:i+1]))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines
}

// LineBody splits a line into its text and terminator.
func LineBody(line string) (body, terminator string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// IsComment reports whether the line is a TOML comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// Key and marker patterns. TOML bare keys may contain letters, digits,
// dashes and underscores, so boundaries exclude exactly that class.
var (
	inheritRe    = regexp.MustCompile(`(^|[^\w-])workspace\s*=\s*true([^\w-]|$)`)
	versionKeyRe = regexp.MustCompile(`(^|[^\w-])version\s*=`)
	pathKeyRe    = regexp.MustCompile(`(^|[^\w-])path\s*=`)
)

// InheritsWorkspace reports whether the line carries a workspace = true
// inheritance marker in any spelling (inline table or dotted key).
func InheritsWorkspace(line string) bool {
	return inheritRe.MatchString(line)
}

// HasVersionKey reports whether the line assigns a version key.
func HasVersionKey(line string) bool {
	return versionKeyRe.MatchString(line)
}

// HasPathKey reports whether the line assigns a path key.
func HasPathKey(line string) bool {
	return pathKeyRe.MatchString(line)
}

// BareStringValue reports whether the line assigns a plain string value,
// e.g. `dep = "1.2.0"`.
func BareStringValue(line string) bool {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return false
	}
	rest := strings.TrimSpace(line[eq+1:])
	return strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, `'`)
}

// HasNameToken reports whether name appears in line as a standalone token.
// Token boundaries are non-key characters, so "dep-a" never matches inside
// "dep-a-extra" or "my-dep-a".
func HasNameToken(line, name string) bool {
	if name == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(line[start:], name)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(name)
		if (i == 0 || !isKeyByte(line[i-1])) && (end == len(line) || !isKeyByte(line[end])) {
			return true
		}
		start = i + 1
	}
}

func isKeyByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	default:
		return false
	}
}
