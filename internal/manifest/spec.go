package manifest

import "fmt"

// DependencySpec is the desired shape of one rendered dependency
// declaration: either a bare registry version or a version paired with a
// local path. Construct values with VersionOnly or VersionAndPath; Render
// is the single place declarations are formatted.
type DependencySpec struct {
	version string
	path    string
}

// VersionOnly returns a spec rendering as a bare version string.
func VersionOnly(version string) DependencySpec {
	return DependencySpec{version: version}
}

// VersionAndPath returns a spec rendering as an inline table carrying both
// the version and a local path.
func VersionAndPath(version, path string) DependencySpec {
	return DependencySpec{version: version, path: path}
}

// Version returns the version requirement carried by the spec.
func (s DependencySpec) Version() string { return s.version }

// HasPath reports whether the spec carries a local path.
func (s DependencySpec) HasPath() bool { return s.path != "" }

// Render produces the canonical single-line declaration for name.
func (s DependencySpec) Render(name string) string {
	if s.path != "" {
		return fmt.Sprintf("%s = { version = %q, path = %q }", name, s.version, s.path)
	}
	return fmt.Sprintf("%s = %q", name, s.version)
}
