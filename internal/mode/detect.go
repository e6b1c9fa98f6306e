package mode

import (
	"github.com/danieljhkim/depmode/internal/discover"
	"github.com/danieljhkim/depmode/internal/manifest"
)

// Observation counts the declaration shapes seen for internal dependencies.
type Observation struct {
	// Local is the number of declarations carrying both a version and a path.
	Local int

	// Remote is the number of declarations carrying a version with no path,
	// including bare version strings.
	Remote int
}

// Add merges another observation into o.
func (o *Observation) Add(other Observation) {
	o.Local += other.Local
	o.Remote += other.Remote
}

// Mode reduces the observation to a dependency mode.
func (o Observation) Mode() Mode {
	switch {
	case o.Local > 0 && o.Remote > 0:
		return Mixed
	case o.Local > 0:
		return Local
	case o.Remote > 0:
		return Remote
	default:
		return Unknown
	}
}

// Observe classifies every internal dependency declaration in one manifest.
// It walks the lines once, tracking the section the same way the rewriter
// does, so that detection and rewriting always agree on which lines count.
// Declarations that inherit the workspace value carry no mode information
// and are skipped, as are comments.
func Observe(content []byte, names discover.Set) Observation {
	var obs Observation
	section := manifest.SectionNone

	for _, line := range manifest.SplitLines(content) {
		body, _ := manifest.LineBody(line)
		if name, ok := manifest.HeaderName(body); ok {
			section = manifest.SectionForHeader(name)
			continue
		}
		if !manifest.DependencyBearing(section) {
			continue
		}
		if manifest.IsComment(body) || manifest.InheritsWorkspace(body) {
			continue
		}

		matched := false
		for name := range names {
			if manifest.HasNameToken(body, name) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		switch {
		case manifest.HasVersionKey(body) && manifest.HasPathKey(body):
			obs.Local++
		case manifest.HasVersionKey(body), manifest.BareStringValue(body):
			obs.Remote++
		}
	}

	return obs
}
