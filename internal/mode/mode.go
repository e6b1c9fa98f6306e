// Package mode defines dependency modes and detects which one a workspace
// is in by scanning its manifests.
package mode

import (
	"fmt"
	"strings"
)

// Mode is how a workspace declares its internal dependencies.
type Mode string

const (
	// Local declarations carry a path next to the version, so cargo builds
	// against the checked-out member crates.
	Local Mode = "local"

	// Remote declarations are bare registry versions.
	Remote Mode = "remote"

	// Mixed means manifests carry both shapes, usually a half-finished
	// switch.
	Mixed Mode = "mixed"

	// Unknown means no internal declaration was found at all.
	Unknown Mode = "unknown"
)

// Parse converts a mode argument into a switch target. Only the two
// concrete modes are valid targets.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "local":
		return Local, nil
	case "remote":
		return Remote, nil
	}
	return Unknown, fmt.Errorf("unknown mode %q (expected local or remote)", s)
}

// Toggle returns the mode a switch lands on when no explicit target is
// given. Ambiguous states count as ambiguousAs before flipping, so with
// the default of Remote a mixed tree toggles to Local.
func Toggle(current, ambiguousAs Mode) Mode {
	if current == Mixed || current == Unknown {
		current = ambiguousAs
	}
	if current == Local {
		return Remote
	}
	return Local
}
