package engine

import (
	"github.com/danieljhkim/depmode/internal/mode"
	"github.com/danieljhkim/depmode/internal/version"
)

// StatusRequest represents a request for the workspace dependency status.
type StatusRequest struct {
	// CWD is the current working directory; the workspace root is located
	// by walking upward from here.
	CWD string
}

// StatusResult represents the current dependency mode of a workspace.
type StatusResult struct {
	// Root is the workspace root directory.
	Root string `json:"root"`

	// Version is the workspace version, empty when none is declared.
	Version string `json:"version"`

	// Mode is the aggregated dependency mode.
	Mode mode.Mode `json:"mode"`

	// InternalDeps is the sorted list of discovered internal dependencies.
	InternalDeps []string `json:"internal_deps"`

	// Files holds the per-manifest observation detail.
	Files []ManifestObservation `json:"files"`

	// Warnings lists non-fatal problems hit while scanning.
	Warnings []string `json:"warnings,omitempty"`
}

// SwitchRequest represents a request to switch the dependency mode.
type SwitchRequest struct {
	// CWD is the current working directory.
	CWD string

	// Target is the mode to switch to. Empty means toggle from the
	// detected mode.
	Target mode.Mode

	// DryRun computes and reports changes without writing or syncing.
	DryRun bool
}

// FileChange records one rewritten manifest.
type FileChange struct {
	// Path is the manifest path relative to the workspace root.
	Path string `json:"path"`

	// Lines is the number of lines the rewrite replaced.
	Lines int `json:"lines"`
}

// SwitchResult represents the outcome of a mode switch.
type SwitchResult struct {
	// Root is the workspace root directory.
	Root string `json:"root"`

	// Version is the workspace version stamped into rewritten declarations.
	Version string `json:"version"`

	// From is the mode detected before the switch.
	From mode.Mode `json:"from"`

	// To is the mode the switch targeted.
	To mode.Mode `json:"to"`

	// NoOp is true when the workspace was already in the target mode.
	NoOp bool `json:"no_op"`

	// DryRun echoes the request flag.
	DryRun bool `json:"dry_run"`

	// InternalDeps is the sorted list of discovered internal dependencies.
	InternalDeps []string `json:"internal_deps"`

	// Changed lists the manifests the rewrite touched.
	Changed []FileChange `json:"changed"`

	// Warnings lists non-fatal problems hit while scanning.
	Warnings []string `json:"warnings,omitempty"`

	// LockWarning is set when lock synchronization failed; the manifests
	// are already converted, so this is not fatal.
	LockWarning string `json:"lock_warning,omitempty"`
}

// BumpRequest represents a request to bump the workspace version.
type BumpRequest struct {
	// CWD is the current working directory.
	CWD string

	// Level selects the version component to increment.
	Level version.Level

	// DryRun reports the new version without writing or syncing.
	DryRun bool
}

// BumpResult represents the outcome of a version bump.
type BumpResult struct {
	// Root is the workspace root directory.
	Root string `json:"root"`

	// From is the version before the bump.
	From string `json:"from"`

	// To is the version after the bump.
	To string `json:"to"`

	// DryRun echoes the request flag.
	DryRun bool `json:"dry_run"`

	// Changed lists the manifests the bump touched (the root manifest).
	Changed []FileChange `json:"changed"`

	// Warnings lists non-fatal problems hit while scanning.
	Warnings []string `json:"warnings,omitempty"`

	// LockWarning is set when lock synchronization failed.
	LockWarning string `json:"lock_warning,omitempty"`
}
