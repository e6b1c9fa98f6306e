package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAWorkspace indicates no workspace root could be located.
	ErrNotAWorkspace = errors.New("not inside a cargo workspace")

	// ErrLayout indicates the workspace root is missing required pieces.
	ErrLayout = errors.New("workspace layout invalid")

	// ErrManifestParse indicates the root manifest failed to parse.
	ErrManifestParse = errors.New("manifest parse failed")

	// ErrNoVersion indicates the root manifest declares no workspace version.
	ErrNoVersion = errors.New("workspace version missing")

	// ErrBadTarget indicates a switch target that is not a concrete mode.
	ErrBadTarget = errors.New("invalid target mode")

	// ErrRewrite indicates a rewritten manifest could not be written back.
	ErrRewrite = errors.New("manifest rewrite failed")

	// ErrVersionOrder indicates a bump did not produce a higher version.
	ErrVersionOrder = errors.New("bumped version does not order after current")
)

// Diagnostic is a fatal error enriched with the operation context and a
// short list of concrete remedies. The CLI renders it as an error block
// followed by suggestions.
type Diagnostic struct {
	// Summary is the one-line human explanation.
	Summary string

	// Context names the operation that failed.
	Context string

	// Suggestions are actionable remedies, most likely first.
	Suggestions []string

	// Err is the underlying cause, reachable through errors.Is/As.
	Err error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %v", d.Summary, d.Err)
	}
	return d.Summary
}

// Unwrap returns the underlying cause.
func (d *Diagnostic) Unwrap() error { return d.Err }

// Format renders the diagnostic as a plain multi-line block.
func (d *Diagnostic) Format() string {
	var b strings.Builder
	b.WriteString(d.Summary)
	if d.Context != "" {
		b.WriteString("\nContext: ")
		b.WriteString(d.Context)
	}
	for _, s := range d.Suggestions {
		b.WriteString("\n  • ")
		b.WriteString(s)
	}
	return b.String()
}
