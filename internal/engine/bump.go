package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/depmode/internal/rewrite"
	"github.com/danieljhkim/depmode/internal/version"
)

// Bump raises the workspace version by one component and updates every
// internal dependency declaration in the root manifest to match. Member
// manifests inherit the version through the workspace table or get
// refreshed by the next mode switch, so only the root is touched. The
// bump is surgical: declaration paths and all surrounding content stay
// exactly as written, so a bump never changes the dependency mode.
func (e *Engine) Bump(ctx context.Context, req *BumpRequest) (*BumpResult, error) {
	snap, err := e.loadSnapshot(req.CWD)
	if err != nil {
		return nil, err
	}

	if snap.version == "" {
		return nil, &Diagnostic{
			Summary: "Workspace declares no version",
			Context: snap.root.Path,
			Suggestions: []string{
				"Add a version under [workspace.package] in the root manifest",
			},
			Err: ErrNoVersion,
		}
	}

	current, err := version.Parse(snap.version)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "Workspace version is not a semantic version",
			Context: fmt.Sprintf("%s declares version %q", snap.root.Path, snap.version),
			Suggestions: []string{
				"Fix the version under [workspace.package] to major.minor.patch form",
			},
			Err: err,
		}
	}

	bumped, err := current.Bump(req.Level)
	if err != nil {
		return nil, err
	}
	if version.Compare(bumped.String(), snap.version) <= 0 {
		return nil, fmt.Errorf("%w: %s -> %s", ErrVersionOrder, snap.version, bumped)
	}

	result := &BumpResult{
		Root:     snap.ws.Root,
		From:     snap.version,
		To:       bumped.String(),
		DryRun:   req.DryRun,
		Changed:  []FileChange{},
		Warnings: snap.warnings,
	}

	out, changed := rewrite.RenderVersionBump(snap.root.Raw, snap.deps, bumped.String())
	if changed > 0 {
		if !req.DryRun {
			if err := e.fs.AtomicWrite(snap.root.Path, out, e.fileMode(snap.root.Path)); err != nil {
				return nil, &Diagnostic{
					Summary: "Root manifest could not be written back",
					Context: snap.root.Path,
					Suggestions: []string{
						"Check write permissions and free disk space",
					},
					Err: fmt.Errorf("%w: %v", ErrRewrite, err),
				}
			}
		}
		result.Changed = append(result.Changed, FileChange{Path: snap.root.Rel, Lines: changed})
	}

	if req.DryRun || len(result.Changed) == 0 || !snap.cfg.Lock.Enabled {
		return result, nil
	}
	if err := e.lockRunner(snap.cfg).SyncWorkspace(ctx, snap.ws.Root); err != nil {
		result.LockWarning = fmt.Sprintf("lock sync failed: %v", err)
	}

	return result, nil
}
