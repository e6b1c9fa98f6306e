package engine

import (
	"context"
	"fmt"
	"path"

	"github.com/danieljhkim/depmode/internal/manifest"
	"github.com/danieljhkim/depmode/internal/mode"
	"github.com/danieljhkim/depmode/internal/rewrite"
)

// Switch converts every internal dependency declaration in the workspace
// to the target mode.
//
// Steps:
//  1. Load the workspace snapshot and detect the current mode.
//  2. Resolve the target: explicit, or the toggle of the current mode with
//     ambiguous states counting as the configured ambiguous_mode.
//  3. If the workspace is already in the target mode, succeed without
//     touching any file.
//  4. Rewrite the root manifest and every member manifest that changes,
//     rendering fully in memory and writing back atomically.
//  5. Synchronize the lock file; a failure there is a warning, since the
//     manifests are already the authoritative outcome.
func (e *Engine) Switch(ctx context.Context, req *SwitchRequest) (*SwitchResult, error) {
	snap, err := e.loadSnapshot(req.CWD)
	if err != nil {
		return nil, err
	}

	current, _ := snap.observe()

	target := req.Target
	if target == "" {
		target = mode.Toggle(current, mode.Mode(snap.cfg.AmbiguousMode))
	}
	if target != mode.Local && target != mode.Remote {
		return nil, fmt.Errorf("%w: %q", ErrBadTarget, target)
	}

	result := &SwitchResult{
		Root:         snap.ws.Root,
		Version:      snap.version,
		From:         current,
		To:           target,
		DryRun:       req.DryRun,
		InternalDeps: snap.deps.Sorted(),
		Changed:      []FileChange{},
		Warnings:     snap.warnings,
	}

	if current == target {
		result.NoOp = true
		return result, nil
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

	if err := e.applyEdits(snap, target, req.DryRun, result); err != nil {
		return nil, err
	}

	if req.DryRun || len(result.Changed) == 0 || !snap.cfg.Lock.Enabled {
		return result, nil
	}
	if err := e.lockRunner(snap.cfg).Sync(ctx, snap.ws.Root); err != nil {
		result.LockWarning = fmt.Sprintf("lock sync failed: %v", err)
	}

	return result, nil
}

// applyEdits rewrites the root and every member manifest toward target.
func (e *Engine) applyEdits(snap *snapshot, target mode.Mode, dryRun bool, result *SwitchResult) error {
	rootEdits := snap.editsFor(target, true)
	if err := e.rewriteFile(snap.root, rootEdits, dryRun, result); err != nil {
		return err
	}

	memberEdits := snap.editsFor(target, false)
	for _, m := range snap.members {
		if err := e.rewriteFile(m.manifestFile, memberEdits, dryRun, result); err != nil {
			return err
		}
	}
	return nil
}

// rewriteFile renders edits against one manifest and writes it back when
// anything changed. An edit whose dependency does not occur in the file is
// silently a no-op for that file.
func (e *Engine) rewriteFile(f manifestFile, edits []rewrite.Edit, dryRun bool, result *SwitchResult) error {
	out, changed := rewrite.Render(f.Raw, edits)
	if changed == 0 {
		return nil
	}
	if !dryRun {
		if err := e.fs.AtomicWrite(f.Path, out, e.fileMode(f.Path)); err != nil {
			return &Diagnostic{
				Summary: "Rewritten manifest could not be written back",
				Context: f.Path,
				Suggestions: []string{
					"Check write permissions and free disk space",
					"Re-run the switch; already-written files are picked up as mixed state",
				},
				Err: fmt.Errorf("%w: %v", ErrRewrite, err),
			}
		}
	}
	result.Changed = append(result.Changed, FileChange{Path: f.Rel, Lines: changed})
	return nil
}

// editsFor builds the edit list for one manifest kind. The root manifest
// declares paths relative to the workspace root; member manifests declare
// sibling paths. Every internal dependency gets both a dependency and a
// dev-dependency edit, so both sections convert.
func (s *snapshot) editsFor(target mode.Mode, root bool) []rewrite.Edit {
	names := s.deps.Sorted()
	edits := make([]rewrite.Edit, 0, 2*len(names))

	for _, name := range names {
		spec := manifest.VersionOnly(s.version)
		if target == mode.Local {
			dir := s.dirFor(name)
			if root {
				spec = manifest.VersionAndPath(s.version, path.Join(s.cfg.MembersDir, dir))
			} else {
				spec = manifest.VersionAndPath(s.version, "../"+dir)
			}
		}
		edits = append(edits,
			rewrite.Edit{Name: name, Spec: spec},
			rewrite.Edit{Name: name, Dev: true, Spec: spec},
		)
	}

	return edits
}
