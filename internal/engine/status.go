package engine

import (
	"context"
)

// Status reports the current dependency mode of the workspace containing
// req.CWD. It is read-only: every manifest is scanned exactly once and
// nothing is written.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	snap, err := e.loadSnapshot(req.CWD)
	if err != nil {
		return nil, err
	}

	current, files := snap.observe()

	return &StatusResult{
		Root:         snap.ws.Root,
		Version:      snap.version,
		Mode:         current,
		InternalDeps: snap.deps.Sorted(),
		Files:        files,
		Warnings:     snap.warnings,
	}, nil
}
