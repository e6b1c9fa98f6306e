package engine

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/depmode/internal/config"
	"github.com/danieljhkim/depmode/internal/discover"
	"github.com/danieljhkim/depmode/internal/manifest"
	"github.com/danieljhkim/depmode/internal/mode"
	"github.com/danieljhkim/depmode/internal/workspace"
)

// manifestFile is one loaded manifest: raw bytes for line-level work plus
// the decoded document for structural lookups. Doc is nil when the file
// did not parse.
type manifestFile struct {
	// Path is the absolute path of the manifest.
	Path string

	// Rel is the path relative to the workspace root, for display.
	Rel string

	// Raw is the file content as read.
	Raw []byte

	// Doc is the decoded manifest, nil when parsing failed.
	Doc *manifest.Manifest
}

// memberFile is a member crate's manifest together with its directory name.
type memberFile struct {
	manifestFile

	// Dir is the directory name under the members directory.
	Dir string
}

// snapshot is the per-run view of a workspace: configuration, every
// manifest loaded once, and the discovered internal dependency set. All
// operations work from a snapshot so that each invocation reads the
// filesystem exactly once.
type snapshot struct {
	ws       *workspace.Workspace
	cfg      *config.Config
	version  string
	root     manifestFile
	members  []memberFile
	deps     discover.Set
	warnings []string
}

// loadSnapshot locates the workspace containing cwd and reads all of its
// manifests. Member manifests that fail to parse are kept as raw bytes and
// recorded as warnings; a root manifest that fails to parse is fatal.
func (e *Engine) loadSnapshot(cwd string) (*snapshot, error) {
	root, err := workspace.Locate(e.fs, cwd)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "No cargo workspace found",
			Context: fmt.Sprintf("searching upward from %s", cwd),
			Suggestions: []string{
				"Run depmode from inside a workspace",
				fmt.Sprintf("Check that the root %s declares a [workspace] table", manifest.FileName),
			},
			Err: fmt.Errorf("%w: %v", ErrNotAWorkspace, err),
		}
	}

	cfg, err := e.loadConfig(root)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "Configuration could not be loaded",
			Context: fmt.Sprintf("workspace %s", root),
			Suggestions: []string{
				fmt.Sprintf("Check %s.toml at the workspace root", config.FileName),
				"Unset DEPMODE_* environment overrides to fall back to defaults",
			},
			Err: err,
		}
	}

	ws := workspace.New(root, cfg.MembersDir)
	if err := ws.Validate(e.fs); err != nil {
		return nil, &Diagnostic{
			Summary: "Workspace layout is incomplete",
			Context: fmt.Sprintf("workspace %s", root),
			Suggestions: []string{
				fmt.Sprintf("Create the members directory %q or configure members_dir", cfg.MembersDir),
				"Check that the root manifest was not moved",
			},
			Err: fmt.Errorf("%w: %v", ErrLayout, err),
		}
	}

	snap := &snapshot{ws: ws, cfg: cfg}

	rootPath := ws.ManifestPath()
	raw, err := e.fs.ReadFile(rootPath)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "Root manifest could not be read",
			Context: rootPath,
			Suggestions: []string{
				"Check file permissions on the root manifest",
			},
			Err: err,
		}
	}
	doc, err := manifest.Parse(raw)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "Root manifest is not valid TOML",
			Context: rootPath,
			Suggestions: []string{
				"Fix the syntax error and re-run",
				"Run 'cargo metadata' to see cargo's own diagnosis",
			},
			Err: fmt.Errorf("%w: %v", ErrManifestParse, err),
		}
	}
	snap.root = manifestFile{Path: rootPath, Rel: manifest.FileName, Raw: raw, Doc: doc}

	if doc.Workspace != nil && doc.Workspace.Package != nil {
		snap.version = doc.Workspace.Package.Version
	}

	members, err := ws.Members(e.fs)
	if err != nil {
		return nil, &Diagnostic{
			Summary: "Members directory could not be scanned",
			Context: ws.MembersPath(),
			Suggestions: []string{
				"Check directory permissions",
			},
			Err: err,
		}
	}

	memberDocs := make([]*manifest.Manifest, 0, len(members))
	for _, m := range members {
		raw, err := e.fs.ReadFile(m.ManifestPath)
		if err != nil {
			snap.warnings = append(snap.warnings, fmt.Sprintf("skipping %s: %v", m.ManifestPath, err))
			continue
		}
		rel := filepath.Join(cfg.MembersDir, m.Name, manifest.FileName)
		mf := memberFile{
			manifestFile: manifestFile{Path: m.ManifestPath, Rel: rel, Raw: raw},
			Dir:          m.Name,
		}
		doc, err := manifest.Parse(raw)
		if err != nil {
			// Discovery must not abort on one bad member; the raw bytes
			// still participate in detection and rewriting.
			snap.warnings = append(snap.warnings, fmt.Sprintf("%s did not parse: %v", rel, err))
		} else {
			mf.Doc = doc
			memberDocs = append(memberDocs, doc)
		}
		snap.members = append(snap.members, mf)
	}

	snap.deps = discover.Internal(doc, memberDocs, cfg.MembersDir, cfg.InternalPrefix)

	return snap, nil
}

// ManifestObservation is the per-file detection detail surfaced to callers.
type ManifestObservation struct {
	// Path is the manifest path relative to the workspace root.
	Path string

	// Local is the count of local-shaped internal declarations.
	Local int

	// Remote is the count of remote-shaped internal declarations.
	Remote int
}

// observe classifies every manifest once and aggregates the workspace mode.
func (s *snapshot) observe() (mode.Mode, []ManifestObservation) {
	var total mode.Observation
	files := make([]ManifestObservation, 0, len(s.members)+1)

	obs := mode.Observe(s.root.Raw, s.deps)
	total.Add(obs)
	files = append(files, ManifestObservation{Path: s.root.Rel, Local: obs.Local, Remote: obs.Remote})

	for _, m := range s.members {
		obs := mode.Observe(m.Raw, s.deps)
		total.Add(obs)
		files = append(files, ManifestObservation{Path: m.Rel, Local: obs.Local, Remote: obs.Remote})
	}

	return total.Mode(), files
}

// dirFor returns the member directory a dependency's crate lives in.
// Configured overrides win; otherwise a member whose declared package name
// matches is used; the dependency name itself is the fallback.
func (s *snapshot) dirFor(dep string) string {
	if dir, ok := s.cfg.DirOverrides[dep]; ok {
		return dir
	}
	for _, m := range s.members {
		if m.Doc != nil && m.Doc.Package != nil && m.Doc.Package.Name == dep {
			return m.Dir
		}
	}
	return dep
}
