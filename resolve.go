package hub

import (
	"fmt"
	"strings"
)

// resolveFile selects a file from a package by an optional target hint.
//
// Without a hint the first file in declaration order is returned, which
// covers the common single-artifact package. With a hint, an exact match
// on target wins; failing that, the first file whose target ends with the
// hint's basename is used. Resolution is deterministic: the same package
// and hint always select the same file.
func resolveFile(p *Package, target string) (File, error) {
	if len(p.Files) == 0 {
		return File{}, fmt.Errorf("package %q has no files: %w", p.Identifier, ErrArtifactNotFound)
	}

	if target == "" {
		return p.Files[0], nil
	}

	if f, ok := p.FileMap()[target]; ok {
		return f, nil
	}

	basename := target
	if idx := strings.LastIndex(target, "/"); idx != -1 {
		basename = target[idx+1:]
	}
	for _, f := range p.Files {
		if strings.HasSuffix(f.Target, basename) {
			return f, nil
		}
	}

	return File{}, fmt.Errorf("package %q does not contain an artifact matching %q: %w",
		p.Identifier, target, ErrArtifactNotFound)
}

// pruneToFile returns a copy of p reduced to the single file f. The
// manifest's file list and aggregate hash are rebuilt so they keep
// corresponding to Files.
func pruneToFile(p *Package, f File) *Package {
	manifest := make(map[string]any, len(p.Manifest))
	for k, v := range p.Manifest {
		manifest[k] = v
	}
	manifest["files"] = []any{map[string]any{
		"source": f.Source,
		"target": f.Target,
		"sha256": f.SHA256,
	}}
	manifest["hash"] = aggregateDigest([]string{f.SHA256})

	return &Package{
		Identifier: p.Identifier,
		Manifest:   manifest,
		Files:      []File{f},
	}
}
