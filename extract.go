package hub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extract writes all package files beneath dir, creating parent
// directories as needed. Targets are interpreted as slash-separated
// relative paths; targets that would escape dir are rejected.
func (p *Package) Extract(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, f := range p.Files {
		rel := filepath.FromSlash(strings.TrimLeft(f.Target, "/"))
		path := filepath.Join(dir, rel)

		if !withinDir(dir, path) {
			return fmt.Errorf("file target %q escapes output directory: %w", f.Target, ErrRegistry)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.Target, err)
		}
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing file %s: %w", f.Target, err)
		}
	}

	return nil
}

// withinDir reports whether path stays inside dir. Unlike a cleaned
// prefix comparison it handles relative bases such as ".", where joined
// paths clean to bare names without a leading "./".
func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
