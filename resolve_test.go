package hub

import (
	"errors"
	"testing"
)

func TestResolveFile(t *testing.T) {
	pkg := &Package{
		Identifier: "acme/demo",
		Files: []File{
			{Target: "demo.json", SHA256: "d1"},
			{Target: "foo/bar.json", SHA256: "d2"},
			{Target: "docs/readme.md", SHA256: "d3"},
		},
	}

	t.Run("no hint returns first file", func(t *testing.T) {
		f, err := resolveFile(pkg, "")
		if err != nil {
			t.Fatalf("resolveFile() error = %v", err)
		}
		if f.Target != "demo.json" {
			t.Errorf("target = %q, want first file", f.Target)
		}
	})

	t.Run("exact match", func(t *testing.T) {
		f, err := resolveFile(pkg, "foo/bar.json")
		if err != nil {
			t.Fatalf("resolveFile() error = %v", err)
		}
		if f.SHA256 != "d2" {
			t.Errorf("resolved %q, want foo/bar.json", f.Target)
		}
	})

	t.Run("basename suffix fallback", func(t *testing.T) {
		f, err := resolveFile(pkg, "elsewhere/bar.json")
		if err != nil {
			t.Fatalf("resolveFile() error = %v", err)
		}
		if f.Target != "foo/bar.json" {
			t.Errorf("resolved %q, want foo/bar.json", f.Target)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := resolveFile(pkg, "readme.md")
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			again, err := resolveFile(pkg, "readme.md")
			if err != nil {
				t.Fatal(err)
			}
			if again.Target != first.Target {
				t.Fatalf("resolution not deterministic: %q then %q", first.Target, again.Target)
			}
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := resolveFile(pkg, "missing.bin")
		if !errors.Is(err, ErrArtifactNotFound) {
			t.Errorf("error = %v, want ErrArtifactNotFound", err)
		}
	})

	t.Run("empty package", func(t *testing.T) {
		empty := &Package{Identifier: "acme/empty"}
		if _, err := resolveFile(empty, ""); !errors.Is(err, ErrArtifactNotFound) {
			t.Errorf("error = %v, want ErrArtifactNotFound", err)
		}
		if _, err := resolveFile(empty, "anything.json"); !errors.Is(err, ErrArtifactNotFound) {
			t.Errorf("error = %v, want ErrArtifactNotFound", err)
		}
	})
}

func TestPruneToFile(t *testing.T) {
	pkg := &Package{
		Identifier: "acme/demo",
		Manifest: map[string]any{
			"version": "1.0.0",
			"files": []any{
				map[string]any{"source": "packages/acme/demo/demo.json", "target": "demo.json", "sha256": "d1"},
				map[string]any{"source": "packages/acme/demo/extra.json", "target": "extra.json", "sha256": "d2"},
			},
			"hash": aggregateDigest([]string{"d1", "d2"}),
		},
		Files: []File{
			{Source: "packages/acme/demo/demo.json", Target: "demo.json", SHA256: "d1"},
			{Source: "packages/acme/demo/extra.json", Target: "extra.json", SHA256: "d2"},
		},
	}

	pruned := pruneToFile(pkg, pkg.Files[1])

	t.Run("manifest matches pruned files", func(t *testing.T) {
		if len(pruned.Files) != 1 || pruned.Files[0].Target != "extra.json" {
			t.Fatalf("files = %+v", pruned.Files)
		}

		entries, ok := pruned.Manifest["files"].([]any)
		if !ok || len(entries) != 1 {
			t.Fatalf("manifest files = %v", pruned.Manifest["files"])
		}
		entry := entries[0].(map[string]any)
		if entry["target"] != "extra.json" || entry["sha256"] != "d2" {
			t.Errorf("manifest entry = %v", entry)
		}

		if pruned.Manifest["hash"] != aggregateDigest([]string{"d2"}) {
			t.Errorf("hash = %v, want aggregate over the kept file", pruned.Manifest["hash"])
		}
		if pruned.Manifest["version"] != "1.0.0" {
			t.Errorf("version = %v, other manifest fields should carry over", pruned.Manifest["version"])
		}
	})

	t.Run("original untouched", func(t *testing.T) {
		if len(pkg.Files) != 2 {
			t.Fatalf("original files = %+v", pkg.Files)
		}
		if entries := pkg.Manifest["files"].([]any); len(entries) != 2 {
			t.Errorf("original manifest files = %v", entries)
		}
		if pkg.Manifest["hash"] != aggregateDigest([]string{"d1", "d2"}) {
			t.Errorf("original hash changed: %v", pkg.Manifest["hash"])
		}
	})
}
