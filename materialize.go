package hub

import (
	"context"
	"fmt"
	"strings"
)

// fetchFunc retrieves file content by registry storage path. It is the
// only capability the materializer needs from the transport.
type fetchFunc func(ctx context.Context, source string) ([]byte, error)

// materialize turns a raw registry manifest plus fetched file bytes into
// a verified Package.
//
// The raw manifest is untrusted: its shape is checked against the
// manifest schema, every file digest is recomputed from the fetched
// bytes, and the returned package's manifest reflects observed state
// rather than the registry's claims.
func materialize(ctx context.Context, ref Ref, raw map[string]any, fetch fetchFunc) (*Package, error) {
	if err := validateRawManifest(raw); err != nil {
		return nil, err
	}

	manifest := make(map[string]any, len(raw)+2)
	for k, v := range raw {
		manifest[k] = v
	}

	var files []File
	var updated []any
	for _, entry := range rawFileEntries(raw) {
		source, _ := entry["source"].(string)
		target, _ := entry["target"].(string)
		if target == "" {
			target = defaultTarget(source)
		}

		content, err := fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		sha := digest(content)

		files = append(files, File{
			Source:  source,
			Target:  target,
			Content: content,
			SHA256:  sha,
		})

		sanitized := make(map[string]any, len(entry)+1)
		for k, v := range entry {
			sanitized[k] = v
		}
		sanitized["target"] = target
		sanitized["sha256"] = sha
		updated = append(updated, sanitized)
	}

	manifest["files"] = updated
	if _, ok := manifest["author"].(string); !ok {
		manifest["author"] = ref.Author
	}
	if _, ok := manifest["name"].(string); !ok {
		manifest["name"] = ref.Name
	}
	if _, ok := manifest["metadata"].(map[string]any); !ok {
		manifest["metadata"] = map[string]any{}
	}
	if len(files) > 0 {
		digests := make([]string, len(files))
		for i, f := range files {
			digests[i] = f.SHA256
		}
		manifest["hash"] = aggregateDigest(digests)
	}
	manifest["slug"] = ref.String()

	return &Package{
		Identifier: ref.String(),
		Manifest:   manifest,
		Files:      files,
	}, nil
}

// rawFileEntries extracts the manifest's file list. Entries that are not
// objects were already rejected by the schema; a missing list means an
// empty package.
func rawFileEntries(raw map[string]any) []map[string]any {
	list, ok := raw["files"].([]any)
	if !ok {
		return nil
	}

	entries := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if entry, ok := item.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// defaultTarget derives a target path from a storage path: its last
// segment. Example: "packages/a/b/f.json" yields "f.json".
func defaultTarget(source string) string {
	if idx := strings.LastIndex(source, "/"); idx != -1 {
		return source[idx+1:]
	}
	return source
}

// errEmptyPackage reports a package unusable for program loading.
func errEmptyPackage(identifier string) error {
	return fmt.Errorf("package %q does not contain any files to load: %w", identifier, ErrRegistry)
}
