package hub

import "strings"

// buildPublishPayload assembles the registry publish request body for a
// package: the structural manifest, the merged metadata, and the file
// contents.
//
// Version, description, and tags from the metadata are promoted into the
// manifest, falling back to values the manifest already carries. The
// per-file upload path is the file's target relative to the author's
// namespace prefix.
func buildPublishPayload(ref Ref, pkg *Package, metadata map[string]any) publishPayload {
	payloadMetadata := mergeMetadata(pkg.Metadata(), metadata)

	manifest := make(map[string]any, len(pkg.Manifest)+4)
	for k, v := range pkg.Manifest {
		manifest[k] = v
	}
	manifest["author"] = ref.Author
	manifest["name"] = ref.Name
	manifest["version"] = pickString(payloadMetadata, manifest, "version", "0.0.0")
	manifest["description"] = pickString(payloadMetadata, manifest, "description", "")
	if tags, ok := payloadMetadata["tags"]; ok {
		manifest["tags"] = tags
	}
	manifest["metadata"] = payloadMetadata

	var manifestFiles []any
	var files []publishFile
	for _, f := range pkg.Files {
		relative := uploadPath(ref.Author, f.Target)
		storagePath := f.Source
		if storagePath == "" {
			storagePath = "packages/" + ref.Author + "/" + ref.Name + "/" + relative
		}

		manifestFiles = append(manifestFiles, map[string]any{
			"source": storagePath,
			"target": f.Target,
			"sha256": f.SHA256,
		})
		files = append(files, publishFile{
			Path:        relative,
			Target:      f.Target,
			SHA256:      f.SHA256,
			Content:     encodeContent(f.Content),
			ContentType: guessMIME(f.Target),
		})
	}
	manifest["files"] = manifestFiles

	return publishPayload{
		Manifest: manifest,
		Metadata: payloadMetadata,
		Files:    files,
	}
}

// uploadPath derives the registry-relative upload path for a file target,
// stripping a leading slash and the author's namespace prefix.
func uploadPath(author, target string) string {
	relative := strings.TrimLeft(target, "/")
	relative = strings.TrimPrefix(relative, author+"/")
	if relative == "" {
		relative = strings.TrimLeft(target, "/")
	}
	if relative == "" {
		relative = target
	}
	return relative
}

// pickString selects a string field from metadata, then from the
// manifest, then a fallback.
func pickString(metadata, manifest map[string]any, key, fallback string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	if v, ok := manifest[key].(string); ok {
		return v
	}
	return fallback
}

// guessMIME maps a file extension to a MIME type for transfer. Unknown
// extensions are sent as opaque bytes.
func guessMIME(path string) string {
	switch {
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".py"):
		return "text/x-python"
	case strings.HasSuffix(path, ".md"):
		return "text/markdown"
	case strings.HasSuffix(path, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
