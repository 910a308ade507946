package hub

import "encoding/json"

// assemblePackage builds the outbound Package for a local artifact plus
// caller-supplied metadata.
//
// Any metadata embedded in the artifact (a top-level "metadata" object of
// a JSON artifact) is merged with the caller's metadata; caller keys win
// on conflict. The storage path is a local placeholder only, the
// authoritative path is assigned by the registry at publish time.
func assemblePackage(ref Ref, artifact []byte, metadata map[string]any, artifactName string) *Package {
	if artifactName == "" {
		artifactName = ref.Name + ".json"
	}

	sha := digest(artifact)
	merged := mergeMetadata(embeddedMetadata(artifact), metadata)
	storagePath := "packages/" + ref.Author + "/" + ref.Name + "/" + artifactName

	manifest := map[string]any{
		"slug":   ref.String(),
		"name":   ref.Name,
		"author": ref.Author,
		"files": []any{
			map[string]any{
				"source": storagePath,
				"target": artifactName,
				"sha256": sha,
			},
		},
		"metadata": merged,
		"hash":     aggregateDigest([]string{sha}),
	}

	return &Package{
		Identifier: ref.String(),
		Manifest:   manifest,
		Files: []File{{
			Source:  storagePath,
			Target:  artifactName,
			Content: artifact,
			SHA256:  sha,
		}},
	}
}

// embeddedMetadata recovers the "metadata" object from a JSON artifact.
// Parsing is best-effort enrichment: artifacts that are not JSON, or
// carry no metadata object, yield an empty map and no error.
func embeddedMetadata(artifact []byte) map[string]any {
	var parsed struct {
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.Unmarshal(artifact, &parsed); err != nil || parsed.Metadata == nil {
		return map[string]any{}
	}
	return parsed.Metadata
}

// mergeMetadata merges two metadata mappings; keys from the overlay take
// precedence. Neither input is mutated.
func mergeMetadata(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
