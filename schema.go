package hub

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema constrains the shape of a raw registry manifest before
// materialization. The manifest is attacker-influenced input; digests and
// aggregate hashes are recomputed separately, this only rejects entries
// the materializer cannot process.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "author": {"type": "string"},
    "slug": {"type": "string"},
    "version": {"type": "string"},
    "description": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string"}
        },
        "required": ["source"]
      }
    }
  }
}`

var compiledManifestSchema = jsonschema.MustCompileString("manifest.schema.json", manifestSchema)

// validateRawManifest checks a decoded registry manifest against the
// manifest schema. Violations are reported as ErrRegistry since they
// indicate a malformed registry response.
func validateRawManifest(raw map[string]any) error {
	if err := compiledManifestSchema.Validate(raw); err != nil {
		return fmt.Errorf("malformed manifest: %v: %w", err, ErrRegistry)
	}
	return nil
}
