package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fsRepository serves packages from a local registry directory. It backs
// registry locations without a URL scheme, which the settings layer
// treats as filesystem paths.
//
// Layout mirrors a remote registry: <dir>/index.json holds the index and
// file sources resolve relative to <dir>.
type fsRepository struct {
	// dir is the registry root directory.
	dir string
}

// Ensure fsRepository implements repository.
var _ repository = (*fsRepository)(nil)

// newFSRepository creates a filesystem repository rooted at dir.
func newFSRepository(dir string) *fsRepository {
	return &fsRepository{dir: dir}
}

// readIndex reads and parses <dir>/index.json.
func (r *fsRepository) readIndex() (registryIndex, error) {
	path := filepath.Join(r.dir, "index.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return registryIndex{}, fmt.Errorf("reading registry index %s: %v: %w", path, err, ErrRegistry)
	}

	var index registryIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return registryIndex{}, fmt.Errorf("parsing registry index %s: %w", path, ErrRegistry)
	}

	return index, nil
}

// listPackages returns all raw manifests declared by the local index.
func (r *fsRepository) listPackages(ctx context.Context) (map[string]map[string]any, error) {
	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}
	return index.Packages, nil
}

// getManifest returns the raw manifest for ref from the local index.
func (r *fsRepository) getManifest(ctx context.Context, ref Ref) (map[string]any, error) {
	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}

	raw, ok := index.Packages[ref.String()]
	if !ok {
		return nil, fmt.Errorf("package %s: %w", ref, ErrPackageNotFound)
	}
	return raw, nil
}

// fetchBytes reads file content from <dir>/<source>. Sources escaping the
// registry directory are rejected; the index is untrusted input.
func (r *fsRepository) fetchBytes(ctx context.Context, source string, onProgress func(delta int64)) ([]byte, error) {
	rel := filepath.FromSlash(strings.TrimLeft(source, "/"))
	path := filepath.Join(r.dir, rel)

	if !withinDir(r.dir, path) {
		return nil, fmt.Errorf("file source %q escapes registry directory: %w", source, ErrRegistry)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %s: %w", source, ErrPackageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", source, err, ErrRegistry)
	}

	if onProgress != nil {
		onProgress(int64(len(data)))
	}

	return data, nil
}

// publish is not supported for local registry directories.
func (r *fsRepository) publish(ctx context.Context, ref Ref, payload publishPayload, devKey string) (map[string]any, error) {
	return nil, fmt.Errorf("publishing requires an HTTP registry, got local directory %s: %w", r.dir, ErrRegistry)
}
