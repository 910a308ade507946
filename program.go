package hub

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader is the load capability of a program object. The path points at
// a staged artifact file in the host framework's own serialization
// format; the hub never interprets that format.
type Loader interface {
	// Load deserializes the program state from the artifact at path.
	Load(path string) error
}

// Saver is the save capability of a program object.
type Saver interface {
	// Save serializes the program state to an artifact at path.
	Save(path string) error
}

// resolveProgram unwraps zero-argument factories so callers can pass
// either an instantiated program or a constructor for one.
func resolveProgram(program any) any {
	if factory, ok := program.(func() any); ok {
		return factory()
	}
	return program
}

// stageAndLoad writes the selected file to a scoped temporary directory
// and invokes the program's load capability on it. The file content is
// verified against its pinned digest before staging. The staging
// directory is removed on all exit paths, including when the capability
// fails.
func stageAndLoad(program any, f File) error {
	loader, ok := program.(Loader)
	if !ok {
		return fmt.Errorf("program does not expose Load(path): %w", ErrMissingCapability)
	}

	if err := verifyDigest(f.Content, f.SHA256); err != nil {
		return fmt.Errorf("artifact %s: %w", f.Target, err)
	}

	dir, err := os.MkdirTemp("", "dspy-hub-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(filepath.FromSlash(f.Target)))
	if err := os.WriteFile(path, f.Content, 0o644); err != nil {
		return fmt.Errorf("staging artifact %s: %w", f.Target, err)
	}

	if err := loader.Load(path); err != nil {
		return fmt.Errorf("loading program from %s: %w", f.Target, err)
	}
	return nil
}

// stageAndSave invokes the program's save capability against a scoped
// temporary path and returns the produced artifact bytes. The staging
// directory is removed on all exit paths.
func stageAndSave(program any, artifactName string) ([]byte, error) {
	saver, ok := program.(Saver)
	if !ok {
		return nil, fmt.Errorf("program does not expose Save(path): %w", ErrMissingCapability)
	}

	dir, err := os.MkdirTemp("", "dspy-hub-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, artifactName)
	if err := saver.Save(path); err != nil {
		return nil, fmt.Errorf("saving program artifact: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading saved artifact: %w", err)
	}
	return content, nil
}
