package hub

import "strings"

// Config configures the hub module.
type Config struct {
	// Registry is the registry location: either the URL of the registry
	// index (e.g. "https://api.dspyhub.com/index.json") or the path of a
	// local registry directory.
	//
	// If empty, the location is resolved from the environment and the
	// optional config file on each call. See LoadSettings.
	Registry string
}

// Ref identifies a package as "author/name".
type Ref struct {
	// Author is the namespace segment, e.g. "dspy-team".
	Author string

	// Name is the package name within the namespace, e.g. "hello-agent".
	Name string
}

// String returns the canonical slug form: "author/name".
func (r Ref) String() string {
	return r.Author + "/" + r.Name
}

// ParseRef parses an "author/name" identifier into a Ref.
// Both segments must be non-empty and the name segment must not contain
// a further "/". Returns ErrInvalidIdentifier if the format is invalid.
func ParseRef(s string) (Ref, error) {
	idx := strings.Index(s, "/")
	if idx == -1 {
		return Ref{}, ErrInvalidIdentifier
	}

	author, err := parseName(s[:idx])
	if err != nil {
		return Ref{}, err
	}
	name, err := parseName(s[idx+1:])
	if err != nil {
		return Ref{}, err
	}

	return Ref{Author: author, Name: name}, nil
}

// parseName validates a bare name segment: non-empty, no "/".
// Returns ErrInvalidIdentifier otherwise.
func parseName(s string) (string, error) {
	if s == "" || strings.Contains(s, "/") {
		return "", ErrInvalidIdentifier
	}
	return s, nil
}

// File is one content-addressed file belonging to a package.
// Files are immutable after construction.
type File struct {
	// Source is the opaque storage path of the file at the registry.
	// Empty for files that have not been published yet.
	Source string

	// Target is the local-relative path the file is materialized to or
	// was declared under.
	Target string

	// Content is the raw file bytes.
	Content []byte

	// SHA256 is the lowercase hex SHA-256 digest of Content. It is always
	// recomputed from Content, never taken from registry input.
	SHA256 string
}

// Package is a materialized or about-to-be-published package.
// Packages are immutable after construction: publishing or loading only
// reads them.
type Package struct {
	// Identifier is the "author/name" slug under which the package is
	// known.
	Identifier string

	// Manifest holds the registry metadata: name, author, version,
	// description, tags, file list, and the aggregate hash. For
	// materialized packages it reflects observed state, not the server's
	// claims.
	Manifest map[string]any

	// Files is the ordered list of package files. Order follows the
	// manifest's declaration order and determines the aggregate hash.
	Files []File
}

// FileMap returns the package files keyed by target path.
func (p *Package) FileMap() map[string]File {
	m := make(map[string]File, len(p.Files))
	for _, f := range p.Files {
		m[f.Target] = f
	}
	return m
}

// Metadata returns the manifest's metadata mapping, or an empty map if
// the manifest carries none.
func (p *Package) Metadata() map[string]any {
	if meta, ok := p.Manifest["metadata"].(map[string]any); ok {
		return meta
	}
	return map[string]any{}
}
