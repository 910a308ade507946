package hub

import "context"

// RemoteSummary describes one package declared by a registry index.
type RemoteSummary struct {
	// Slug is the "author/name" identifier.
	Slug string `json:"slug"`

	// Version is the declared package version, if any.
	Version string `json:"version,omitempty"`

	// Description is the declared package description, if any.
	Description string `json:"description,omitempty"`

	// Files is the number of files the manifest declares.
	Files int `json:"files"`
}

// Client provides programmatic access to a hub registry.
// All methods are safe for concurrent use.
// For CLI integration, use NewCommand instead.
type Client interface {
	// ListRemote fetches and returns all packages the registry declares.
	ListRemote(ctx context.Context, opts ...CallOption) ([]RemoteSummary, error)

	// GetPackage fetches a package's manifest and file contents and
	// returns a verified Package. File digests and the aggregate hash are
	// recomputed from the fetched bytes.
	// Returns ErrInvalidIdentifier for a malformed identifier and
	// ErrPackageNotFound if the registry has no such package.
	GetPackage(ctx context.Context, identifier string, opts ...CallOption) (*Package, error)

	// LoadProgram fetches a package and loads its artifact into program,
	// which must expose Load(path). The artifact is staged in a temporary
	// directory that is removed before LoadProgram returns.
	// Use WithTarget to select among multi-file packages.
	LoadProgram(ctx context.Context, identifier string, program any, opts ...CallOption) error

	// PackageProgram saves program, which must expose Save(path), and
	// wraps the produced artifact in a single-file Package ready for
	// Publish. Use WithArtifactName to override the "<name>.json"
	// default.
	PackageProgram(ctx context.Context, identifier string, program any, opts ...CallOption) (*Package, error)

	// Publish submits a package to the registry and returns the parsed
	// registry response. A developer key is required: per-call option,
	// client option, or DSPY_HUB_DEV_KEY; otherwise ErrMissingCredential
	// is returned before any network I/O. Returns ErrIdentifierMismatch
	// if identifier disagrees with the package's own.
	Publish(ctx context.Context, identifier string, pkg *Package, metadata map[string]any, opts ...CallOption) (map[string]any, error)

	// PublishProgram saves program and publishes the resulting package in
	// one call.
	PublishProgram(ctx context.Context, identifier string, program any, metadata map[string]any, opts ...CallOption) (map[string]any, error)
}

// Ensure client implements Client interface.
var _ Client = (*client)(nil)

// New creates a Client. A zero Config is valid: the registry location is
// then resolved from the environment on each call.
func New(cfg Config, opts ...Option) Client {
	ccfg := newClientConfig()
	for _, opt := range opts {
		opt(ccfg)
	}

	return &client{
		cfg:        cfg,
		httpClient: ccfg.httpClient,
		logger:     ccfg.logger,
		devKey:     ccfg.devKey,
	}
}
