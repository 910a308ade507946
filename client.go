package hub

import (
	"context"
	"fmt"
	"sort"
)

// client is the concrete implementation of the Client interface.
type client struct {
	// cfg holds the module configuration.
	cfg Config

	// httpClient is used for all HTTP requests.
	httpClient HTTPClient

	// logger receives diagnostic messages. May be nil.
	logger Logger

	// devKey is the default developer key for publish operations.
	devKey string
}

// repositoryFor resolves the registry location for one call and returns
// the matching repository. Settings are read fresh per call; nothing is
// cached between calls.
func (c *client) repositoryFor(cc *callConfig) repository {
	location := cc.registry
	if location == "" {
		location = c.cfg.Registry
	}
	if location == "" {
		location = LoadSettings().Registry
	}
	return newRepository(location, c.httpClient, c.logger)
}

// ListRemote fetches and returns all packages the registry declares,
// sorted by slug.
func (c *client) ListRemote(ctx context.Context, opts ...CallOption) ([]RemoteSummary, error) {
	cc := applyCallOptions(opts)

	packages, err := c.repositoryFor(cc).listPackages(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]RemoteSummary, 0, len(packages))
	for slug, raw := range packages {
		version, _ := raw["version"].(string)
		description, _ := raw["description"].(string)
		summaries = append(summaries, RemoteSummary{
			Slug:        slug,
			Version:     version,
			Description: description,
			Files:       len(rawFileEntries(raw)),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })
	return summaries, nil
}

// GetPackage fetches and materializes a package.
func (c *client) GetPackage(ctx context.Context, identifier string, opts ...CallOption) (*Package, error) {
	cc := applyCallOptions(opts)

	ref, err := ParseRef(identifier)
	if err != nil {
		return nil, fmt.Errorf("identifier %q: %w", identifier, err)
	}

	repo := c.repositoryFor(cc)
	raw, err := repo.getManifest(ctx, ref)
	if err != nil {
		return nil, err
	}

	pkg, err := materialize(ctx, ref, raw, func(ctx context.Context, source string) ([]byte, error) {
		return repo.fetchBytes(ctx, source, cc.onProgress)
	})
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("materialized package", "slug", pkg.Identifier, "files", len(pkg.Files))
	}
	return pkg, nil
}

// LoadProgram fetches a package and loads its selected artifact into the
// program instance.
func (c *client) LoadProgram(ctx context.Context, identifier string, program any, opts ...CallOption) error {
	cc := applyCallOptions(opts)

	pkg, err := c.GetPackage(ctx, identifier, opts...)
	if err != nil {
		return err
	}
	if len(pkg.Files) == 0 {
		return errEmptyPackage(identifier)
	}

	selected, err := resolveFile(pkg, cc.target)
	if err != nil {
		return err
	}

	return stageAndLoad(resolveProgram(program), selected)
}

// PackageProgram saves the program and wraps the artifact in a Package.
func (c *client) PackageProgram(ctx context.Context, identifier string, program any, opts ...CallOption) (*Package, error) {
	cc := applyCallOptions(opts)

	ref, err := ParseRef(identifier)
	if err != nil {
		return nil, fmt.Errorf("identifier %q: %w", identifier, err)
	}

	artifactName := cc.artifactName
	if artifactName == "" {
		artifactName = ref.Name + ".json"
	}

	content, err := stageAndSave(resolveProgram(program), artifactName)
	if err != nil {
		return nil, err
	}

	return assemblePackage(ref, content, nil, artifactName), nil
}

// Publish submits a package to the registry.
func (c *client) Publish(ctx context.Context, identifier string, pkg *Package, metadata map[string]any, opts ...CallOption) (map[string]any, error) {
	cc := applyCallOptions(opts)

	if identifier != "" && identifier != pkg.Identifier {
		return nil, fmt.Errorf("expected %q, got %q: %w", pkg.Identifier, identifier, ErrIdentifierMismatch)
	}

	ref, err := ParseRef(pkg.Identifier)
	if err != nil {
		return nil, fmt.Errorf("identifier %q: %w", pkg.Identifier, err)
	}

	devKey := cc.devKey
	if devKey == "" {
		devKey = c.devKey
	}
	if devKey == "" {
		devKey = LoadSettings().DevKey
	}
	if devKey == "" {
		return nil, fmt.Errorf("set the %s environment variable or pass a key explicitly: %w",
			DevKeyEnvVar, ErrMissingCredential)
	}

	payload := buildPublishPayload(ref, pkg, metadata)
	return c.repositoryFor(cc).publish(ctx, ref, payload, devKey)
}

// PublishProgram saves the program and publishes the resulting package.
func (c *client) PublishProgram(ctx context.Context, identifier string, program any, metadata map[string]any, opts ...CallOption) (map[string]any, error) {
	pkg, err := c.PackageProgram(ctx, identifier, program, opts...)
	if err != nil {
		return nil, err
	}
	return c.Publish(ctx, identifier, pkg, metadata, opts...)
}

// applyCallOptions folds per-call options into a callConfig.
func applyCallOptions(opts []CallOption) *callConfig {
	cc := &callConfig{}
	for _, opt := range opts {
		opt(cc)
	}
	return cc
}
