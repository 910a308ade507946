package hub

import "net/http"

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	// httpClient is used for all HTTP requests to the registry.
	httpClient HTTPClient

	// logger receives diagnostic log messages.
	logger Logger

	// devKey is the default developer key for publish operations.
	devKey string
}

// newClientConfig returns a clientConfig with default values.
func newClientConfig() *clientConfig {
	return &clientConfig{
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient sets a custom HTTP client for registry requests.
// Useful for testing with mock servers or customizing timeouts.
// If not set, http.DefaultClient is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets a logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(logger Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithDevKey sets a default developer key used by publish operations
// when no per-call key is supplied. If neither is set, the
// DSPY_HUB_DEV_KEY environment variable is consulted.
func WithDevKey(key string) Option {
	return func(c *clientConfig) {
		c.devKey = key
	}
}

// CallOption configures a single Client call.
type CallOption func(*callConfig)

// callConfig holds per-call configuration.
type callConfig struct {
	// registry overrides the registry location for this call.
	registry string

	// target is the artifact target hint for file resolution.
	target string

	// artifactName overrides the produced artifact's filename.
	artifactName string

	// devKey overrides the developer key for this publish.
	devKey string

	// onProgress receives byte deltas as file content is fetched.
	onProgress func(delta int64)
}

// WithRegistry overrides the registry location for a single call.
func WithRegistry(location string) CallOption {
	return func(c *callConfig) {
		c.registry = location
	}
}

// WithTarget selects which package file to load, by exact target path or
// basename suffix. Without it, the first file in declaration order is
// used.
func WithTarget(target string) CallOption {
	return func(c *callConfig) {
		c.target = target
	}
}

// WithArtifactName overrides the artifact filename produced when
// packaging a program. The default is "<name>.json".
func WithArtifactName(name string) CallOption {
	return func(c *callConfig) {
		c.artifactName = name
	}
}

// WithCallDevKey supplies the developer key for a single publish call.
func WithCallDevKey(key string) CallOption {
	return func(c *callConfig) {
		c.devKey = key
	}
}

// WithFetchProgress sets a callback receiving byte deltas as package
// file content is fetched. The callback must be safe for reuse across
// the sequential fetches of one call.
func WithFetchProgress(fn func(delta int64)) CallOption {
	return func(c *callConfig) {
		c.onProgress = fn
	}
}

// HTTPClient is the interface for HTTP operations.
// *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// Logger is the interface for diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
