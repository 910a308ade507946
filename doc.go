// Package hub provides functionality for consuming and publishing
// serialized program packages through a DSPy Hub registry.
//
// The package serves two primary use cases:
//
//  1. Programmatic API via the Client interface - Applications can use
//     New to create a Client that materializes packages from a registry,
//     loads them into program instances, and publishes locally saved
//     program artifacts back to the registry.
//
//  2. Embeddable CLI via NewCommand - Parent CLI tools can attach a
//     complete "hub" subcommand tree to their Cobra root command,
//     providing commands like "mytool hub pull", "mytool hub publish".
//
// # Thread Safety
//
// The Client interface is safe for concurrent use. Package and File
// values are immutable after construction and safe to share read-only
// across goroutines.
//
// # Content Verification
//
// Registry manifests are treated as untrusted input. Every fetched file
// is re-hashed with SHA-256 and the package's aggregate hash is
// recomputed from the observed per-file digests; digests declared by
// the registry are never trusted.
//
// # Registry Location
//
// The registry location is resolved from, in priority order: an explicit
// per-call override, the Config passed to New, the DSPY_HUB_REGISTRY
// environment variable, an optional YAML config file, and a built-in
// default. A location without a URL scheme is treated as a local
// filesystem registry directory.
package hub
