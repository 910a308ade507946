package hub

import "errors"

// Sentinel errors for hub operations.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrInvalidIdentifier indicates a malformed package identifier.
	// Identifiers must take the form "author/name" with both segments
	// non-empty.
	ErrInvalidIdentifier = errors.New("hub: invalid package identifier")

	// ErrPackageNotFound indicates the package does not exist in the
	// registry.
	ErrPackageNotFound = errors.New("hub: package not found in registry")

	// ErrArtifactNotFound indicates no file in a resolved package matches
	// the requested target.
	ErrArtifactNotFound = errors.New("hub: no matching artifact in package")

	// ErrMissingCredential indicates a publish was attempted without a
	// developer key. Set the DSPY_HUB_DEV_KEY environment variable or
	// supply the key explicitly.
	ErrMissingCredential = errors.New("hub: developer key missing")

	// ErrIdentifierMismatch indicates the caller-supplied identifier
	// disagrees with the package's own identifier.
	ErrIdentifierMismatch = errors.New("hub: identifier mismatch")

	// ErrMissingCapability indicates the program object lacks the load or
	// save operation required by the attempted call.
	ErrMissingCapability = errors.New("hub: program missing required capability")

	// ErrDigestMismatch indicates content failed SHA-256 verification
	// against a pinned digest.
	ErrDigestMismatch = errors.New("hub: digest verification failed")

	// ErrRegistry indicates a registry transport failure, a non-2xx
	// response, or an unparseable registry response or manifest.
	ErrRegistry = errors.New("hub: registry error")
)
