// Command dspy-hub is the standalone CLI for the hub package.
//
// Configuration is loaded from environment variables:
//   - DSPY_HUB_REGISTRY: registry index URL or local registry directory
//     (default: the public hub index)
//   - DSPY_HUB_DEV_KEY: developer key for publish operations
//   - DSPY_HUB_DEBUG: set to enable diagnostic logging
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	hub "github.com/kmad/dspy-hub"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid command line arguments or a
	// malformed package identifier.
	ExitInvalidArgs = 2

	// ExitPackageNotFound indicates the package was not found in the
	// registry.
	ExitPackageNotFound = 3

	// ExitArtifactNotFound indicates no file in the package matched the
	// requested target.
	ExitArtifactNotFound = 4

	// ExitMissingCredential indicates a publish was attempted without a
	// developer key.
	ExitMissingCredential = 5

	// ExitRegistryError indicates a registry or network failure.
	ExitRegistryError = 6
)

func main() {
	var opts []hub.Option
	if os.Getenv("DSPY_HUB_DEBUG") != "" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
			os.Exit(ExitGeneralError)
		}
		defer logger.Sync()
		opts = append(opts, hub.WithLogger(zapLogger{logger.Sugar()}))
	}

	// Registry resolution (env, config file, default) happens inside the
	// hub package; a zero Config means "use the environment".
	cmd := hub.NewCommand(hub.Config{}, opts...)
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// zapLogger adapts a zap SugaredLogger to the hub.Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debug(msg string, keysAndValues ...any) { l.s.Debugw(msg, keysAndValues...) }
func (l zapLogger) Info(msg string, keysAndValues ...any)  { l.s.Infow(msg, keysAndValues...) }
func (l zapLogger) Warn(msg string, keysAndValues ...any)  { l.s.Warnw(msg, keysAndValues...) }
func (l zapLogger) Error(msg string, keysAndValues ...any) { l.s.Errorw(msg, keysAndValues...) }

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, hub.ErrInvalidIdentifier):
		return ExitInvalidArgs
	case errors.Is(err, hub.ErrPackageNotFound):
		return ExitPackageNotFound
	case errors.Is(err, hub.ErrArtifactNotFound):
		return ExitArtifactNotFound
	case errors.Is(err, hub.ErrMissingCredential):
		return ExitMissingCredential
	case errors.Is(err, hub.ErrRegistry), errors.Is(err, hub.ErrDigestMismatch):
		return ExitRegistryError
	default:
		return ExitGeneralError
	}
}
