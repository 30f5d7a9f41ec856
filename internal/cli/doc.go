// Package cli defines the Cobra command tree for the oakui CLI. Each file in
// this package registers one top-level command (build, validate, watch, etc.)
// with the root command. Command implementations delegate to internal
// packages for business logic and only handle flag parsing, configuration
// and output formatting.
package cli
