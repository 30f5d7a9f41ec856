// Package scaffold generates new starters from embedded templates. It powers
// the "oakui init-starter" command, producing a registry.json manifest and the
// src/ tree the registry build reads from.
package scaffold
