// Package registry builds shadcn-compatible registry files from component
// starters. For every starter directory that carries a registry.json it
// reads the referenced source files, rewrites monorepo import paths, drops
// sibling stylesheet imports, and writes one {starter}-{item}.json per item.
// A final pass writes registry.json, the index of every item across every
// starter. Runs are synchronous and fail fast: the first error aborts.
package registry
