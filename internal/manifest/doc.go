// Package manifest handles parsing and validation of starter registry
// manifests (registry.json). A manifest lists the distributable items of one
// starter; each item names its source files relative to the starter's src/
// directory. Validation runs the embedded JSON schema and then the checks a
// schema cannot express: unique names, non-empty file lists and parseable
// dependency version ranges.
package manifest
