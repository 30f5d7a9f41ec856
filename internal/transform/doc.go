// Package transform holds the text transformations applied to script files
// before they are packaged: rewriting monorepo import prefixes into the
// paths a consumer project uses, and stripping sibling stylesheet imports
// whose stylesheets ship as separate registry files.
package transform
