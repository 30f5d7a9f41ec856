// Package config resolves the settings of a registry build: the project root,
// the starters directory, the output directory and the optional rewrite,
// watch and logging settings. Values come from command line flags, OAKUI_*
// environment variables (a project .env file is honored), an optional
// oakui.yaml at the project root, and built-in defaults, in that order.
//
// A Config is built once at the entry point and passed to every component.
package config
