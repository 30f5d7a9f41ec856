// Package watch rebuilds the registry when starter sources change.
//
// A Watcher registers every directory below its roots with fsnotify,
// filters events through doublestar ignore globs and the excluded
// directories, and delivers the changed paths in debounced batches.
package watch
