package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oakoss/ui-registry/internal/config"
)

// testProject creates an isolated project root and returns its config.
func testProject(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default(root)
	if err := os.MkdirAll(cfg.StartersDir, 0755); err != nil {
		t.Fatalf("creating starters dir: %v", err)
	}
	return cfg
}

// writeStarter creates starters/<name>/registry.json (unless manifest is
// empty) and the given files under starters/<name>/src/.
func writeStarter(t *testing.T, cfg *config.Config, name, manifestJSON string, files map[string]string) {
	t.Helper()
	dir := cfg.StarterPath(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating starter %s: %v", name, err)
	}
	if manifestJSON != "" {
		writeFile(t, cfg.ManifestPath(name), manifestJSON)
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(cfg.SourcePath(name), filepath.FromSlash(rel)), content)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// newPipeline returns a pipeline for cfg with logging discarded.
func newPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	t.Helper()
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

const cardManifest = `{
  "$schema": "https://ui.shadcn.com/schema/registry.json",
  "name": "demo",
  "items": [
    {
      "name": "card",
      "type": "registry:ui",
      "files": [{ "path": "components/ui/Card.tsx", "type": "registry:ui" }]
    }
  ]
}`

const cardSource = `'use client';

import './Card.css';

import { cn } from '@/starters/demo/src/lib/utils';

export function Card() {
  return null;
}
`
