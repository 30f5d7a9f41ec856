//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oakoss/ui-registry/internal/config"
)

// testEnv holds paths to an isolated project.
type testEnv struct {
	ProjectDir  string // project root, contains starters/
	StartersDir string // OAKUI_STARTERS
	OutputDir   string // OAKUI_OUT
}

// setupTestEnv creates an isolated project and points the OAKUI_* variables
// at it so configuration resolves the way the CLI resolves it. The env vars
// are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		ProjectDir:  root,
		StartersDir: filepath.Join(root, "starters"),
		OutputDir:   filepath.Join(root, "public", "r"),
	}

	t.Setenv("OAKUI_ROOT", env.ProjectDir)
	t.Setenv("OAKUI_STARTERS", env.StartersDir)
	t.Setenv("OAKUI_OUT", env.OutputDir)

	if err := os.MkdirAll(env.StartersDir, 0755); err != nil {
		t.Fatalf("creating starters dir: %v", err)
	}
	return env
}

// loadConfig resolves the configuration for the test project.
func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.New())
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

// setupStarters creates the two built-in starters, each with a lib helper
// and a button whose script imports the lib through the monorepo path.
func setupStarters(t *testing.T, startersDir string) {
	t.Helper()

	// --- Tailwind starter ---
	writeFile(t, filepath.Join(startersDir, "react-aria-tailwind", "registry.json"), `{
  "$schema": "https://ui.shadcn.com/schema/registry.json",
  "name": "react-aria-tailwind",
  "homepage": "https://github.com/oakoss/ui",
  "items": [
    {
      "name": "utils",
      "type": "registry:lib",
      "title": "Utilities",
      "dependencies": ["clsx@^2.1.0", "tailwind-merge"],
      "files": [{ "path": "lib/utils.ts", "type": "registry:lib" }]
    },
    {
      "name": "button",
      "type": "registry:ui",
      "title": "Button",
      "description": "A pressable button.",
      "dependencies": ["react-aria-components@^1.5.0"],
      "registryDependencies": [],
      "files": [{ "path": "components/ui/button.tsx", "type": "registry:ui" }]
    },
    {
      "name": "theme",
      "type": "registry:style",
      "cssVars": { "light": { "primary": "oklch(0.2 0 0)" }, "dark": { "primary": "oklch(0.9 0 0)" } },
      "css": null
    }
  ]
}`)
	writeFile(t, filepath.Join(startersDir, "react-aria-tailwind", "src", "lib", "utils.ts"),
		"export function cn(...c: string[]) { return c.join(' '); }\n")
	writeFile(t, filepath.Join(startersDir, "react-aria-tailwind", "src", "components", "ui", "button.tsx"),
		`import { Button as RACButton } from 'react-aria-components';
import { cn } from '@/starters/react-aria-tailwind/src/lib/utils';
import { Icon } from '@/starters/react-aria-tailwind/src/components/ui/icon';

export function Button() { return <RACButton className={cn('btn')} />; }
`)

	// --- CSS starter ---
	writeFile(t, filepath.Join(startersDir, "react-aria-css", "registry.json"), `{
  "name": "react-aria-css",
  "items": [
    {
      "name": "button",
      "type": "registry:ui",
      "files": [
        { "path": "components/ui/Button.tsx", "type": "registry:ui" },
        { "path": "components/ui/Button.css", "type": "registry:ui" }
      ]
    }
  ]
}`)
	writeFile(t, filepath.Join(startersDir, "react-aria-css", "src", "components", "ui", "Button.tsx"),
		`'use client';
import './Button.css';
import './Missing.css';
import { focusRing } from '@/starters/react-aria-css/src/lib/utils';

export function Button() { return null; }
`)
	writeFile(t, filepath.Join(startersDir, "react-aria-css", "src", "components", "ui", "Button.css"),
		".button { color: red; }\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
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

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s should not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
