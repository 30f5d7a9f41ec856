//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/oakoss/ui-registry/internal/registry"
	"github.com/oakoss/ui-registry/internal/scaffold"
	"github.com/oakoss/ui-registry/internal/watch"
)

// TestFullBuild runs the whole pipeline over both starters and checks every
// output file.
func TestFullBuild(t *testing.T) {
	env := setupTestEnv(t)
	setupStarters(t, env.StartersDir)
	cfg := loadConfig(t)

	p, err := registry.New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Items != 4 || len(res.Skipped()) != 0 {
		t.Errorf("Items = %d, Skipped = %v", res.Items, res.Skipped())
	}

	out := env.OutputDir
	for _, name := range []string{
		"react-aria-css-button.json",
		"react-aria-tailwind-utils.json",
		"react-aria-tailwind-button.json",
		"react-aria-tailwind-theme.json",
		"registry.json",
	} {
		assertFileExists(t, filepath.Join(out, name))
	}

	// Import paths are rewritten to the consumer layout.
	tw := filepath.Join(out, "react-aria-tailwind-button.json")
	assertFileContains(t, tw, `"name": "react-aria-tailwind-button"`)
	assertFileContains(t, tw, "@/lib/utils")
	assertFileContains(t, tw, "@/components/ui/icon")
	assertFileNotContains(t, tw, "@/starters/")
	assertFileContains(t, tw, `"registryDependencies": []`)
	assertFileContains(t, tw, `"dependencies": [`)

	// Sibling stylesheet imports are dropped only when the file exists.
	css := filepath.Join(out, "react-aria-css-button.json")
	assertFileNotContains(t, css, "import './Button.css'")
	assertFileContains(t, css, "import './Missing.css'")
	assertFileContains(t, css, ".button { color: red; }")

	// Style items keep their cssVars in input order and drop null blocks.
	theme := readFile(t, filepath.Join(out, "react-aria-tailwind-theme.json"))
	if strings.Index(theme, `"light"`) > strings.Index(theme, `"dark"`) {
		t.Errorf("cssVars key order changed:\n%s", theme)
	}
	if strings.Contains(theme, `"css":`) {
		t.Errorf("null css block should be omitted:\n%s", theme)
	}
	if !strings.Contains(theme, `"files": []`) {
		t.Errorf("style item should carry an empty files list:\n%s", theme)
	}

	var idx registry.Index
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, "registry.json"))), &idx); err != nil {
		t.Fatalf("decoding index: %v", err)
	}
	var names []string
	for _, e := range idx.Items {
		names = append(names, e.Name)
	}
	want := []string{
		"react-aria-css-button",
		"react-aria-tailwind-utils",
		"react-aria-tailwind-button",
		"react-aria-tailwind-theme",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("index items = %v, want %v", names, want)
	}
	if idx.Name != "@oakoss/ui" || idx.Homepage != "https://github.com/oakoss/ui" {
		t.Errorf("index header = %q %q", idx.Name, idx.Homepage)
	}
}

// TestStagedBuildAfterValidate checks the strict + atomic path the CLI takes
// with --strict --atomic.
func TestStagedBuildAfterValidate(t *testing.T) {
	env := setupTestEnv(t)
	setupStarters(t, env.StartersDir)
	writeFile(t, filepath.Join(env.OutputDir, "stale-item.json"), "{}")

	cfg := loadConfig(t)
	cfg.Atomic = true

	p, err := registry.New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues, err := p.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	if _, err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertFileExists(t, filepath.Join(env.OutputDir, "registry.json"))
	assertFileNotExists(t, filepath.Join(env.OutputDir, "stale-item.json"))
	assertFileNotExists(t, registry.StagingDir(env.OutputDir))
}

// TestScaffoldedStarterBuilds creates a starter with the scaffolder and
// builds it alongside the existing ones.
func TestScaffoldedStarterBuilds(t *testing.T) {
	env := setupTestEnv(t)
	setupStarters(t, env.StartersDir)
	cfg := loadConfig(t)

	data, err := scaffold.NewStarterData("my-kit")
	if err != nil {
		t.Fatal(err)
	}
	result, err := scaffold.Generate(data, cfg.StartersDir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("scaffold warnings: %v", result.Warnings)
	}

	p, err := registry.New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertFileContains(t, filepath.Join(env.OutputDir, "my-kit-utils.json"), `"name": "my-kit-utils"`)
	assertFileContains(t, filepath.Join(env.OutputDir, "registry.json"), `"name": "my-kit-utils"`)
}

// TestWatchRebuildsOnChange edits a source file while watching and waits
// for the rebuilt item to carry the new content.
func TestWatchRebuildsOnChange(t *testing.T) {
	env := setupTestEnv(t)
	setupStarters(t, env.StartersDir)
	cfg := loadConfig(t)
	cfg.Debounce = 50 * time.Millisecond

	rebuild := func([]string) error {
		p, err := registry.New(cfg, nil)
		if err != nil {
			return err
		}
		_, err = p.Run()
		return err
	}
	if err := rebuild(nil); err != nil {
		t.Fatalf("initial build: %v", err)
	}

	w, err := watch.New(watch.Options{
		Root:     cfg.SourceRoot,
		Paths:    []string{cfg.StartersDir},
		Ignore:   cfg.WatchIgnore,
		Exclude:  []string{cfg.OutputDir},
		Debounce: cfg.Debounce,
	})
	if err != nil {
		t.Fatalf("watch.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rebuild) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(env.StartersDir, "react-aria-tailwind", "src", "lib", "utils.ts"),
		"export const changed = true;\n")

	target := filepath.Join(env.OutputDir, "react-aria-tailwind-utils.json")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(target); err == nil && strings.Contains(string(data), "changed = true") {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("%s was not rebuilt after the source changed", target)
}
