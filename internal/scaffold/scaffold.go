package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/oakoss/ui-registry/internal/branding"
	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/manifest"
)

// templateSet is the embedded directory holding the starter templates.
const templateSet = "scaffolds/starter"

// emptyDirs are created even though no template lives in them.
var emptyDirs = []string{
	filepath.Join(config.SourceDir, "components", "ui"),
	filepath.Join(config.SourceDir, "hooks"),
}

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// StarterData holds all template variables available to scaffold templates.
type StarterData struct {
	Name     string // e.g., "react-aria-css"
	Title    string // Derived: "React Aria Css"
	Homepage string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string // slash separated, relative to OutputDir
	Warnings  []string
}

// NewStarterData validates name and derives the remaining fields.
func NewStarterData(name string) (*StarterData, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("invalid starter name %q: use lowercase letters, digits and dashes", name)
	}

	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}

	return &StarterData{
		Name:     name,
		Title:    strings.Join(words, " "),
		Homepage: branding.Homepage(),
	}, nil
}

// Generate creates a new starter directory under startersDir.
func Generate(data *StarterData, startersDir string) (*Result, error) {
	outputDir := filepath.Join(startersDir, data.Name)

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("starter directory %s is not empty; remove existing files first", outputDir)
	}

	if err := os.MkdirAll(outputDir, config.DirPerm); err != nil {
		return nil, fmt.Errorf("creating starter directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(scaffoldFS, templateSet, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, templateSet+"/"), ".tmpl")
		outPath := filepath.Join(outputDir, filepath.FromSlash(rel))

		tmplBytes, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		tmpl, err := template.New(path.Base(p)).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", p, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), config.DirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), config.FilePerm); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, dir := range emptyDirs {
		if err := os.MkdirAll(filepath.Join(outputDir, dir), config.DirPerm); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, config.ManifestFile)
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
