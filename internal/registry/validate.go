package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakoss/ui-registry/internal/manifest"
)

// Issue is one problem found while validating the starters.
type Issue struct {
	Starter string
	Path    string // JSON pointer into registry.json, empty for file-level issues
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Starter, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Starter, i.Path, i.Message)
}

// Validate checks every starter manifest against the schema and the
// semantic rules, and checks that every referenced source file exists.
// The error return is for manifests that cannot be read or parsed at all.
func (p *Pipeline) Validate() ([]Issue, error) {
	starters, err := p.reader.StartersWithManifest()
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, starter := range starters {
		result, err := manifest.ValidateFile(p.cfg.ManifestPath(starter))
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", starter, err)
		}
		for _, vi := range result.Issues {
			issues = append(issues, Issue{Starter: starter, Path: vi.Path, Message: vi.Message})
		}
		if !result.Valid {
			continue
		}

		m, err := p.reader.LoadManifest(starter)
		if err != nil {
			return nil, err
		}
		issues = append(issues, p.checkSources(starter, m)...)
	}

	return issues, nil
}

// checkSources reports file references that do not resolve to a file.
func (p *Pipeline) checkSources(starter string, m *manifest.Manifest) []Issue {
	var issues []Issue
	for i, item := range m.Items {
		for j, ref := range item.Files {
			pointer := fmt.Sprintf("/items/%d/files/%d/path", i, j)
			path, err := p.reader.SourcePath(starter, ref)
			if err != nil {
				issues = append(issues, Issue{Starter: starter, Path: pointer, Message: err.Error()})
				continue
			}
			info, err := os.Stat(path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				issues = append(issues, Issue{Starter: starter, Path: pointer, Message: fmt.Sprintf("%s: %v", path, ErrSourceMissing)})
			case err != nil:
				issues = append(issues, Issue{Starter: starter, Path: pointer, Message: err.Error()})
			case info.IsDir():
				issues = append(issues, Issue{Starter: starter, Path: pointer, Message: fmt.Sprintf("%s is a directory", path)})
			}
		}
	}
	return issues
}
