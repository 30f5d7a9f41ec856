package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/manifest"
)

// Reader loads starter manifests and their source files.
type Reader struct {
	cfg *config.Config
}

// NewReader returns a Reader rooted at cfg.StartersDir.
func NewReader(cfg *config.Config) *Reader {
	return &Reader{cfg: cfg}
}

// Starters returns the names of all directories under the starters
// directory, in directory listing order. Plain files are ignored.
func (r *Reader) Starters() ([]string, error) {
	entries, err := os.ReadDir(r.cfg.StartersDir)
	if err != nil {
		return nil, fmt.Errorf("listing starters in %s: %w", r.cfg.StartersDir, err)
	}

	var names []string
	for _, entry := range entries {
		if isDir(filepath.Join(r.cfg.StartersDir, entry.Name()), entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// StartersWithManifest returns the starters that carry a registry.json.
func (r *Reader) StartersWithManifest() ([]string, error) {
	all, err := r.Starters()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, s := range all {
		if r.HasManifest(s) {
			names = append(names, s)
		}
	}
	return names, nil
}

// HasManifest reports whether the starter has a registry.json.
func (r *Reader) HasManifest(starter string) bool {
	_, err := os.Stat(r.cfg.ManifestPath(starter))
	return err == nil
}

// LoadManifest reads the starter's registry.json. It returns an error
// wrapping ErrNoManifest when the file does not exist; any other failure,
// including malformed JSON, is returned as is.
func (r *Reader) LoadManifest(starter string) (*manifest.Manifest, error) {
	m, err := manifest.ParseFile(r.cfg.ManifestPath(starter))
	if errors.Is(err, manifest.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", starter, ErrNoManifest)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SourcePath resolves a file reference against the starter's src/ root.
func (r *Reader) SourcePath(starter string, ref manifest.FileRef) (string, error) {
	rel := filepath.FromSlash(ref.Path)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%s: %w", ref.Path, ErrPathEscape)
	}
	return filepath.Join(r.cfg.SourcePath(starter), rel), nil
}

// ReadSource returns the full text of a referenced file and the path it
// was read from. A missing file is reported as ErrSourceMissing.
func (r *Reader) ReadSource(starter string, ref manifest.FileRef) (string, string, error) {
	path, err := r.SourcePath(starter, ref)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", path, fmt.Errorf("%s: %w", path, ErrSourceMissing)
	}
	if err != nil {
		return "", path, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}

// isDir follows symlinked starter directories, as a stat-based listing would.
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
