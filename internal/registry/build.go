package registry

import (
	"log/slog"

	"github.com/oakoss/ui-registry/internal/branding"
	"github.com/oakoss/ui-registry/internal/manifest"
	"github.com/oakoss/ui-registry/internal/transform"
)

// Builder turns manifest items into registry items.
type Builder struct {
	reader   *Reader
	rewriter *transform.Rewriter
	logger   *slog.Logger
}

// NewBuilder returns a Builder that reads through reader and rewrites
// script imports with rewriter.
func NewBuilder(reader *Reader, rewriter *transform.Rewriter, logger *slog.Logger) *Builder {
	return &Builder{reader: reader, rewriter: rewriter, logger: logger}
}

// BuildItem resolves every file of item, transforms script files, and
// assembles the registry item under the bare item name. Optional fields are
// only carried when present on the input.
func (b *Builder) BuildItem(starter string, item manifest.Item) (*Item, error) {
	if item.RequiresFiles() && len(item.Files) == 0 {
		return nil, &ItemError{Starter: starter, Item: item.Name, Err: ErrNoFiles}
	}

	files := make([]File, 0, len(item.Files))
	for _, ref := range item.Files {
		f, err := b.buildFile(starter, ref)
		if err != nil {
			return nil, &ItemError{Starter: starter, Item: item.Name, Err: err}
		}
		files = append(files, f)
	}

	out := &Item{
		Schema:               branding.ItemSchema(),
		Name:                 item.Name,
		Type:                 item.Type,
		Title:                item.Title,
		Description:          item.Description,
		Dependencies:         item.Dependencies,
		DevDependencies:      item.DevDependencies,
		RegistryDependencies: item.RegistryDependencies,
		Files:                files,
	}
	if manifest.HasRaw(item.CSSVars) {
		out.CSSVars = item.CSSVars
	}
	if manifest.HasRaw(item.CSS) {
		out.CSS = item.CSS
	}
	return out, nil
}

// buildFile reads one file reference. Imports are rewritten before
// stylesheet imports are stripped, and only for script files.
func (b *Builder) buildFile(starter string, ref manifest.FileRef) (File, error) {
	content, path, err := b.reader.ReadSource(starter, ref)
	if err != nil {
		return File{}, err
	}

	if transform.IsScript(ref.Path) {
		content = b.rewriter.Rewrite(content)

		var missing []string
		content, missing = transform.StripCSSImports(content, path)
		for _, css := range missing {
			b.logger.Debug("keeping stylesheet import: file not found",
				"starter", starter, "file", ref.Path, "stylesheet", css)
		}
	}

	return File{
		Path:    ref.Path,
		Type:    ref.Type,
		Content: content,
		Target:  ref.Target,
	}, nil
}

// summarize returns the index entry for an item of starter.
func summarize(starter string, item manifest.Item) IndexEntry {
	return IndexEntry{
		Name:        OutputName(starter, item.Name),
		Type:        item.Type,
		Title:       item.Title,
		Description: item.Description,
	}
}

