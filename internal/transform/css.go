package transform

import (
	"os"
	"path/filepath"
	"regexp"
)

// cssImport matches a side-effect import of a relative stylesheet, e.g.
// `import './Button.css';`, together with its trailing newline.
var cssImport = regexp.MustCompile(`import\s+['"]\./([^'"]+\.css)['"]\s*;?\n?`)

// StripCSSImports removes relative stylesheet imports from the content of the
// script at filePath when the stylesheet exists next to it. Imports whose
// stylesheet is missing are left untouched; their resolved paths are
// returned so the caller can report them.
func StripCSSImports(content, filePath string) (string, []string) {
	dir := filepath.Dir(filePath)
	var missing []string

	out := cssImport.ReplaceAllStringFunc(content, func(match string) string {
		name := cssImport.FindStringSubmatch(match)[1]
		cssPath := filepath.Join(dir, filepath.FromSlash(name))
		if _, err := os.Stat(cssPath); err == nil {
			return ""
		}
		missing = append(missing, cssPath)
		return match
	})

	return out, missing
}
