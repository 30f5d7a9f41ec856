package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oakoss/ui-registry/internal/config"
)

// Marshal encodes v the way every registry file is written: two-space
// indent, no HTML escaping, no trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeJSON marshals v and writes it to path, replacing any existing file.
func writeJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, config.FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
