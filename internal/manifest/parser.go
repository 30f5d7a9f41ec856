package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned by ParseFile when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Parse decodes manifest JSON. A manifest without an items array is rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON: %w", err)
	}
	if m.Items == nil {
		return nil, fmt.Errorf("manifest missing required 'items' array")
	}
	return &m, nil
}

// ParseFile reads and decodes the manifest at path. It returns an error
// wrapping ErrNotFound when the file does not exist.
func ParseFile(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
