package manifest

import (
	"bytes"
	"encoding/json"
)

// Manifest is the decoded form of a starter's registry.json.
type Manifest struct {
	Schema   string `json:"$schema,omitempty"`
	Name     string `json:"name"`
	Homepage string `json:"homepage,omitempty"`
	Items    []Item `json:"items"`
}

// Item describes one distributable unit: a component, hook, helper or style.
//
// Dependency lists use omitzero so an explicit empty list survives a round
// trip while an absent one stays absent. CSSVars and CSS are kept as raw JSON
// to preserve key order.
type Item struct {
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	Title                string          `json:"title,omitempty"`
	Description          string          `json:"description,omitempty"`
	Dependencies         []string        `json:"dependencies,omitzero"`
	DevDependencies      []string        `json:"devDependencies,omitzero"`
	RegistryDependencies []string        `json:"registryDependencies,omitzero"`
	Files                []FileRef       `json:"files"`
	CSSVars              json.RawMessage `json:"cssVars,omitempty"`
	CSS                  json.RawMessage `json:"css,omitempty"`
}

// FileRef points at a source file relative to the starter's src/ directory.
type FileRef struct {
	Path   string `json:"path"`
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

// Item type constants for the type discriminator field.
const (
	TypeUI        = "registry:ui"
	TypeLib       = "registry:lib"
	TypeComponent = "registry:component"
	TypeHook      = "registry:hook"
	TypeStyle     = "registry:style"
)

// ValidTypes contains all valid item and file type values.
var ValidTypes = []string{
	TypeUI,
	TypeLib,
	TypeComponent,
	TypeHook,
	TypeStyle,
}

// IsValidType reports whether t is one of ValidTypes.
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// RequiresFiles reports whether an item of this type must list at least one
// file. Style entries may consist of cssVars/css alone.
func (it *Item) RequiresFiles() bool {
	return it.Type != TypeStyle
}

// HasRaw reports whether a raw JSON block was present and not null.
func HasRaw(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
