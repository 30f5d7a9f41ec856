package registry

import "encoding/json"

// Item is the on-disk form of one built registry item.
type Item struct {
	Schema               string          `json:"$schema"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	Title                string          `json:"title,omitempty"`
	Description          string          `json:"description,omitempty"`
	Dependencies         []string        `json:"dependencies,omitzero"`
	DevDependencies      []string        `json:"devDependencies,omitzero"`
	RegistryDependencies []string        `json:"registryDependencies,omitzero"`
	Files                []File          `json:"files"`
	CSSVars              json.RawMessage `json:"cssVars,omitempty"`
	CSS                  json.RawMessage `json:"css,omitempty"`
}

// File is one source file of a built item, with its transformed content.
type File struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Target  string `json:"target,omitempty"`
}

// Index is the registry catalog written to registry.json.
type Index struct {
	Schema   string       `json:"$schema"`
	Name     string       `json:"name"`
	Homepage string       `json:"homepage"`
	Items    []IndexEntry `json:"items"`
}

// IndexEntry summarizes one built item in the index.
type IndexEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// StarterResult captures the outcome of processing one starter.
type StarterResult struct {
	Starter string
	Skipped bool     // true when the starter has no registry.json
	Files   []string // output file names, in manifest order
}

// Result summarizes a full build.
type Result struct {
	OutputDir  string
	Starters   []StarterResult
	Items      int
	IndexItems int
}

// Skipped returns the names of starters without a manifest.
func (r *Result) Skipped() []string {
	var names []string
	for _, s := range r.Starters {
		if s.Skipped {
			names = append(names, s.Starter)
		}
	}
	return names
}

// OutputName returns the globally unique name of an item: {starter}-{item}.
func OutputName(starter, item string) string {
	return starter + "-" + item
}

// OutputFile returns the file name an item is written to.
func OutputFile(starter, item string) string {
	return OutputName(starter, item) + ".json"
}
