// Package branding provides compile-time identity values for the CLI and the
// fixed constants stamped into every registry file it emits.
//
// Values come from branding.yaml, baked into the binary with //go:embed.
// Hard-coded defaults apply when a key is missing from the file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	EnvPrefix    string `yaml:"env_prefix"`
	RegistryName string `yaml:"registry_name"`
	Homepage     string `yaml:"homepage"`
	ItemSchema   string `yaml:"item_schema"`
	IndexSchema  string `yaml:"index_schema"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:      "oakui",
			DisplayName:  "Oakoss UI",
			Description:  "Build shadcn-compatible registry files from component starters",
			EnvPrefix:    "OAKUI",
			RegistryName: "@oakoss/ui",
			Homepage:     "https://github.com/oakoss/ui",
			ItemSchema:   "https://ui.shadcn.com/schema/registry-item.json",
			IndexSchema:  "https://ui.shadcn.com/schema/registry.json",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "oakui").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "OAKUI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RegistryName returns the name written into the registry index.
func RegistryName() string { load(); return defaults.RegistryName }

// Homepage returns the homepage written into the registry index.
func Homepage() string { load(); return defaults.Homepage }

// ItemSchema returns the $schema URL of a per-item registry file.
func ItemSchema() string { load(); return defaults.ItemSchema }

// IndexSchema returns the $schema URL of the registry index.
func IndexSchema() string { load(); return defaults.IndexSchema }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("out") → "OAKUI_OUT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
