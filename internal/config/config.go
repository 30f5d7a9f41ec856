package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/oakoss/ui-registry/internal/branding"
	"github.com/spf13/viper"
)

// File and directory name conventions.
const (
	FileName        = "oakui"
	fileType        = "yaml"
	ManifestFile    = "registry.json"
	IndexFile       = "registry.json"
	SourceDir       = "src"
	DefaultRoot     = "."
	StartersDir     = "starters"
	DefaultOutDir   = "public/r"
	DefaultDebounce = 300 * time.Millisecond
)

// Viper keys. Environment variables are derived from them, e.g.
// "watch.debounce" → OAKUI_WATCH_DEBOUNCE.
const (
	KeyRoot          = "root"
	KeyOut           = "out"
	KeyStarters      = "starters"
	KeyAtomic        = "build.atomic"
	KeyRules         = "rewrite.rules"
	KeyWatchIgnore   = "watch.ignore"
	KeyWatchDebounce = "watch.debounce"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
)

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// DefaultWatchIgnore are the glob patterns skipped by watch mode.
var DefaultWatchIgnore = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/.DS_Store",
	"**/*~",
	"**/*.swp",
}

// RuleConfig is a user supplied import rewrite rule.
type RuleConfig struct {
	Match   string `mapstructure:"match" yaml:"match"`
	Replace string `mapstructure:"replace" yaml:"replace"`
}

// Config holds the resolved settings for one invocation.
type Config struct {
	SourceRoot  string        `yaml:"root"`
	OutputDir   string        `yaml:"out"`
	StartersDir string        `yaml:"starters"`
	Atomic      bool          `yaml:"atomic"`
	Rules       []RuleConfig  `yaml:"rules,omitempty"`
	WatchIgnore []string      `yaml:"watch_ignore"`
	Debounce    time.Duration `yaml:"debounce"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
}

// New returns a Viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRoot, DefaultRoot)
	v.SetDefault(KeyOut, "")
	v.SetDefault(KeyStarters, "")
	v.SetDefault(KeyAtomic, false)
	v.SetDefault(KeyWatchIgnore, DefaultWatchIgnore)
	v.SetDefault(KeyWatchDebounce, DefaultDebounce)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration for root with every other value defaulted.
func Default(root string) *Config {
	return &Config{
		SourceRoot:  root,
		OutputDir:   filepath.Join(root, DefaultOutDir),
		StartersDir: filepath.Join(root, StartersDir),
		WatchIgnore: append([]string(nil), DefaultWatchIgnore...),
		Debounce:    DefaultDebounce,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load resolves a Config from v. The project .env file and oakui.yaml are
// read from the resolved root; both are optional.
func Load(v *viper.Viper) (*Config, error) {
	root, err := filepath.Abs(v.GetString(KeyRoot))
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	if err := loadDotEnv(root); err != nil {
		return nil, err
	}
	if err := readConfigFile(v, root); err != nil {
		return nil, err
	}

	cfg := Default(root)
	if out := v.GetString(KeyOut); out != "" {
		cfg.OutputDir = resolve(root, out)
	}
	if starters := v.GetString(KeyStarters); starters != "" {
		cfg.StartersDir = resolve(root, starters)
	}
	cfg.Atomic = v.GetBool(KeyAtomic)
	cfg.WatchIgnore = v.GetStringSlice(KeyWatchIgnore)
	cfg.Debounce = v.GetDuration(KeyWatchDebounce)
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogFormat = v.GetString(KeyLogFormat)

	if err := v.UnmarshalKey(KeyRules, &cfg.Rules); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", KeyRules, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught by type conversion.
func (c *Config) Validate() error {
	if c.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Debounce)
	}
	for i, r := range c.Rules {
		if r.Match == "" {
			return fmt.Errorf("rewrite rule %d: match must not be empty", i)
		}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if err := c.checkOutputDir(); err != nil {
		return err
	}
	return nil
}

// checkOutputDir rejects output directories that overlap the sources. A
// staged build replaces the whole output directory, so with Atomic set the
// output may not be the project root or any directory above it either.
func (c *Config) checkOutputDir() error {
	out := filepath.Clean(c.OutputDir)
	starters := filepath.Clean(c.StartersDir)

	if within(out, starters) || within(starters, out) {
		return fmt.Errorf("output directory %s overlaps the starters directory %s", out, starters)
	}
	if c.Atomic && within(filepath.Clean(c.SourceRoot), out) {
		return fmt.Errorf("output directory %s contains the project root; --atomic would replace it", out)
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

// FilePath returns the path of the optional project config file.
func FilePath(root string) string {
	return filepath.Join(root, FileName+"."+fileType)
}

// StarterPath returns the directory of a starter.
func (c *Config) StarterPath(starter string) string {
	return filepath.Join(c.StartersDir, starter)
}

// ManifestPath returns the registry.json path of a starter.
func (c *Config) ManifestPath(starter string) string {
	return filepath.Join(c.StartersDir, starter, ManifestFile)
}

// SourcePath returns the source root of a starter, against which manifest
// file paths are resolved.
func (c *Config) SourcePath(starter string) string {
	return filepath.Join(c.StartersDir, starter, SourceDir)
}

// IndexPath returns the path of the registry index in the output directory.
func (c *Config) IndexPath() string {
	return filepath.Join(c.OutputDir, IndexFile)
}

// readConfigFile merges oakui.yaml into v when it exists. A file that exists
// but cannot be parsed is an error.
func readConfigFile(v *viper.Viper, root string) error {
	path := FilePath(root)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads root/.env without overriding variables already set.
func loadDotEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
