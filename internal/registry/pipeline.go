package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oakoss/ui-registry/internal/branding"
	"github.com/oakoss/ui-registry/internal/config"
	"github.com/oakoss/ui-registry/internal/logging"
	"github.com/oakoss/ui-registry/internal/transform"
)

// stagingSuffix is appended to the output dir for staged builds.
const stagingSuffix = ".tmp"

// Pipeline drives a registry build for one configuration.
type Pipeline struct {
	cfg     *config.Config
	reader  *Reader
	logger  *slog.Logger
	extra   []transform.Rule
	builder *Builder
	outDir  string
	written map[string]string // output file -> starter
}

// New returns a Pipeline for cfg. The configuration is validated and extra
// rewrite rules are compiled here so a bad setting fails before anything is
// written.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extra := make([]transform.Rule, 0, len(cfg.Rules))
	for i, rc := range cfg.Rules {
		rule, err := transform.NewRule(fmt.Sprintf("config:%d", i), rc.Match, rc.Replace)
		if err != nil {
			return nil, err
		}
		extra = append(extra, rule)
	}

	return &Pipeline{
		cfg:     cfg,
		reader:  NewReader(cfg),
		logger:  logger,
		extra:   extra,
		outDir:  cfg.OutputDir,
		written: make(map[string]string),
	}, nil
}

// Reader returns the pipeline's source tree reader.
func (p *Pipeline) Reader() *Reader {
	return p.reader
}

// Run ensures the output directory exists, processes every starter in
// listing order and then writes the index. With cfg.Atomic set the build is
// staged next to the output directory and swapped in only on success.
func (p *Pipeline) Run() (*Result, error) {
	p.logger.Info("building registry", "starters", p.cfg.StartersDir, "out", p.cfg.OutputDir)

	if p.cfg.Atomic {
		// cfg may have changed since New; the swap removes the output dir.
		if err := p.cfg.Validate(); err != nil {
			return nil, err
		}
		return p.runStaged()
	}

	if err := os.MkdirAll(p.cfg.OutputDir, config.DirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", p.cfg.OutputDir, err)
	}
	return p.run(p.cfg.OutputDir)
}

func (p *Pipeline) run(outDir string) (*Result, error) {
	p.outDir = outDir
	p.written = make(map[string]string)

	starters, err := p.prepare()
	if err != nil {
		return nil, err
	}

	res := &Result{OutputDir: p.cfg.OutputDir}
	for _, starter := range starters {
		sr, err := p.ProcessStarter(starter)
		if err != nil {
			return nil, err
		}
		res.Starters = append(res.Starters, *sr)
		res.Items += len(sr.Files)
	}

	idx, err := p.BuildIndex()
	if err != nil {
		return nil, err
	}
	res.IndexItems = len(idx.Items)

	p.logger.Info("registry build complete", "items", res.Items, "skipped", len(res.Skipped()))
	return res, nil
}

// runStaged builds into <out>.tmp, then replaces <out> with it. Files in the
// old output directory that the new build does not produce are dropped.
func (p *Pipeline) runStaged() (res *Result, err error) {
	out := filepath.Clean(p.cfg.OutputDir)
	staging := StagingDir(out)

	// Clean up any leftover staging dir from a previous failed attempt.
	_ = os.RemoveAll(staging)
	if err := os.MkdirAll(staging, config.DirPerm); err != nil {
		return nil, fmt.Errorf("creating staging directory %s: %w", staging, err)
	}
	defer func() {
		p.outDir = out
		if err != nil {
			_ = os.RemoveAll(staging)
		}
	}()

	res, err = p.run(staging)
	if err != nil {
		return nil, err
	}

	if err = os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("removing previous output %s: %w", out, err)
	}
	if err = os.Rename(staging, out); err != nil {
		return nil, fmt.Errorf("finalizing staged output: %w", err)
	}
	return res, nil
}

// StagingDir returns the directory a staged build of out is written to.
func StagingDir(out string) string {
	return filepath.Clean(out) + stagingSuffix
}

// prepare lists the starters and builds the rewrite table for them.
func (p *Pipeline) prepare() ([]string, error) {
	starters, err := p.reader.Starters()
	if err != nil {
		return nil, err
	}
	rules := append(transform.DefaultRules(starters...), p.extra...)
	p.builder = NewBuilder(p.reader, transform.NewRewriter(rules...), p.logger)
	return starters, nil
}

// ProcessStarter builds and writes every item of one starter. A starter
// without registry.json is skipped and reported as such, not as an error.
func (p *Pipeline) ProcessStarter(starter string) (*StarterResult, error) {
	if p.builder == nil {
		if _, err := p.prepare(); err != nil {
			return nil, err
		}
	}

	res := &StarterResult{Starter: starter}

	m, err := p.reader.LoadManifest(starter)
	if errors.Is(err, ErrNoManifest) {
		p.logger.Info("skipping starter: no registry.json found", "starter", starter)
		res.Skipped = true
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	p.logger.Info("processing starter", "starter", starter, "items", len(m.Items))

	for _, item := range m.Items {
		built, err := p.builder.BuildItem(starter, item)
		if err != nil {
			return nil, err
		}
		built.Name = OutputName(starter, item.Name)

		name := OutputFile(starter, item.Name)
		if prev, ok := p.written[name]; ok {
			p.logger.Warn("output name collision, overwriting", "file", name, "previous", prev, "starter", starter)
		}
		if err := writeJSON(filepath.Join(p.outDir, name), built); err != nil {
			return nil, err
		}
		p.written[name] = starter

		p.logger.Info("built", "file", name)
		res.Files = append(res.Files, name)
	}

	return res, nil
}

// BuildIndex assembles the index and overwrites registry.json in the
// output directory.
func (p *Pipeline) BuildIndex() (*Index, error) {
	idx, err := p.Index()
	if err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(p.outDir, config.IndexFile), idx); err != nil {
		return nil, err
	}
	p.logger.Info("built index", "file", config.IndexFile, "items", len(idx.Items))
	return idx, nil
}

// Index re-reads every starter manifest and returns the index entries in
// starter listing order, then manifest declaration order. Nothing is written.
func (p *Pipeline) Index() (*Index, error) {
	starters, err := p.reader.StartersWithManifest()
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Schema:   branding.IndexSchema(),
		Name:     branding.RegistryName(),
		Homepage: branding.Homepage(),
		Items:    []IndexEntry{},
	}
	for _, starter := range starters {
		m, err := p.reader.LoadManifest(starter)
		if err != nil {
			return nil, err
		}
		for _, item := range m.Items {
			idx.Items = append(idx.Items, summarize(starter, item))
		}
	}
	return idx, nil
}
