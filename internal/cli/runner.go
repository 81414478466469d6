package cli

import (
	"fmt"

	"github.com/seitarof/gen-derive/internal/analyzer"
	"github.com/seitarof/gen-derive/internal/defs"
	"github.com/seitarof/gen-derive/internal/generator"
	"github.com/seitarof/gen-derive/internal/loader"
	"github.com/seitarof/gen-derive/internal/logger"
	"github.com/seitarof/gen-derive/internal/matcher"
	"github.com/seitarof/gen-derive/syntax"
)

// Runner orchestrates loader/matcher/analyzer/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	loader    loader.Loader
	defs      defs.Reader
	match     matcher.ItemMatcher
	generator generator.Generator
	log       logger.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(
	l loader.Loader,
	d defs.Reader,
	m matcher.ItemMatcher,
	g generator.Generator,
	log logger.Logger,
) Runner {
	return &runnerImpl{
		loader:    l,
		defs:      d,
		match:     m,
		generator: g,
		log:       log,
	}
}

// Run executes a single inspection cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	items, err := r.load(cfg)
	if err != nil {
		return err
	}
	r.log.Debug("loaded items", "source", cfg.SourceName(), "count", len(items))

	for _, name := range matcher.Missing(items, cfg.Types) {
		r.log.Warn("requested type not found", "type", name, "source", cfg.SourceName())
	}
	selected := r.match.Match(items, cfg.Types, cfg.IgnoreTypes)
	if len(selected) == 0 {
		return fmt.Errorf("no items selected from %q", cfg.SourceName())
	}

	plans, err := analyzer.New(cfg.analyzerOptions()).Analyze(selected)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	logDiagnostics(r.log, plans)

	return r.generator.Generate(cfg, plans)
}

func (r *runnerImpl) load(cfg *Config) ([]syntax.Item, error) {
	if cfg.DefsFile != "" {
		items, err := r.defs.LoadFile(cfg.DefsFile)
		if err != nil {
			return nil, fmt.Errorf("load defs: %w", err)
		}
		return items, nil
	}
	items, err := r.loader.Load(cfg.Package)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	return items, nil
}

func logDiagnostics(log logger.Logger, plans []analyzer.Plan) {
	for _, p := range plans {
		for _, d := range p.Diagnostics {
			switch d.Kind {
			case analyzer.InvalidFields:
				log.Warn("inconsistent field list", "item", p.Item.Name, "reason", d.Msg)
			default:
				log.Warn("annotation ignored", "item", p.Item.Name, "reason", d.Msg)
			}
		}
	}
}
