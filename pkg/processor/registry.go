package processor

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jmylchreest/distill/internal/logger"
)

// ErrUnknownStage is returned by Registry.New for unregistered names.
var ErrUnknownStage = errors.New("unknown processing stage")

// Factory builds a stage from its configuration.
type Factory func(cfg StageConfig) (Processor, error)

// Registry maps configuration names to stage factories.
// Register everything before sharing the registry; Build only reads it.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger.With("component", "processor.registry"),
	}
}

// WithLogger replaces the logger used for build warnings.
func (r *Registry) WithLogger(l *slog.Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New instantiates a single stage.
func (r *Registry) New(cfg StageConfig) (Processor, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, cfg.Name)
	}
	return factory(cfg)
}

// Build instantiates every configured stage in order and links them into a
// chain. Stages with unregistered names are skipped with a warning; a factory
// error aborts the build.
func (r *Registry) Build(cfg PipelineConfig) (*Chain, error) {
	stages := make([]Stage, 0, len(cfg))
	for _, sc := range cfg {
		p, err := r.New(sc)
		if errors.Is(err, ErrUnknownStage) {
			r.logger.Warn("skipping unknown stage", "stage", sc.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to build stage %s: %w", sc.Name, err)
		}
		stages = append(stages, Stage{Processor: p, Enabled: sc.Enabled})
	}

	chain := NewChainFromStages(stages...)
	r.logger.Debug("pipeline built", "chain", chain.Name())
	return chain, nil
}
