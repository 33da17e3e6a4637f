package pmevo

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/ChainSafe/pmevo-compat/mapping"
	"github.com/ChainSafe/pmevo-compat/processor"
	"github.com/ChainSafe/pmevo-compat/profile"
)

// DefaultDataRoot is the data directory used when no data source is given.
const DefaultDataRoot = "data"

// CostModel executes a reference instruction sequence.
type CostModel interface {
	Execute(insns []*mapping.Instruction) (processor.Result, error)
}

// CostModelFactory builds the cost model of a loaded mapping.
type CostModelFactory func(m *mapping.Mapping) (CostModel, error)

type config struct {
	data    fs.FS
	profile *profile.Profile
	logger  *slog.Logger
	cost    CostModelFactory
}

func defaultConfig() *config {
	return &config{
		profile: profile.Default(),
		logger:  slog.Default(),
		cost: func(m *mapping.Mapping) (CostModel, error) {
			b, err := processor.NewBottleneck(m)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}

// Option configures an Evaluator.
type Option func(*config)

// WithDataFS reads architecture directories from fsys.
func WithDataFS(fsys fs.FS) Option {
	return func(c *config) {
		c.data = fsys
	}
}

// WithDataRoot reads architecture directories below dir.
func WithDataRoot(dir string) Option {
	return func(c *config) {
		c.data = os.DirFS(dir)
	}
}

// WithProfile replaces the built-in rewrite rules. A nil profile keeps them.
func WithProfile(p *profile.Profile) Option {
	return func(c *config) {
		c.profile = p
	}
}

// WithLogger sets the logger receiving mapping diagnostics. A nil logger
// selects slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCostModel replaces the bottleneck cost model.
func WithCostModel(factory CostModelFactory) Option {
	return func(c *config) {
		c.cost = factory
	}
}
