// Package pmevo evaluates instruction throughput with a PMEvo port mapping and
// maps instructions of another naming convention onto the mapping's
// instructions.
package pmevo

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/ChainSafe/pmevo-compat/canonical"
	"github.com/ChainSafe/pmevo-compat/index"
	"github.com/ChainSafe/pmevo-compat/mapper"
	"github.com/ChainSafe/pmevo-compat/mapping"
	"github.com/ChainSafe/pmevo-compat/profile"
)

// MappingFile is the name of the mapping file inside an architecture directory.
const MappingFile = "mapping_pmevo.json"

var (
	// ErrArchitectureNotFound is returned when no mapping exists for an architecture.
	ErrArchitectureNotFound = errors.New("architecture not found")
	// ErrInvalidInput is returned for queries whose result is undefined.
	ErrInvalidInput = errors.New("invalid input")
)

// Evaluator owns the mapping and cost model of one architecture and the
// mapping of target instructions of type T onto it.
type Evaluator[T mapper.Target] struct {
	arch    string
	mapping *mapping.Mapping
	cost    CostModel
	logger  *slog.Logger

	reference *canonical.Canonicalizer
	target    *canonical.Canonicalizer

	mu     sync.Mutex
	index  *index.Index
	mapper *mapper.Mapper[T]
}

// New loads the mapping of arch. The architecture name must be a single path
// element; anything else is rejected with ErrArchitectureNotFound before the
// data source is accessed.
func New[T mapper.Target](arch string, opts ...Option) (*Evaluator[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if !isArchName(arch) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrArchitectureNotFound, arch)
	}
	if cfg.data == nil {
		cfg.data = os.DirFS(DefaultDataRoot)
	}
	if cfg.profile == nil {
		cfg.profile = profile.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	data, err := fs.ReadFile(cfg.data, path.Join(arch, MappingFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArchitectureNotFound, arch, err)
	}
	m, err := mapping.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid mapping for %s: %w", arch, err)
	}

	refRules, err := cfg.profile.ReferenceRules()
	if err != nil {
		return nil, err
	}
	targetRules, err := cfg.profile.TargetRules()
	if err != nil {
		return nil, err
	}
	cost, err := cfg.cost(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build cost model for %s: %w", arch, err)
	}

	return &Evaluator[T]{
		arch:      arch,
		mapping:   m,
		cost:      cost,
		logger:    cfg.logger.With(slog.String("arch", arch)),
		reference: canonical.New(canonical.Reference, refRules),
		target:    canonical.New(canonical.Target, targetRules),
	}, nil
}

func isArchName(arch string) bool {
	return fs.ValidPath(arch) &&
		arch != "." &&
		!strings.ContainsAny(arch, `/\`) &&
		!strings.Contains(arch, "..")
}

// Arch returns the architecture name.
func (e *Evaluator[T]) Arch() string {
	return e.arch
}

// Mapping returns the loaded port mapping.
func (e *Evaluator[T]) Mapping() *mapping.Mapping {
	return e.mapping
}

// Throughput is the cost of one iteration of an instruction sequence.
type Throughput struct {
	Cycles float64
	IPC    float64
}

// CyclesFor returns the cost model's cycle count for insns.
func (e *Evaluator[T]) CyclesFor(insns []*mapping.Instruction) (float64, error) {
	res, err := e.cost.Execute(insns)
	if err != nil {
		return 0, err
	}
	return res.Cycles, nil
}

// IPCFor returns the number of instructions retired per cycle for insns.
// It fails with ErrInvalidInput for an empty sequence or a zero cycle count.
func (e *Evaluator[T]) IPCFor(insns []*mapping.Instruction) (float64, error) {
	t, err := e.ThroughputFor(insns)
	if err != nil {
		return 0, err
	}
	return t.IPC, nil
}

// ThroughputFor runs the cost model once and returns both the cycle count
// and the IPC of insns. It fails like IPCFor.
func (e *Evaluator[T]) ThroughputFor(insns []*mapping.Instruction) (Throughput, error) {
	if len(insns) == 0 {
		return Throughput{}, fmt.Errorf("%w: IPC of an empty instruction sequence", ErrInvalidInput)
	}
	cycles, err := e.CyclesFor(insns)
	if err != nil {
		return Throughput{}, err
	}
	if cycles == 0 {
		return Throughput{}, fmt.Errorf("%w: instruction sequence takes zero cycles", ErrInvalidInput)
	}
	return Throughput{Cycles: cycles, IPC: float64(len(insns)) / cycles}, nil
}

// MapInstructions maps targets onto the reference instructions. The first
// call computes the mapping; later calls return it unchanged, whatever their
// arguments.
func (e *Evaluator[T]) MapInstructions(targets []T) mapper.Mapping[T] {
	e.mu.Lock()
	if e.mapper == nil {
		e.index = index.Build(e.mapping.Instructions(), e.reference, e.logger)
		e.mapper = mapper.New[T](e.index, e.target, e.logger)
	}
	m := e.mapper
	e.mu.Unlock()

	return m.Map(targets)
}

// Report returns the diagnostics of the cached mapping, or false if
// MapInstructions has not been called.
func (e *Evaluator[T]) Report() (*mapper.Report, bool) {
	e.mu.Lock()
	m := e.mapper
	e.mu.Unlock()

	if m == nil {
		return nil, false
	}
	return m.Report()
}

// ReferenceKey canonicalizes a reference instruction name.
func (e *Evaluator[T]) ReferenceKey(name string) canonical.Key {
	return e.reference.Key(name)
}

// TargetKey canonicalizes a target instruction name.
func (e *Evaluator[T]) TargetKey(name string) canonical.Key {
	return e.target.Key(name)
}
