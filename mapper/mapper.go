// Package mapper resolves target-convention instructions to reference
// instructions through their canonical keys.
package mapper

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/ChainSafe/pmevo-compat/canonical"
	"github.com/ChainSafe/pmevo-compat/index"
	"github.com/ChainSafe/pmevo-compat/mapping"
)

// Target is an instruction of the target convention. It is only used as a
// map key and for its name.
type Target interface {
	comparable
	Name() string
}

// Mapping maps every target instruction to its reference instruction, or to
// nil when no reference instruction has the same canonical key.
type Mapping[T Target] map[T]*mapping.Instruction

// Miss records a target instruction without reference counterpart.
type Miss struct {
	Name string        `json:"name"`
	Key  canonical.Key `json:"key"`
}

// Report summarizes a mapping run.
type Report struct {
	Targets    int    `json:"targets"`
	Mapped     int    `json:"mapped"`
	Unmapped   int    `json:"unmapped"`
	Reference  int    `json:"reference"`
	Collisions int    `json:"collisions"`
	Misses     []Miss `json:"misses"`
}

// Resolve maps targets against ix. It does not memoize; the result only
// depends on the target rules, the target names and the index contents.
func Resolve[T Target](targets []T, ix *index.Index, c *canonical.Canonicalizer, logger *slog.Logger) (Mapping[T], *Report) {
	if logger == nil {
		logger = slog.Default()
	}
	result := make(Mapping[T], len(targets))
	report := &Report{
		Reference:  ix.Size(),
		Collisions: ix.Collisions(),
		Misses:     make([]Miss, 0),
	}

	for _, target := range targets {
		if _, seen := result[target]; seen {
			continue
		}
		key := c.Key(target.Name())
		insn, ok := ix.Lookup(key)
		if !ok {
			logger.Debug("cannot map instruction",
				slog.String("key", key.String()),
				slog.String("insn", target.Name()))
			report.Misses = append(report.Misses, Miss{Name: target.Name(), Key: key})
		}
		result[target] = insn
	}

	report.Targets = len(result)
	report.Unmapped = lo.CountBy(lo.Values(map[T]*mapping.Instruction(result)), func(insn *mapping.Instruction) bool {
		return insn == nil
	})
	report.Mapped = report.Targets - report.Unmapped

	logger.Debug("unmapped instructions",
		slog.Int("unmapped", report.Unmapped),
		slog.Int("total", report.Reference))
	return result, report
}

// Mapper memoizes the first Resolve it performs. Every later call returns
// that first mapping, whatever its arguments.
type Mapper[T Target] struct {
	index  *index.Index
	canon  *canonical.Canonicalizer
	logger *slog.Logger

	mu     sync.Mutex
	done   bool
	result Mapping[T]
	report *Report
}

// New returns a mapper resolving target names canonicalized by c against ix.
func New[T Target](ix *index.Index, c *canonical.Canonicalizer, logger *slog.Logger) *Mapper[T] {
	return &Mapper[T]{index: ix, canon: c, logger: logger}
}

// Map resolves targets on the first call and returns the cached mapping on
// every call. It is safe for concurrent use.
func (m *Mapper[T]) Map(targets []T) Mapping[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.done {
		m.result, m.report = Resolve(targets, m.index, m.canon, m.logger)
		m.done = true
	}
	return m.result
}

// Report returns the report of the cached mapping, or false before the first Map.
func (m *Mapper[T]) Report() (*Report, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report, m.done
}
