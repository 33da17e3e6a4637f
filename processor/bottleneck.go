// Package processor estimates steady-state cycle counts of instruction
// sequences from a port mapping.
package processor

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/ChainSafe/pmevo-compat/mapping"
)

// MaxPorts bounds the number of ports the bottleneck search enumerates.
const MaxPorts = 24

// ErrUnknownInstruction is returned for instructions without a port assignment.
var ErrUnknownInstruction = errors.New("instruction has no port assignment")

// Result is the outcome of executing an instruction sequence.
type Result struct {
	Cycles       float64 `json:"cycles"`
	Instructions int     `json:"instructions"`
}

// Bottleneck computes the throughput bound of the port mapping model: the
// number of cycles is the largest ratio, over every set of ports Q, between
// the number of uops that can only issue to ports of Q and the size of Q.
type Bottleneck struct {
	mapping *mapping.Mapping
	ports   int
}

// NewBottleneck returns a processor for m.
func NewBottleneck(m *mapping.Mapping) (*Bottleneck, error) {
	ports := len(m.Ports())
	if ports > MaxPorts {
		return nil, fmt.Errorf("bottleneck search over %d ports is not supported (max %d)", ports, MaxPorts)
	}
	return &Bottleneck{mapping: m, ports: ports}, nil
}

// Execute returns the cycle count of one iteration of insns in steady state.
func (b *Bottleneck) Execute(insns []*mapping.Instruction) (Result, error) {
	mass := make(map[mapping.PortSet]float64)
	for _, insn := range insns {
		uops, ok := b.mapping.Uops(insn)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownInstruction, insn.Name())
		}
		for _, uop := range uops {
			mass[uop]++
		}
	}

	result := Result{Instructions: len(insns)}
	if len(mass) == 0 {
		return result, nil
	}

	used := lo.Reduce(lo.Keys(mass), func(acc mapping.PortSet, set mapping.PortSet, _ int) mapping.PortSet {
		return acc | set
	}, 0)
	for q := mapping.PortSet(1); q <= used; q++ {
		// Only subsets of the used ports can be bottlenecks.
		if !q.SubsetOf(used) {
			continue
		}
		var total float64
		for set, m := range mass {
			if set.SubsetOf(q) {
				total += m
			}
		}
		if c := total / float64(q.Len()); c > result.Cycles {
			result.Cycles = c
		}
	}
	return result, nil
}
