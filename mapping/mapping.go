// Package mapping reads PMEvo port mapping files (mapping_pmevo.json).
//
// A mapping declares the instructions and execution ports of an architecture
// and assigns to every instruction its list of uops, each uop being the set of
// ports it may issue to.
package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
)

// MaxPorts is the largest number of ports a PortSet can represent.
const MaxPorts = 64

// Instruction is a reference-convention instruction. Instructions are
// compared by identity.
type Instruction struct {
	name string
}

// NewInstruction returns an instruction that belongs to no mapping.
func NewInstruction(name string) *Instruction {
	return &Instruction{name: name}
}

// Name returns the instruction name, e.g. "ADD_((REG:RW:G:64)),_((IMM:32))".
func (i *Instruction) Name() string {
	return i.name
}

func (i *Instruction) String() string {
	return i.name
}

// PortSet is a bit set of port indices.
type PortSet uint64

// Len returns the number of ports in the set.
func (s PortSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// SubsetOf reports whether every port of s is in other.
func (s PortSet) SubsetOf(other PortSet) bool {
	return s&^other == 0
}

// Architecture is the "arch" section of a mapping file.
type Architecture struct {
	Kind  string   `json:"kind,omitempty"`
	Insns []string `json:"insns"`
	Ports []string `json:"ports"`
}

type document struct {
	Kind       string                `json:"kind,omitempty"`
	Arch       Architecture          `json:"arch"`
	Assignment map[string][][]string `json:"assignment"`
}

// Mapping is a parsed port mapping.
type Mapping struct {
	arch   Architecture
	insns  []*Instruction
	byName map[string]*Instruction
	uops   map[string][]PortSet
}

// Read parses a mapping from r.
func Read(r io.Reader) (*Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a JSON mapping document.
func Parse(data []byte) (*Mapping, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}
	if len(doc.Arch.Ports) > MaxPorts {
		return nil, fmt.Errorf("too many ports: %d > %d", len(doc.Arch.Ports), MaxPorts)
	}

	portIndex := make(map[string]int, len(doc.Arch.Ports))
	for i, port := range doc.Arch.Ports {
		if _, dup := portIndex[port]; dup {
			return nil, fmt.Errorf("duplicate port %q", port)
		}
		portIndex[port] = i
	}

	m := &Mapping{
		arch:   doc.Arch,
		insns:  make([]*Instruction, 0, len(doc.Arch.Insns)),
		byName: make(map[string]*Instruction, len(doc.Arch.Insns)),
		uops:   make(map[string][]PortSet, len(doc.Assignment)),
	}
	for _, name := range doc.Arch.Insns {
		insn := &Instruction{name: name}
		m.insns = append(m.insns, insn)
		if _, ok := m.byName[name]; !ok {
			m.byName[name] = insn
		}
	}

	for name, uops := range doc.Assignment {
		if _, ok := m.byName[name]; !ok {
			return nil, fmt.Errorf("assignment for undeclared instruction %q", name)
		}
		sets := make([]PortSet, 0, len(uops))
		for _, ports := range uops {
			set, err := toPortSet(ports, portIndex)
			if err != nil {
				return nil, fmt.Errorf("instruction %q: %w", name, err)
			}
			sets = append(sets, set)
		}
		m.uops[name] = sets
	}
	return m, nil
}

func toPortSet(ports []string, portIndex map[string]int) (PortSet, error) {
	if len(ports) == 0 {
		return 0, errors.New("uop without ports")
	}
	var set PortSet
	for _, port := range ports {
		i, ok := portIndex[port]
		if !ok {
			return 0, fmt.Errorf("undeclared port %q", port)
		}
		set |= 1 << i
	}
	return set, nil
}

// Kind returns the architecture kind declared in the file, if any.
func (m *Mapping) Kind() string {
	return m.arch.Kind
}

// Ports returns the port names in declaration order.
func (m *Mapping) Ports() []string {
	return append([]string(nil), m.arch.Ports...)
}

// Instructions returns the declared instructions in file order.
func (m *Mapping) Instructions() []*Instruction {
	return append([]*Instruction(nil), m.insns...)
}

// Lookup returns the first instruction declared with name.
func (m *Mapping) Lookup(name string) (*Instruction, bool) {
	insn, ok := m.byName[name]
	return insn, ok
}

// Uops returns the port sets of the uops of insn.
func (m *Mapping) Uops(insn *Instruction) ([]PortSet, bool) {
	uops, ok := m.uops[insn.name]
	return uops, ok
}

// PortNames formats a port set with the mapping's port names.
func (m *Mapping) PortNames(set PortSet) string {
	names := make([]string, 0, set.Len())
	for i, port := range m.arch.Ports {
		if set&(1<<i) != 0 {
			names = append(names, port)
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
