// Package index maps canonical keys to reference instructions.
package index

import (
	"log/slog"

	"github.com/ChainSafe/pmevo-compat/canonical"
	"github.com/ChainSafe/pmevo-compat/mapping"
)

// Index is an immutable lookup table from canonical key to reference
// instruction.
type Index struct {
	entries    map[canonical.Key]*mapping.Instruction
	size       int
	collisions int
}

// Build canonicalizes every instruction with c and indexes it by its key.
//
// Several reference names may collapse onto the same key; the instruction
// inserted last wins. Collisions are counted and logged at debug level.
func Build(insns []*mapping.Instruction, c *canonical.Canonicalizer, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	ix := &Index{
		entries: make(map[canonical.Key]*mapping.Instruction, len(insns)),
		size:    len(insns),
	}
	for _, insn := range insns {
		key := c.Key(insn.Name())
		if prev, ok := ix.entries[key]; ok {
			ix.collisions++
			logger.Debug("index key collision",
				slog.String("key", key.String()),
				slog.String("dropped", prev.Name()),
				slog.String("kept", insn.Name()))
		}
		ix.entries[key] = insn
	}
	return ix
}

// Lookup returns the instruction indexed under key.
func (ix *Index) Lookup(key canonical.Key) (*mapping.Instruction, bool) {
	insn, ok := ix.entries[key]
	return insn, ok
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Size returns the number of instructions the index was built from.
func (ix *Index) Size() int {
	return ix.size
}

// Collisions returns how many insertions replaced an earlier instruction.
func (ix *Index) Collisions() int {
	return ix.collisions
}
