// Package canonical reduces instruction names written in either naming
// convention to a comparable key.
package canonical

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Key is the normalized (mnemonic, operands) identity of an instruction.
// Keys are comparable and order-sensitive: two keys are equal iff their
// mnemonics are equal and their operand tuples are equal element-wise.
type Key struct {
	mnemonic string
	arity    int
	// operands holds each operand as "<len>:<text>", so any operand text
	// keeps its boundaries.
	operands string
}

// NewKey builds a key from a mnemonic and an ordered operand tuple.
func NewKey(mnemonic string, operands ...string) Key {
	var b strings.Builder
	for _, op := range operands {
		b.WriteString(strconv.Itoa(len(op)))
		b.WriteByte(':')
		b.WriteString(op)
	}
	return Key{
		mnemonic: mnemonic,
		arity:    len(operands),
		operands: b.String(),
	}
}

// Mnemonic returns the key's mnemonic.
func (k Key) Mnemonic() string {
	return k.mnemonic
}

// Operands returns a copy of the operand tuple.
func (k Key) Operands() []string {
	ops := make([]string, 0, k.arity)
	rest := k.operands
	for len(ops) < k.arity {
		size, text, _ := strings.Cut(rest, ":")
		n, _ := strconv.Atoi(size)
		ops = append(ops, text[:n])
		rest = text[n:]
	}
	return ops
}

// String formats the key as MNEMONIC(OP1, OP2, ...).
func (k Key) String() string {
	return k.mnemonic + "(" + strings.Join(k.Operands(), ", ") + ")"
}

func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mnemonic string   `json:"mnemonic"`
		Operands []string `json:"operands"`
	}{k.mnemonic, k.Operands()})
}
