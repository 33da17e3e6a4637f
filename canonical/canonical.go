package canonical

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/pmevo-compat/rewrite"
)

// Convention identifies an instruction naming scheme.
type Convention int

const (
	// Reference is the naming scheme of the performance model mapping.
	// Operands are separated by commas and padded with underscores.
	Reference Convention = iota + 1
	// Target is the naming scheme of the instructions being mapped.
	// Operands are separated by underscores.
	Target
)

const mnemonicSep = "_"

func (c Convention) String() string {
	switch c {
	case Reference:
		return "reference"
	case Target:
		return "target"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention parses the String form of a convention.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(s) {
	case "reference":
		return Reference, nil
	case "target":
		return Target, nil
	default:
		return 0, fmt.Errorf("unknown naming convention: %q", s)
	}
}

// Split decomposes a raw instruction name into its mnemonic and raw operands.
// A name without the mnemonic separator has no operands.
func (c Convention) Split(name string) (string, []string) {
	mnemonic, rest, found := strings.Cut(name, mnemonicSep)
	if !found {
		return name, []string{}
	}

	switch c {
	case Reference:
		// Parenthesized operands are sometimes joined by a bare underscore
		// instead of a comma.
		rest = strings.ReplaceAll(strings.TrimSpace(rest), "))_((", ")),((")
		operands := strings.Split(rest, ",")
		for i := range operands {
			operands[i] = strings.Trim(operands[i], "_")
		}
		return mnemonic, operands
	case Target:
		return mnemonic, strings.Split(rest, "_")
	default:
		panic(fmt.Sprintf("canonical: split with %s", c))
	}
}

// Canonicalize runs every raw operand through rules and assembles the key.
func Canonicalize(mnemonic string, operands []string, rules rewrite.RuleSet) Key {
	out := make([]string, len(operands))
	for i, op := range operands {
		out[i] = rules.Apply(op)
	}
	return NewKey(mnemonic, out...)
}

// Canonicalizer turns raw names of one convention into keys.
type Canonicalizer struct {
	convention Convention
	rules      rewrite.RuleSet
}

// New returns a canonicalizer for names written in convention c.
func New(c Convention, rules rewrite.RuleSet) *Canonicalizer {
	return &Canonicalizer{convention: c, rules: rules}
}

// Convention returns the naming convention handled by c.
func (c *Canonicalizer) Convention() Convention {
	return c.convention
}

// Rules returns the rule set applied to operands.
func (c *Canonicalizer) Rules() rewrite.RuleSet {
	return c.rules
}

// Key decomposes name and canonicalizes its operands.
func (c *Canonicalizer) Key(name string) Key {
	mnemonic, operands := c.convention.Split(name)
	return Canonicalize(mnemonic, operands, c.rules)
}
