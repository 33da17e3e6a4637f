package mapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "kind": "Mapping3",
  "arch": {
    "kind": "Architecture",
    "insns": ["ADD_((REG:RW:G:64)),_((IMM:32))", "IMUL_((REG:RW:G:64)),_((REG:R:G:64))", "ADD_((REG:RW:G:64)),_((IMM:32))"],
    "ports": ["0", "1", "5"]
  },
  "assignment": {
    "ADD_((REG:RW:G:64)),_((IMM:32))": [["0", "1", "5"]],
    "IMUL_((REG:RW:G:64)),_((REG:R:G:64))": [["1"], ["0", "5"]]
  }
}`

func TestParse(t *testing.T) {
	m, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "Mapping3", m.Kind())
	assert.Equal(t, []string{"0", "1", "5"}, m.Ports())

	insns := m.Instructions()
	require.Len(t, insns, 3)
	assert.Equal(t, "ADD_((REG:RW:G:64)),_((IMM:32))", insns[0].Name())
	assert.NotSame(t, insns[0], insns[2])

	add, ok := m.Lookup("ADD_((REG:RW:G:64)),_((IMM:32))")
	require.True(t, ok)
	assert.Same(t, insns[0], add)

	uops, ok := m.Uops(insns[1])
	require.True(t, ok)
	assert.Equal(t, []PortSet{0b010, 0b101}, uops)
	assert.Equal(t, "{0,5}", m.PortNames(uops[1]))

	// duplicates share the assignment of their name
	uops, ok = m.Uops(insns[2])
	require.True(t, ok)
	assert.Equal(t, []PortSet{0b111}, uops)

	_, ok = m.Lookup("NOP")
	assert.False(t, ok)
	_, ok = m.Uops(NewInstruction("NOP"))
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":         `{"arch":`,
		"duplicate port": `{"arch":{"insns":[],"ports":["0","0"]}}`,
		"unknown insn":   `{"arch":{"insns":["A"],"ports":["0"]},"assignment":{"B":[["0"]]}}`,
		"unknown port":   `{"arch":{"insns":["A"],"ports":["0"]},"assignment":{"A":[["7"]]}}`,
		"empty uop":      `{"arch":{"insns":["A"],"ports":["0"]},"assignment":{"A":[[]]}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestPortSet(t *testing.T) {
	s := PortSet(0b1011)
	assert.Equal(t, 3, s.Len())
	assert.True(t, PortSet(0b0011).SubsetOf(s))
	assert.False(t, PortSet(0b0100).SubsetOf(s))
	assert.True(t, PortSet(0).SubsetOf(s))
}
