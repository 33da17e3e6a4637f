package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "pmevo-palmed", p.Name)
	assert.Len(t, p.Reference, 10)
	assert.Len(t, p.Target, 5)

	ref, err := p.ReferenceRules()
	require.NoError(t, err)
	assert.Equal(t, "pmevo-palmed/reference", ref.Name())
	assert.Equal(t, "GPR8", ref.Apply("((REG:GPR:G:8))"))
	assert.Equal(t, "MEM64", ref.Apply("qword_ptr_[RSP+0x8]"))
	assert.Equal(t, "ADDR64", ref.Apply("[RSP+0x8]"))

	target, err := p.TargetRules()
	require.NoError(t, err)
	assert.Equal(t, "MEM128", target.Apply("MEM64vx4x32"))
	assert.Equal(t, "GPR8", target.Apply("GPR8extra"))
	assert.Equal(t, "IMM32", target.Apply("IMM32suffix"))
}

func TestDefaultRulesAreIdempotent(t *testing.T) {
	p := Default()
	ref, err := p.ReferenceRules()
	require.NoError(t, err)
	target, err := p.TargetRules()
	require.NoError(t, err)

	for _, op := range []string{
		"((REG:GPR:G:8))", "((REG:RW:V:256))", "((IMM:8))", "((DIV:64))",
		"byte_ptr_[RAX]", "dword_ptr_[RAX]", "qword_ptr_[RAX]",
		"xmmword_ptr_[RAX]", "ymmword_ptr_[RAX]", "[RAX+RBX*4]",
	} {
		once := ref.Apply(op)
		assert.Equal(t, once, ref.Apply(once), op)
	}
	for _, op := range []string{"MEM64vx4x32", "GPR64q", "ADDR64x", "VR128x", "IMMb8", "IMM32suffix"} {
		once := target.Apply(op)
		assert.Equal(t, once, target.Apply(once), op)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`
name: tiny
reference:
  - pattern: '\(\(IMM:(\d+)\)\)'
    replacement: 'IMM${1}'
target:
  - pattern: 'I(\d+)'
    replacement: 'IMM<EVAL:${1}x8>'
`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", p.Name)

	target, err := p.TargetRules()
	require.NoError(t, err)
	assert.Equal(t, "IMM32", target.Apply("I4"))
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"unknown field": "name: x\nrules: []\n",
		"bad pattern":   "name: x\nreference:\n  - pattern: '(['\n    replacement: ''\n",
		"bad eval":      "name: x\ntarget:\n  - pattern: 'M'\n    replacement: '<EVAL:MEM>'\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, defaultProfile, 0600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
