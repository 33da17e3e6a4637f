// Package profile loads the operand rewrite rules of both naming conventions.
package profile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChainSafe/pmevo-compat/rewrite"
)

//go:embed default.yaml
var defaultProfile []byte

// RuleSpec is the textual form of a rewrite rule.
type RuleSpec struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

// Profile holds the reference and target rule lists, in application order.
type Profile struct {
	Name      string     `yaml:"name" json:"name"`
	Reference []RuleSpec `yaml:"reference" json:"reference"`
	Target    []RuleSpec `yaml:"target" json:"target"`
}

// Default returns the built-in profile.
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("built-in profile is invalid: %v", err))
	}
	return p
}

// Load reads a profile from a YAML file.
func Load(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse profile: empty document")
		}
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate compiles every rule of both lists.
func (p *Profile) Validate() error {
	if _, err := p.ReferenceRules(); err != nil {
		return err
	}
	_, err := p.TargetRules()
	return err
}

// ReferenceRules compiles the rules applied to reference operands.
func (p *Profile) ReferenceRules() (rewrite.RuleSet, error) {
	return compile(p.Name+"/reference", p.Reference)
}

// TargetRules compiles the rules applied to target operands.
func (p *Profile) TargetRules() (rewrite.RuleSet, error) {
	return compile(p.Name+"/target", p.Target)
}

func compile(name string, specs []RuleSpec) (rewrite.RuleSet, error) {
	rules := make([]*rewrite.Rule, 0, len(specs))
	for i, spec := range specs {
		r, err := rewrite.NewRule(spec.Pattern, spec.Replacement)
		if err != nil {
			return rewrite.RuleSet{}, fmt.Errorf("%s rule %d: %w", name, i, err)
		}
		rules = append(rules, r)
	}
	return rewrite.NewRuleSet(name, rules...), nil
}
