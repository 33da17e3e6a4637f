// Package rewrite implements ordered regular-expression rewrite rules used to
// normalize instruction operand text.
//
// A replacement template uses regexp.Expand syntax for capture groups (prefer
// ${1} over $1) and may contain <EVAL:AxBx...> markers, which are replaced by
// the product of their factors once the substitution is done.
package rewrite

import (
	"fmt"
	"regexp"
)

// Rule is a single immutable pattern/replacement pair.
type Rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewRule compiles pattern and validates the static part of replacement.
func NewRule(pattern, replacement string) (*Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rule pattern %q: %w", pattern, err)
	}
	if err := checkTemplate(replacement); err != nil {
		return nil, fmt.Errorf("invalid rule replacement %q: %w", replacement, err)
	}
	return &Rule{pattern: re, replacement: replacement}, nil
}

// MustRule is like NewRule but panics on error. It is meant for rule tables
// compiled into the program.
func MustRule(pattern, replacement string) *Rule {
	r, err := NewRule(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the source text of the rule's regular expression.
func (r *Rule) Pattern() string {
	return r.pattern.String()
}

// Replacement returns the replacement template.
func (r *Rule) Replacement() string {
	return r.replacement
}

// Apply substitutes every non-overlapping match of the pattern in value and
// expands the resulting eval markers.
//
// A marker that does not evaluate is an authoring bug in the rule, so Apply
// panics with an *EvalError instead of returning it.
func (r *Rule) Apply(value string) string {
	out, err := Expand(r.pattern.ReplaceAllString(value, r.replacement))
	if err != nil {
		panic(err)
	}
	return out
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.pattern, r.replacement)
}
