package rewrite

// RuleSet is a named, ordered list of rules. Order is part of its contract:
// a rule may rely on earlier rules having normalized overlapping forms.
type RuleSet struct {
	name  string
	rules []*Rule
}

// NewRuleSet returns a rule set applying rules in the given order.
func NewRuleSet(name string, rules ...*Rule) RuleSet {
	return RuleSet{name: name, rules: append([]*Rule(nil), rules...)}
}

// Name returns the rule set name.
func (s RuleSet) Name() string {
	return s.name
}

// Rules returns a copy of the rules in application order.
func (s RuleSet) Rules() []*Rule {
	return append([]*Rule(nil), s.rules...)
}

// Len returns the number of rules.
func (s RuleSet) Len() int {
	return len(s.rules)
}

// Apply folds value through every rule, left to right.
func (s RuleSet) Apply(value string) string {
	for _, r := range s.rules {
		value = r.Apply(value)
	}
	return value
}
