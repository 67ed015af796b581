package strrule

import "strings"

// Rule is a comparison mode bound to one reference string. The zero value
// is Equals("").
type Rule struct {
	Mode Mode
	Ref  string
}

func New(mode Mode, ref string) Rule { return Rule{Mode: mode, Ref: ref} }

func NewEquals(ref string) Rule              { return Rule{Mode: Equals, Ref: ref} }
func NewCaseSensitiveEquals(ref string) Rule { return Rule{Mode: CaseSensitiveEquals, Ref: ref} }
func NewStartsWith(ref string) Rule          { return Rule{Mode: StartsWith, Ref: ref} }
func NewContains(ref string) Rule            { return Rule{Mode: Contains, Ref: ref} }
func NewFuzzyEquals(ref string) Rule         { return Rule{Mode: FuzzyEquals, Ref: ref} }

// Eval reports whether input matches the rule. Every mode except
// CaseSensitiveEquals lowercases both operands first.
func (r Rule) Eval(input string) bool {
	if r.Mode == CaseSensitiveEquals {
		return input == r.Ref
	}

	ref := strings.ToLower(r.Ref)
	in := strings.ToLower(input)

	switch r.Mode {
	case Equals:
		return in == ref
	case StartsWith:
		return strings.HasPrefix(in, ref)
	case Contains:
		return strings.Contains(in, ref)
	case FuzzyEquals:
		// khoảng cách 0 không tính là fuzzy
		return EditDistance(ref, in) == 1
	default:
		return false
	}
}

func (r Rule) String() string {
	return r.Mode.String() + "(" + r.Ref + ")"
}
