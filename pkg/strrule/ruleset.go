package strrule

import (
	"sort"
	"strings"
)

// AnswerGroup maps an outcome to the rules that select it. Rules are
// any-of and are tried in order.
type AnswerGroup struct {
	Outcome string
	Rules   []Rule
}

// RuleSet classifies answers to one question. Groups are tried in order,
// Default applies when none of them matches.
type RuleSet struct {
	ID      string
	Title   string
	Default string
	Answers []AnswerGroup
}

// RuleCount tổng số rule trên mọi group.
func (rs RuleSet) RuleCount() int {
	n := 0
	for _, g := range rs.Answers {
		n += len(g.Rules)
	}
	return n
}

// Literals gom reference (lowercase, không rỗng, không trùng) của các rule
// Contains để dựng prefilter.
func (rs RuleSet) Literals() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, g := range rs.Answers {
		for _, r := range g.Rules {
			if r.Mode != Contains || r.Ref == "" {
				continue
			}
			lit := strings.ToLower(r.Ref)
			if _, ok := seen[lit]; ok {
				continue
			}
			seen[lit] = struct{}{}
			out = append(out, lit)
		}
	}
	sort.Strings(out)
	return out
}
