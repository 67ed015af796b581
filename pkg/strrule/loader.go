package strrule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type rawRuleSet struct {
	ID      string      `yaml:"id"`
	Title   string      `yaml:"title"`
	Default string      `yaml:"default"`
	Answers []rawAnswer `yaml:"answers"`
}

type rawAnswer struct {
	Outcome string      `yaml:"outcome"`
	Rules   []yaml.Node `yaml:"rules"`
}

// LoadRuleSetYAML parses one rule-set document.
//
// Each rule entry is a single-key mapping from mode to reference, e.g.
// `contains: paris`. A list of references expands into one rule per
// value, in order.
func LoadRuleSetYAML(b []byte) (RuleSet, error) {
	var raw rawRuleSet
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return RuleSet{}, err
	}
	if len(raw.Answers) == 0 {
		return RuleSet{}, errors.New("missing answers block")
	}

	rs := RuleSet{
		ID:      strings.TrimSpace(raw.ID),
		Title:   strings.TrimSpace(raw.Title),
		Default: strings.TrimSpace(raw.Default),
		Answers: make([]AnswerGroup, 0, len(raw.Answers)),
	}
	if rs.ID == "" {
		rs.ID = rs.Title
	}
	if rs.ID == "" {
		rs.ID = uuid.NewString()
	}

	for i, a := range raw.Answers {
		outcome := strings.TrimSpace(a.Outcome)
		if outcome == "" {
			return RuleSet{}, fmt.Errorf("answer %d: missing outcome", i)
		}
		g := AnswerGroup{Outcome: outcome}
		for j := range a.Rules {
			rules, err := parseRuleNode(&a.Rules[j])
			if err != nil {
				return RuleSet{}, fmt.Errorf("answer %d rule %d: %w", i, j, err)
			}
			g.Rules = append(g.Rules, rules...)
		}
		rs.Answers = append(rs.Answers, g)
	}
	return rs, nil
}

// mode: ref | mode: [ref, ...]
func parseRuleNode(n *yaml.Node) ([]Rule, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.New("rule must be a mapping")
	}
	if len(n.Content) != 2 {
		return nil, fmt.Errorf("rule must have exactly one key, got %d", len(n.Content)/2)
	}
	mode, err := ParseMode(n.Content[0].Value)
	if err != nil {
		return nil, err
	}

	val := n.Content[1]
	switch val.Kind {
	case yaml.ScalarNode:
		return []Rule{New(mode, scalarText(val))}, nil
	case yaml.SequenceNode:
		out := make([]Rule, 0, len(val.Content))
		for k, item := range val.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%s value %d is not a string", mode, k)
			}
			out = append(out, New(mode, scalarText(item)))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s value must be a string or a list of strings", mode)
	}
}

// `equals:` hoặc `equals: ~` nghĩa là reference rỗng.
func scalarText(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}
