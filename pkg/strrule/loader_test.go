package strrule

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestLoadRuleSetYAML_File(t *testing.T) {
	b, err := os.ReadFile("../../testdata/rulesets/capital_of_france.yml")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rs, err := LoadRuleSetYAML(b)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if rs.ID != "capital-of-france" || rs.Default != "unrecognized" {
		t.Fatalf("unexpected header: %+v", rs)
	}
	want := []AnswerGroup{
		{Outcome: "correct", Rules: []Rule{NewEquals("Paris")}},
		{Outcome: "typo", Rules: []Rule{NewFuzzyEquals("Paris"), NewFuzzyEquals("Pari")}},
		{Outcome: "mentions-city", Rules: []Rule{NewContains("paris"), NewContains("lutetia")}},
	}
	if !reflect.DeepEqual(rs.Answers, want) {
		t.Fatalf("answers mismatch:\n got %+v\nwant %+v", rs.Answers, want)
	}
	if rs.RuleCount() != 5 {
		t.Fatalf("want 5 rules, got %d", rs.RuleCount())
	}
	if got := rs.Literals(); !reflect.DeepEqual(got, []string{"lutetia", "paris"}) {
		t.Fatalf("literals: %v", got)
	}
}

func TestLoadRuleSetYAML_IDFallback(t *testing.T) {
	rs, err := LoadRuleSetYAML([]byte(`
title: Spell "cat"
answers:
  - outcome: ok
    rules:
      - equals: cat
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rs.ID != `Spell "cat"` {
		t.Fatalf("id should fall back to title, got %q", rs.ID)
	}

	rs, err = LoadRuleSetYAML([]byte(`
answers:
  - outcome: ok
    rules:
      - equals: cat
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rs.ID) != 36 {
		t.Fatalf("want generated uuid id, got %q", rs.ID)
	}
}

func TestLoadRuleSetYAML_Scalars(t *testing.T) {
	rs, err := LoadRuleSetYAML([]byte(`
id: scalars
answers:
  - outcome: any
    rules:
      - starts_with:
      - contains: ~
      - equals: 42
      - case_sensitive_equals: "  padded "
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Rule{NewStartsWith(""), NewContains(""), NewEquals("42"), NewCaseSensitiveEquals("  padded ")}
	if !reflect.DeepEqual(rs.Answers[0].Rules, want) {
		t.Fatalf("got %+v", rs.Answers[0].Rules)
	}
	if len(rs.Literals()) != 0 {
		t.Fatalf("empty contains refs must not become literals")
	}
}

func TestLoadRuleSetYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{"no answers", "id: x\n", "missing answers"},
		{"no outcome", "answers:\n  - rules:\n      - equals: a\n", "answer 0: missing outcome"},
		{"two keys", "answers:\n  - outcome: o\n    rules:\n      - {equals: a, contains: b}\n", "exactly one key"},
		{"scalar rule", "answers:\n  - outcome: o\n    rules:\n      - equals\n", "must be a mapping"},
		{"nested list", "answers:\n  - outcome: o\n    rules:\n      - equals: [[a]]\n", "value 0 is not a string"},
		{"map value", "answers:\n  - outcome: o\n    rules:\n      - equals: {a: b}\n", "string or a list"},
		{"bad yaml", "answers: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRuleSetYAML([]byte(tt.doc))
			if err == nil {
				t.Fatalf("want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}

	_, err := LoadRuleSetYAML([]byte("answers:\n  - outcome: o\n    rules:\n      - sounds_like: a\n"))
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("want ErrUnknownMode, got %v", err)
	}
}
