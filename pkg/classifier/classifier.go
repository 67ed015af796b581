package classifier

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/PhucNguyen204/answerclass/pkg/strrule"
)

var (
	ErrUnknownRuleSet   = errors.New("unknown rule set")
	ErrDuplicateRuleSet = errors.New("duplicate rule set id")
)

// Result is the verdict for one answer. Group and Rule index into
// RuleSet.Answers and AnswerGroup.Rules; both are -1 when Matched is false
// and Outcome is the rule set's default.
type Result struct {
	RuleSetID string
	Outcome   string
	Matched   bool
	Group     int
	Rule      int
	Matcher   strrule.Rule
}

type compiledSet struct {
	rs        strrule.RuleSet
	prefilter *literalPrefilter
}

// Classifier is immutable after Compile and safe for concurrent use.
type Classifier struct {
	sets   map[string]compiledSet
	log    *zap.Logger
	usePre bool
}

type Option func(*Classifier)

func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPrefilter bật/tắt cổng Aho-Corasick cho rule Contains (mặc định bật).
func WithPrefilter(enable bool) Option {
	return func(c *Classifier) { c.usePre = enable }
}

// Compile indexes rule sets by ID and builds a prefilter per set.
func Compile(sets []strrule.RuleSet, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		sets:   make(map[string]compiledSet, len(sets)),
		log:    zap.NewNop(),
		usePre: true,
	}
	for _, o := range opts {
		o(c)
	}
	for _, rs := range sets {
		if _, ok := c.sets[rs.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRuleSet, rs.ID)
		}
		cs := compiledSet{rs: rs}
		if c.usePre {
			cs.prefilter = newLiteralPrefilter(rs)
		}
		c.sets[rs.ID] = cs
		c.log.Debug("compiled rule set",
			zap.String("id", rs.ID),
			zap.Int("groups", len(rs.Answers)),
			zap.Int("rules", rs.RuleCount()),
			zap.Int("prefilter_patterns", cs.prefilter.patternCount()))
	}
	return c, nil
}

func (c *Classifier) Len() int { return len(c.sets) }

func (c *Classifier) SetIDs() []string {
	ids := make([]string, 0, len(c.sets))
	for id := range c.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RuleSet returns the rule set compiled under id.
func (c *Classifier) RuleSet(id string) (strrule.RuleSet, bool) {
	cs, ok := c.sets[id]
	return cs.rs, ok
}

// Classify runs input through the rule set: groups in order, rules in order,
// first match wins.
func (c *Classifier) Classify(setID, input string) (Result, error) {
	cs, ok := c.sets[setID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownRuleSet, setID)
	}

	containsPossible := cs.prefilter.mayContain(strings.ToLower(input))
	if !containsPossible {
		c.log.Debug("prefilter skipped contains rules", zap.String("set", setID))
	}

	for gi, g := range cs.rs.Answers {
		for ri, r := range g.Rules {
			if !containsPossible && r.Mode == strrule.Contains && r.Ref != "" {
				continue
			}
			if r.Eval(input) {
				return Result{
					RuleSetID: setID,
					Outcome:   g.Outcome,
					Matched:   true,
					Group:     gi,
					Rule:      ri,
					Matcher:   r,
				}, nil
			}
		}
	}
	return Result{
		RuleSetID: setID,
		Outcome:   cs.rs.Default,
		Group:     -1,
		Rule:      -1,
	}, nil
}

// PrefilterHits lists the Contains literals of the set found in input.
func (c *Classifier) PrefilterHits(setID, input string) ([]string, error) {
	cs, ok := c.sets[setID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleSet, setID)
	}
	return cs.prefilter.hits(input), nil
}
