package classifier

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/PhucNguyen204/answerclass/pkg/strrule"
)

// literalPrefilter là cổng Aho-Corasick trên các reference của rule
// Contains. Nếu input (đã lowercase) không chứa literal nào thì mọi rule
// Contains có reference không rỗng chắc chắn false.
//
// FindAll trả về match không chồng lấn, nhưng vẫn luôn có ít nhất một match
// khi tồn tại một literal bất kỳ trong input, nên đủ để làm cổng.
type literalPrefilter struct {
	ac       *ahocorasick.AhoCorasick
	patterns []string
}

func newLiteralPrefilter(rs strrule.RuleSet) *literalPrefilter {
	pats := rs.Literals()
	if len(pats) == 0 {
		return nil
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		// input đã lowercase trước khi quét, không cần AsciiCaseInsensitive
		AsciiCaseInsensitive: false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	built := builder.Build(pats)
	return &literalPrefilter{ac: &built, patterns: pats}
}

// mayContain nhận input đã lowercase.
func (p *literalPrefilter) mayContain(lowered string) bool {
	if p == nil {
		return true
	}
	return len(p.ac.FindAll(lowered)) > 0
}

// hits trả về các literal tìm thấy, chủ yếu để debug/log.
func (p *literalPrefilter) hits(input string) []string {
	if p == nil {
		return nil
	}
	lowered := strings.ToLower(input)
	var out []string
	for _, m := range p.ac.FindAll(lowered) {
		out = append(out, p.patterns[m.Pattern()])
	}
	return out
}

func (p *literalPrefilter) patternCount() int {
	if p == nil {
		return 0
	}
	return len(p.patterns)
}
