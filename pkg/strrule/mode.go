package strrule

import (
	"errors"
	"fmt"
	"strings"
)

// Mode chọn cách so khớp reference với input.
type Mode int

const (
	Equals Mode = iota
	CaseSensitiveEquals
	StartsWith
	Contains
	FuzzyEquals
)

var ErrUnknownMode = errors.New("unknown rule mode")

var modeNames = [...]string{
	Equals:              "equals",
	CaseSensitiveEquals: "case_sensitive_equals",
	StartsWith:          "starts_with",
	Contains:            "contains",
	FuzzyEquals:         "fuzzy_equals",
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	return []Mode{Equals, CaseSensitiveEquals, StartsWith, Contains, FuzzyEquals}
}

func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool { return m >= Equals && m <= FuzzyEquals }

// ParseMode accepts "starts_with", "StartsWith" and "startswith" alike.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	for i, name := range modeNames {
		if key == strings.ReplaceAll(name, "_", "") {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
