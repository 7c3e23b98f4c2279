package dispatch

import (
	"regexp"
	"strings"
)

// TriggerPattern is one case of the free-text trigger variant. Each case
// carries its own match predicate.
type TriggerPattern interface {
	Matches(text string) bool
}

// LiteralPattern matches by case-insensitive substring containment.
type LiteralPattern string

func (p LiteralPattern) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(string(p)))
}

// RegexpPattern matches by a direct regular-expression test.
type RegexpPattern struct {
	re *regexp.Regexp
}

func NewRegexpPattern(re *regexp.Regexp) RegexpPattern {
	return RegexpPattern{re: re}
}

func (p RegexpPattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// Trigger pairs a free-text pattern with its handler.
type Trigger struct {
	Pattern TriggerPattern
	Handler Handler
}
