package sitemap

import (
	"strconv"
	"strings"
)

// Matcher decides whether a navigation entry is the current section for a
// given location (the full URL of the page being rendered).
//
// Implementations must be pure and total: no side effects, no panics, and
// a plain false whenever nothing matches.
type Matcher interface {
	Match(location string) bool
	String() string
}

// MatcherFunc adapts an ordinary function to the Matcher interface.
type MatcherFunc func(location string) bool

func (f MatcherFunc) Match(location string) bool {
	if f == nil {
		return false
	}
	return f(location)
}

func (f MatcherFunc) String() string { return "func" }

// containsMatcher is an unanchored, case-sensitive substring test.
// Query strings and fragments are part of the location and are matched too.
type containsMatcher struct {
	Pattern string
}

// Contains matches any location containing pattern.
// "/act" therefore also matches "/action", but not "/react".
func Contains(pattern string) Matcher {
	return containsMatcher{Pattern: pattern}
}

func (m containsMatcher) Match(location string) bool {
	return strings.Contains(location, m.Pattern)
}

func (m containsMatcher) String() string {
	return "contains(" + strconv.Quote(m.Pattern) + ")"
}

type suffixMatcher struct {
	Suffix string
}

// HasSuffix matches locations ending exactly with suffix.
func HasSuffix(suffix string) Matcher {
	return suffixMatcher{Suffix: suffix}
}

func (m suffixMatcher) Match(location string) bool {
	return strings.HasSuffix(location, m.Suffix)
}

func (m suffixMatcher) String() string {
	return "suffix(" + strconv.Quote(m.Suffix) + ")"
}

type anyMatcher struct {
	Matchers []Matcher
}

// AnyOf is active when at least one of ms is active. An empty AnyOf never matches.
func AnyOf(ms ...Matcher) Matcher {
	return anyMatcher{Matchers: ms}
}

func (m anyMatcher) Match(location string) bool {
	for _, sub := range m.Matchers {
		if sub != nil && sub.Match(location) {
			return true
		}
	}
	return false
}

func (m anyMatcher) String() string { return join("any", m.Matchers) }

type allMatcher struct {
	Matchers []Matcher
}

// AllOf is active when every one of ms is active. An empty AllOf never matches.
func AllOf(ms ...Matcher) Matcher {
	return allMatcher{Matchers: ms}
}

func (m allMatcher) Match(location string) bool {
	if len(m.Matchers) == 0 {
		return false
	}
	for _, sub := range m.Matchers {
		if sub == nil || !sub.Match(location) {
			return false
		}
	}
	return true
}

func (m allMatcher) String() string { return join("all", m.Matchers) }

type neverMatcher struct{}

// Never is the constant-false matcher used by entries that are never highlighted.
func Never() Matcher {
	return neverMatcher{}
}

func (neverMatcher) Match(string) bool { return false }

func (neverMatcher) String() string { return "never" }

func join(op string, ms []Matcher) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		if m == nil {
			parts = append(parts, "nil")
			continue
		}
		parts = append(parts, m.String())
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}
