// Package exclude matches vault paths against glob-like exclude patterns.
//
// A pattern uses '*' for any run of characters and '?' for exactly one
// character. Matching is case-insensitive and unanchored: a pattern matches
// when it matches anywhere inside the path. Every other character is literal.
package exclude

import (
	"regexp"
	"strings"
)

// Matcher holds a compiled set of exclude patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// Compile builds a Matcher. Blank patterns are ignored.
func Compile(patterns []string) *Matcher {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		m.patterns = append(m.patterns, regexp.MustCompile(toRegexp(p)))
	}
	return m
}

// Match reports whether path matches any pattern of m.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Len returns the number of active patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}

// Matches reports whether path matches any of patterns.
func Matches(path string, patterns []string) bool {
	return Compile(patterns).Match(path)
}

func toRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("(?is)")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
