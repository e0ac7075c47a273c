package parser

import (
	"regexp"
	"strings"
)

var (
	wikilinkRe     = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)
	internalLinkRe = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)
	externalLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)]+)\)`)
	// Word characters plus Cyrillic, '/' and '-'.
	tagRe       = regexp.MustCompile(`#[\w\x{0400}-\x{04FF}/-]+`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
)

// CountWords counts whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountParagraphs counts non-blank chunks separated by blank lines.
func CountParagraphs(text string) int {
	n := 0
	for _, p := range paragraphRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// ExtractTags returns the distinct #tags of text, lower-cased, in order of
// first appearance.
func ExtractTags(text string) []string {
	matches := tagRe.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		t := strings.ToLower(m)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ExtractInternalLinks returns the target of every [[target]] and
// [[target|alias]] occurrence.
func ExtractInternalLinks(text string) []string {
	var out []string
	for _, m := range internalLinkRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// ExtractExternalLinks returns the URL of every [label](http(s)://...) link.
func ExtractExternalLinks(text string) []string {
	var out []string
	for _, m := range externalLinkRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[2])
	}
	return out
}
