package analyzer

import (
	"strings"

	"github.com/starford/vaultstats/internal/models"
)

// documentTags returns the set of tags of one note: the cached inline tags
// and the frontmatter tags, lower-cased with a single leading '#', in first
// appearance order.
func documentTags(md *models.Metadata) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	for _, t := range md.Tags {
		name := strings.TrimPrefix(strings.TrimSpace(t.Tag), "#")
		if name == "" {
			continue
		}
		add("#" + strings.ToLower(name))
	}
	for _, t := range models.FrontmatterTagsOf(md.Frontmatter).Normalized() {
		add(t)
	}
	return out
}
