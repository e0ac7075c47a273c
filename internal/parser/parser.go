// Package parser extracts frontmatter, wikilinks, embeds, and tags from
// Markdown content, and provides the text measures used by the analyzer.
package parser

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/vaultstats/internal/models"
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Links       []string // every [[target]] occurrence, in order
	Embeds      []string // every ![[target]] occurrence, in order
	Tags        []string // every inline #tag occurrence, as written
}

// Parse extracts frontmatter, body, wikilinks, embeds, and inline tags from
// raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	links, embeds := extractWikilinks(body)

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Links:       links,
		Embeds:      embeds,
		Tags:        tagRe.FindAllString(body, -1),
	}, nil
}

// Metadata converts the parse result into the cached metadata shape.
func (r *Result) Metadata() *models.Metadata {
	md := &models.Metadata{
		Links:       make([]models.LinkRef, 0, len(r.Links)),
		Embeds:      make([]models.LinkRef, 0, len(r.Embeds)),
		Tags:        make([]models.TagRef, 0, len(r.Tags)),
		Frontmatter: r.Frontmatter,
	}
	for _, l := range r.Links {
		md.Links = append(md.Links, models.LinkRef{Target: l})
	}
	for _, e := range r.Embeds {
		md.Embeds = append(md.Embeds, models.LinkRef{Target: e})
	}
	for _, t := range r.Tags {
		md.Tags = append(md.Tags, models.TagRef{Tag: t})
	}
	return md
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: everything is body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML is kept as body text.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// extractWikilinks returns link and embed targets, aliases stripped.
func extractWikilinks(body string) (links, embeds []string) {
	for _, m := range wikilinkRe.FindAllStringSubmatch(body, -1) {
		target := strings.TrimSpace(m[2])
		if target == "" {
			continue
		}
		if m[1] == "!" {
			embeds = append(embeds, target)
		} else {
			links = append(links, target)
		}
	}
	return links, embeds
}
