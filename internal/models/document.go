// Package models defines the domain types for vaultstats.
package models

import (
	"fmt"
	"strings"
	"time"
)

// NoteExtension is the extension of files analyzed as notes.
const NoteExtension = "md"

// FileInfo describes one file of the vault as enumerated by a store.
type FileInfo struct {
	Path       string    `json:"path"`      // vault-relative, forward slashes
	Name       string    `json:"name"`      // file name without extension
	Extension  string    `json:"extension"` // lower-cased, without dot
	Folder     string    `json:"folder"`    // "" for the vault root
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// IsNote reports whether the file is a Markdown note.
func (f FileInfo) IsNote() bool {
	return f.Extension == NoteExtension
}

// LinkRef is a declared link or embed as written in the note.
type LinkRef struct {
	Target string `json:"target"`
}

// TagRef is a declared inline tag, including its leading '#'.
type TagRef struct {
	Tag string `json:"tag"`
}

// Metadata is the pre-parsed, cached view of a note.
type Metadata struct {
	Links       []LinkRef      `json:"links"`
	Embeds      []LinkRef      `json:"embeds"`
	Tags        []TagRef       `json:"tags"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
}

// FrontmatterTagsKind discriminates FrontmatterTags.
type FrontmatterTagsKind int

const (
	TagsAbsent FrontmatterTagsKind = iota
	TagsScalar
	TagsList
)

// FrontmatterTags is the frontmatter "tags" value, which authors write
// either as a single string or as a list.
type FrontmatterTags struct {
	Kind   FrontmatterTagsKind
	Scalar string
	List   []string
}

// FrontmatterTagsOf reads the "tags" key of fm. Values of any other
// shape are treated as absent.
func FrontmatterTagsOf(fm map[string]any) FrontmatterTags {
	raw, ok := fm["tags"]
	if !ok || raw == nil {
		return FrontmatterTags{Kind: TagsAbsent}
	}
	switch v := raw.(type) {
	case string:
		return FrontmatterTags{Kind: TagsScalar, Scalar: v}
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			list = append(list, fmt.Sprint(item))
		}
		return FrontmatterTags{Kind: TagsList, List: list}
	case []string:
		return FrontmatterTags{Kind: TagsList, List: v}
	case int, int64, float64, bool:
		return FrontmatterTags{Kind: TagsScalar, Scalar: fmt.Sprint(v)}
	default:
		return FrontmatterTags{Kind: TagsAbsent}
	}
}

// Normalized returns the tags as lower-cased names carrying a single
// leading '#'. Blank entries are dropped.
func (t FrontmatterTags) Normalized() []string {
	var raw []string
	switch t.Kind {
	case TagsScalar:
		raw = []string{t.Scalar}
	case TagsList:
		raw = t.List
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimPrefix(strings.TrimSpace(s), "#")
		if s == "" {
			continue
		}
		out = append(out, "#"+strings.ToLower(s))
	}
	return out
}
