package analyzer

import (
	"time"
	"unicode/utf8"

	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/parser"
	"github.com/starford/vaultstats/internal/stats"
)

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
	yearWindow  = 365 * 24 * time.Hour
)

// builder accumulates the facts of one Analyze call.
type builder struct {
	now time.Time

	// all non-excluded files
	files     int
	fileTypes map[string]int
	folders   int

	notes      []models.NoteInfo
	wordCounts []int
	skipped    int

	totalWords      int
	totalCharacters int
	totalParagraphs int

	internalLinks int
	externalLinks int
	withLinks     int
	outgoing      map[string]int // by note path
	incoming      map[string]int // by raw link target text

	tagCounts map[string]int
	untagged  int

	creations     map[string]int
	modifications map[string]int
	createdWeek   int
	createdMonth  int
	createdYear   int

	noteFolders map[string]int
}

func newBuilder(now time.Time) *builder {
	return &builder{
		now:           now,
		fileTypes:     make(map[string]int),
		outgoing:      make(map[string]int),
		incoming:      make(map[string]int),
		tagCounts:     make(map[string]int),
		creations:     make(map[string]int),
		modifications: make(map[string]int),
		noteFolders:   make(map[string]int),
	}
}

func (b *builder) addFile(f models.FileInfo) {
	b.files++
	ext := f.Extension
	if ext == "" {
		ext = unknownExtension
	}
	b.fileTypes[ext]++
}

// addDocument folds one successfully read note. md may be nil.
func (b *builder) addDocument(f models.FileInfo, content string, md *models.Metadata) {
	if md == nil {
		md = &models.Metadata{}
	}

	words := parser.CountWords(content)
	b.wordCounts = append(b.wordCounts, words)
	b.totalWords += words
	b.totalCharacters += utf8.RuneCountInString(content)
	b.totalParagraphs += parser.CountParagraphs(content)

	linkCount := len(md.Links) + len(md.Embeds)
	b.internalLinks += linkCount
	b.externalLinks += len(parser.ExtractExternalLinks(content))
	b.outgoing[f.Path] = linkCount
	if linkCount > 0 {
		b.withLinks++
	}
	for _, l := range md.Links {
		b.incoming[l.Target]++
	}

	tags := documentTags(md)
	if len(tags) == 0 {
		b.untagged++
	}
	for _, t := range tags {
		b.tagCounts[t]++
	}

	b.creations[stats.FormatDateKey(f.CreatedAt)]++
	b.modifications[stats.FormatDateKey(f.ModifiedAt)]++
	if !f.CreatedAt.Before(b.now.Add(-weekWindow)) {
		b.createdWeek++
	}
	if !f.CreatedAt.Before(b.now.Add(-monthWindow)) {
		b.createdMonth++
	}
	if !f.CreatedAt.Before(b.now.Add(-yearWindow)) {
		b.createdYear++
	}

	folder := f.Folder
	if folder == "" {
		folder = rootFolder
	}
	b.noteFolders[folder]++

	b.notes = append(b.notes, models.NoteInfo{
		Path:       f.Path,
		Name:       f.Name,
		WordCount:  words,
		LinkCount:  linkCount,
		CreatedAt:  f.CreatedAt,
		ModifiedAt: f.ModifiedAt,
	})
}
