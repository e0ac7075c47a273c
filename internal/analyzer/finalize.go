package analyzer

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/stats"
)

const (
	unknownExtension = "unknown"
	rootFolder       = "/"

	hubNoteLimit = 5
	topTagLimit  = 10
	folderLimit  = 10
)

// finalize reduces the accumulated facts into the snapshot.
func (b *builder) finalize() *models.VaultStatistics {
	n := len(b.notes)
	st := &models.VaultStatistics{
		GeneratedAt:           b.now.UTC(),
		TotalNotes:            n,
		TotalFiles:            b.files,
		TotalFolders:          b.folders,
		TotalWords:            b.totalWords,
		TotalCharacters:       b.totalCharacters,
		TotalParagraphs:       b.totalParagraphs,
		SkippedNotes:          b.skipped,
		TotalInternalLinks:    b.internalLinks,
		TotalExternalLinks:    b.externalLinks,
		NotesWithoutTags:      b.untagged,
		NotesCreatedThisWeek:  b.createdWeek,
		NotesCreatedThisMonth: b.createdMonth,
		NotesCreatedThisYear:  b.createdYear,
		MostActiveDay:         mostActiveDay(b.creations),
		CreationsByDate:       dateSeries(b.creations),
		ModificationsByDate:   dateSeries(b.modifications),
		FileTypeDistribution:  b.fileTypeDistribution(),
		FolderDistribution:    b.folderDistribution(),
	}

	if n > 0 {
		st.AverageWordsPerNote = int(math.Round(float64(b.totalWords) / float64(n)))
		st.MedianWordsPerNote = int(math.Round(stats.Median(b.wordCounts)))
		st.LinkDensity = stats.Round(float64(b.internalLinks)/float64(n), 2)
		st.ConnectivityScore = int(math.Round(float64(b.withLinks) / float64(n) * 100))
	}

	st.LongestNote, st.ShortestNote = b.extremes()
	st.HubNotes = b.hubNotes()
	st.OrphanNotes = b.orphans()
	st.TotalTags, st.UniqueTags, st.TagDistribution = b.tagDistribution()
	return st
}

// extremes returns the first notes with the maximum and minimum word count.
func (b *builder) extremes() (longest, shortest *models.NoteInfo) {
	for i := range b.notes {
		note := b.notes[i]
		if longest == nil || note.WordCount > longest.WordCount {
			longest = &note
		}
		if shortest == nil || note.WordCount < shortest.WordCount {
			shortest = &note
		}
	}
	return longest, shortest
}

func (b *builder) hubNotes() []models.NoteInfo {
	hubs := slices.Clone(b.notes)
	slices.SortStableFunc(hubs, func(x, y models.NoteInfo) int {
		return cmp.Compare(y.LinkCount, x.LinkCount)
	})
	if len(hubs) > hubNoteLimit {
		hubs = hubs[:hubNoteLimit]
	}
	if hubs == nil {
		hubs = []models.NoteInfo{}
	}
	return hubs
}

// orphans counts notes without outgoing links whose base name is never used
// as a link target.
func (b *builder) orphans() int {
	var n int
	for _, note := range b.notes {
		if b.outgoing[note.Path] == 0 && b.incoming[note.Name] == 0 {
			n++
		}
	}
	return n
}

func (b *builder) tagDistribution() (total int, unique []string, dist []models.TagInfo) {
	tags := slices.SortedFunc(maps.Keys(b.tagCounts), func(x, y string) int {
		if c := cmp.Compare(b.tagCounts[y], b.tagCounts[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})

	unique = make([]string, 0, len(tags))
	dist = make([]models.TagInfo, 0, min(len(tags), topTagLimit))
	for i, t := range tags {
		count := b.tagCounts[t]
		total += count
		unique = append(unique, t)
		if i < topTagLimit {
			dist = append(dist, models.TagInfo{
				Tag:        t,
				Count:      count,
				Percentage: stats.Percentage(count, len(b.notes)),
			})
		}
	}
	return total, unique, dist
}

func (b *builder) fileTypeDistribution() []models.FileTypeInfo {
	exts := slices.SortedFunc(maps.Keys(b.fileTypes), func(x, y string) int {
		if c := cmp.Compare(b.fileTypes[y], b.fileTypes[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	out := make([]models.FileTypeInfo, 0, len(exts))
	for _, ext := range exts {
		out = append(out, models.FileTypeInfo{
			Extension:  ext,
			Count:      b.fileTypes[ext],
			Percentage: stats.Percentage(b.fileTypes[ext], b.files),
		})
	}
	return out
}

func (b *builder) folderDistribution() []models.FolderInfo {
	paths := slices.SortedFunc(maps.Keys(b.noteFolders), func(x, y string) int {
		if c := cmp.Compare(b.noteFolders[y], b.noteFolders[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	if len(paths) > folderLimit {
		paths = paths[:folderLimit]
	}
	out := make([]models.FolderInfo, 0, len(paths))
	for _, p := range paths {
		out = append(out, models.FolderInfo{
			Path:       p,
			NoteCount:  b.noteFolders[p],
			Percentage: stats.Percentage(b.noteFolders[p], len(b.notes)),
		})
	}
	return out
}

// dateSeries returns one entry per day key in ascending order.
func dateSeries(counts map[string]int) []models.DateCount {
	out := make([]models.DateCount, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, models.DateCount{Date: k, Count: counts[k]})
	}
	return out
}

// mostActiveDay sums creation counts per weekday and returns the name of the
// busiest one. Ties go to the earliest weekday, Sunday first.
func mostActiveDay(creations map[string]int) string {
	var perDay [7]int
	for key, count := range creations {
		t, err := stats.ParseDateKey(key)
		if err != nil {
			continue
		}
		perDay[t.Weekday()] += count
	}
	best := -1
	for d, count := range perDay {
		if count > 0 && (best < 0 || count > perDay[best]) {
			best = d
		}
	}
	if best < 0 {
		return ""
	}
	return time.Weekday(best).String()
}
