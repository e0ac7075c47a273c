package models

import "time"

// NoteInfo is the per-note record derived during analysis.
type NoteInfo struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	WordCount  int       `json:"wordCount"`
	LinkCount  int       `json:"linkCount"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// TagInfo is one entry of the tag distribution.
type TagInfo struct {
	Tag        string  `json:"tag"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DateCount is the number of events on one calendar day (YYYY-MM-DD, UTC).
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FileTypeInfo is one entry of the file type distribution.
type FileTypeInfo struct {
	Extension  string  `json:"extension"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FolderInfo is one entry of the folder distribution.
type FolderInfo struct {
	Path       string  `json:"path"`
	NoteCount  int     `json:"noteCount"`
	Percentage float64 `json:"percentage"`
}

// VaultStatistics is the snapshot produced by one analysis run.
// Renderers display the fields verbatim, so names and rounding are part of
// the contract.
type VaultStatistics struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// General.
	TotalNotes          int       `json:"totalNotes"`
	TotalFiles          int       `json:"totalFiles"`
	TotalFolders        int       `json:"totalFolders"`
	TotalWords          int       `json:"totalWords"`
	TotalCharacters     int       `json:"totalCharacters"`
	TotalParagraphs     int       `json:"totalParagraphs"`
	AverageWordsPerNote int       `json:"averageWordsPerNote"`
	MedianWordsPerNote  int       `json:"medianWordsPerNote"`
	LongestNote         *NoteInfo `json:"longestNote"`
	// ShortestNote is only meant to be displayed when its WordCount is non-zero.
	ShortestNote *NoteInfo `json:"shortestNote"`
	SkippedNotes int       `json:"skippedNotes"`

	// Links.
	TotalInternalLinks int        `json:"totalInternalLinks"`
	TotalExternalLinks int        `json:"totalExternalLinks"`
	LinkDensity        float64    `json:"linkDensity"`
	ConnectivityScore  int        `json:"connectivityScore"`
	OrphanNotes        int        `json:"orphanNotes"`
	HubNotes           []NoteInfo `json:"hubNotes"`

	// Tags.
	TotalTags        int       `json:"totalTags"`
	UniqueTags       []string  `json:"uniqueTags"`
	TagDistribution  []TagInfo `json:"tagDistribution"`
	NotesWithoutTags int       `json:"notesWithoutTags"`

	// Time.
	NotesCreatedThisWeek  int         `json:"notesCreatedThisWeek"`
	NotesCreatedThisMonth int         `json:"notesCreatedThisMonth"`
	NotesCreatedThisYear  int         `json:"notesCreatedThisYear"`
	MostActiveDay         string      `json:"mostActiveDay"`
	CreationsByDate       []DateCount `json:"creationsByDate"`
	ModificationsByDate   []DateCount `json:"modificationsByDate"`

	// Files and folders.
	FileTypeDistribution []FileTypeInfo `json:"fileTypeDistribution"`
	FolderDistribution   []FolderInfo   `json:"folderDistribution"`
}

// ActivityCell is one day of an activity heatmap.
type ActivityCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// HeatmapData is a calendar grid of daily activity ending today.
type HeatmapData struct {
	Series        string           `json:"series"`
	Months        int              `json:"months"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	Cells         []ActivityCell   `json:"cells"`
	Weeks         [][]ActivityCell `json:"weeks"`
	MaxCount      int              `json:"maxCount"`
	Total         int              `json:"total"`
	CurrentStreak int              `json:"currentStreak"`
	LongestStreak int              `json:"longestStreak"`
}
