// Package report renders a statistics snapshot for the terminal, either as
// tables or as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/stats"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// Render writes st to w in the given format.
func Render(w io.Writer, st *models.VaultStatistics, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatTable, "":
		if err := renderTables(w, st); err != nil {
			return fmt.Errorf("report: render table: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

func renderTables(w io.Writer, st *models.VaultStatistics) error {
	if st.SkippedNotes > 0 {
		warnColor.Fprintf(w, "%d notes could not be read and were skipped\n\n", st.SkippedNotes)
	}

	general := [][]string{
		{"Notes", strconv.Itoa(st.TotalNotes)},
		{"Files", strconv.Itoa(st.TotalFiles)},
		{"Folders", strconv.Itoa(st.TotalFolders)},
		{"Words", strconv.Itoa(st.TotalWords)},
		{"Characters", strconv.Itoa(st.TotalCharacters)},
		{"Paragraphs", strconv.Itoa(st.TotalParagraphs)},
		{"Average words per note", strconv.Itoa(st.AverageWordsPerNote)},
		{"Median words per note", strconv.Itoa(st.MedianWordsPerNote)},
	}
	if st.LongestNote != nil {
		general = append(general, []string{"Longest note", noteLabel(st.LongestNote)})
	}
	// An empty note as "shortest" says nothing about the vault.
	if st.ShortestNote != nil && st.ShortestNote.WordCount > 0 {
		general = append(general, []string{"Shortest note", noteLabel(st.ShortestNote)})
	}
	if err := section(w, "General", []string{"Metric", "Value"}, general); err != nil {
		return err
	}

	links := [][]string{
		{"Internal links", strconv.Itoa(st.TotalInternalLinks)},
		{"External links", strconv.Itoa(st.TotalExternalLinks)},
		{"Link density", strconv.FormatFloat(st.LinkDensity, 'f', 2, 64)},
		{"Connectivity", strconv.Itoa(st.ConnectivityScore) + "%"},
		{"Orphan notes", strconv.Itoa(st.OrphanNotes)},
	}
	if err := section(w, "Links", []string{"Metric", "Value"}, links); err != nil {
		return err
	}

	var hubs [][]string
	for i, n := range st.HubNotes {
		hubs = append(hubs, []string{strconv.Itoa(i + 1), n.Path, strconv.Itoa(n.LinkCount)})
	}
	if err := section(w, "Hub notes", []string{"Rank", "Note", "Links"}, hubs); err != nil {
		return err
	}

	var tags [][]string
	for _, t := range st.TagDistribution {
		tags = append(tags, []string{t.Tag, strconv.Itoa(t.Count), percent(t.Percentage)})
	}
	if err := section(w, "Tags", []string{"Tag", "Notes", "Share"}, tags); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d tags in total, %d unique, %d notes without tags\n",
		st.TotalTags, len(st.UniqueTags), st.NotesWithoutTags)

	streak := creationStreak(st)
	activity := [][]string{
		{"Created in the last 7 days", strconv.Itoa(st.NotesCreatedThisWeek)},
		{"Created in the last 30 days", strconv.Itoa(st.NotesCreatedThisMonth)},
		{"Created in the last 365 days", strconv.Itoa(st.NotesCreatedThisYear)},
		{"Most active day", orDash(st.MostActiveDay)},
		{"Current creation streak", days(streak.Current)},
		{"Longest creation streak", days(streak.Longest)},
	}
	if err := section(w, "Activity", []string{"Metric", "Value"}, activity); err != nil {
		return err
	}

	var types [][]string
	for _, ft := range st.FileTypeDistribution {
		types = append(types, []string{ft.Extension, strconv.Itoa(ft.Count), percent(ft.Percentage)})
	}
	if err := section(w, "File types", []string{"Extension", "Files", "Share"}, types); err != nil {
		return err
	}

	var folders [][]string
	for _, f := range st.FolderDistribution {
		folders = append(folders, []string{f.Path, strconv.Itoa(f.NoteCount), percent(f.Percentage)})
	}
	return section(w, "Folders", []string{"Folder", "Notes", "Share"}, folders)
}

// section prints a colored heading followed by a table. Empty tables are
// replaced by a placeholder line.
func section(w io.Writer, title string, headers []string, data [][]string) error {
	headingColor.Fprintf(w, "\n%s\n", title)
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.PerColumn = make([]tw.Align, len(headers))
		for i := 1; i < len(headers); i++ {
			cfg.Row.Alignment.PerColumn[i] = tw.AlignRight
		}
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func creationStreak(st *models.VaultStatistics) stats.Streak {
	keys := make([]string, 0, len(st.CreationsByDate))
	for _, d := range st.CreationsByDate {
		if d.Count > 0 {
			keys = append(keys, d.Date)
		}
	}
	return stats.CalculateStreak(keys, st.GeneratedAt)
}

func noteLabel(n *models.NoteInfo) string {
	return fmt.Sprintf("%s (%d words)", n.Path, n.WordCount)
}

func percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
