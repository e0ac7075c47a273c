package mcpserver

// StatsFieldsDoc describes the fields of the statistics snapshot returned by
// get_vault_stats, so that consumers can interpret the numbers.
const StatsFieldsDoc = `# Vault statistics fields

All counts refer to the non-excluded part of the vault. A "note" is a file
with the .md extension; every other file only counts towards totalFiles and
the file type distribution.

## General

| field | meaning |
|---|---|
| totalNotes | notes analyzed successfully |
| skippedNotes | notes that could not be read and were left out of every figure |
| totalFiles | all files, notes included |
| totalFolders | folders below the vault root |
| totalWords | whitespace-separated tokens over all notes |
| totalCharacters | Unicode code points over all notes |
| totalParagraphs | blocks separated by blank lines |
| averageWordsPerNote | totalWords / totalNotes, rounded |
| medianWordsPerNote | median word count, rounded |
| longestNote, shortestNote | first note with the most / fewest words |

## Links

| field | meaning |
|---|---|
| totalInternalLinks | ` + "`[[links]]`" + ` plus ` + "`![[embeds]]`" + ` |
| totalExternalLinks | Markdown links to http(s) URLs |
| linkDensity | internal links per note, 2 decimals |
| connectivityScore | percent of notes with at least one internal link |
| orphanNotes | notes without outgoing links whose name is never a link target |
| hubNotes | the 5 notes with the most internal links |

A link target is matched by its text: ` + "`[[folder/note]]`" + ` does not count as an
incoming link of a note named "note".

## Tags

| field | meaning |
|---|---|
| totalTags | sum over notes of their distinct tags |
| uniqueTags | every tag, most used first |
| tagDistribution | the 10 most used tags; percentage is relative to totalNotes |
| notesWithoutTags | notes without inline or frontmatter tags |

Inline ` + "`#Tag`" + ` and frontmatter ` + "`tags: tag`" + ` are the same tag ` + "`#tag`" + `.

## Time

| field | meaning |
|---|---|
| notesCreatedThisWeek / Month / Year | notes created in the last 7 / 30 / 365 days |
| mostActiveDay | weekday with the most note creations |
| creationsByDate, modificationsByDate | notes per UTC day (YYYY-MM-DD), ascending |

## Files and folders

| field | meaning |
|---|---|
| fileTypeDistribution | files per extension ("unknown" without one); percentage of totalFiles |
| folderDistribution | the 10 folders with the most notes ("/" is the vault root) |
`
