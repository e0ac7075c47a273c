package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/models"
)

// Entry is one cached metadata row.
type Entry struct {
	Path      string
	Checksum  string
	Metadata  models.Metadata
	IndexedAt time.Time
}

// Upsert inserts or replaces the cached metadata of a note.
func (db *DB) Upsert(path, checksum string, md *models.Metadata) error {
	if md == nil {
		md = &models.Metadata{}
	}
	links, err := json.Marshal(nonNil(md.Links))
	if err != nil {
		return fmt.Errorf("index: encode links: %w", err)
	}
	embeds, err := json.Marshal(nonNil(md.Embeds))
	if err != nil {
		return fmt.Errorf("index: encode embeds: %w", err)
	}
	tags, err := json.Marshal(nonNil(md.Tags))
	if err != nil {
		return fmt.Errorf("index: encode tags: %w", err)
	}
	fm := map[string]any{}
	for k, v := range md.Frontmatter {
		fm[k] = jsonValue(v)
	}
	frontmatter, err := json.Marshal(fm)
	if err != nil {
		return fmt.Errorf("index: encode frontmatter: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO metadata (path, checksum, links, embeds, tags, frontmatter, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum    = excluded.checksum,
			links       = excluded.links,
			embeds      = excluded.embeds,
			tags        = excluded.tags,
			frontmatter = excluded.frontmatter,
			indexed_at  = excluded.indexed_at
	`, path, checksum, string(links), string(embeds), string(tags), string(frontmatter), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("index: upsert %s: %w", path, err)
	}
	return nil
}

// Get returns the cached entry for path, or apperr.ErrNotFound.
func (db *DB) Get(path string) (*Entry, error) {
	var (
		e                                Entry
		links, embeds, tags, frontmatter string
	)
	err := db.conn.QueryRow(`
		SELECT path, checksum, links, embeds, tags, frontmatter, indexed_at
		FROM metadata WHERE path = ?
	`, path).Scan(&e.Path, &e.Checksum, &links, &embeds, &tags, &frontmatter, &e.IndexedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("index: get %s: %w", path, err)
	}

	if err := json.Unmarshal([]byte(links), &e.Metadata.Links); err != nil {
		return nil, fmt.Errorf("index: decode links of %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(embeds), &e.Metadata.Embeds); err != nil {
		return nil, fmt.Errorf("index: decode embeds of %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(tags), &e.Metadata.Tags); err != nil {
		return nil, fmt.Errorf("index: decode tags of %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(frontmatter), &e.Metadata.Frontmatter); err != nil {
		return nil, fmt.Errorf("index: decode frontmatter of %s: %w", path, err)
	}
	if len(e.Metadata.Frontmatter) == 0 {
		e.Metadata.Frontmatter = nil
	}
	return &e, nil
}

// Delete removes the cached entry for path.
func (db *DB) Delete(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM metadata WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete %s: %w", path, err)
	}
	return nil
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM metadata WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every cached note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Count returns the number of cached notes.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM metadata`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

// jsonValue converts a decoded YAML value into one encoding/json accepts.
// Mapping keys that are not strings are formatted, and NaN and infinities
// become their YAML-neutral text ("NaN", "+Inf", "-Inf").
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = jsonValue(x)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[fmt.Sprint(k)] = jsonValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = jsonValue(x)
		}
		return out
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
