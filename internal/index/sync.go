package index

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/vaultstats/internal/checksum"
	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/parser"
	"github.com/starford/vaultstats/internal/storage"
)

// Sync walks the vault and brings the metadata cache up to date:
//   - new/changed notes are parsed and upserted
//   - notes removed from disk are deleted from the cache
//
// Per-note failures are logged and skipped.
func Sync(db MetadataCache, store storage.Provider, logger *slog.Logger) error {
	files, err := store.Files()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	var indexed int
	disk := make(map[string]struct{}, len(files))
	for _, f := range files {
		if !f.IsNote() {
			continue
		}
		disk[f.Path] = struct{}{}

		data, err := store.Read(f.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", f.Path), slog.String("error", err.Error()))
			continue
		}
		if checksum.Equal(data, checksums[f.Path]) {
			continue
		}
		if _, err := IndexFile(db, f.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", f.Path), slog.String("error", err.Error()))
			continue
		}
		indexed++
		logger.Debug("sync: indexed", slog.String("path", f.Path))
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := db.Delete(p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: removed stale", slog.String("path", p))
		}
	}

	logger.Info("sync: done", slog.Int("notes", len(disk)), slog.Int("indexed", indexed))
	return nil
}

// IndexFile parses data and upserts its metadata into the cache.
//
// A parse failure returns nil metadata. A failed cache write still returns
// the parsed metadata together with ErrCacheWrite.
func IndexFile(db MetadataCache, path string, data []byte) (*models.Metadata, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("index: parse %s: %w", path, err)
	}
	md := res.Metadata()
	if err := db.Upsert(path, checksum.Sum(data), md); err != nil {
		return md, fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return md, nil
}

// ErrCacheWrite reports that parsed metadata could not be stored.
var ErrCacheWrite = errors.New("index: cache write failed")
