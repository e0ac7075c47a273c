// Package vault serves vault documents to the analyzer: file listings and
// content from the storage provider, parsed metadata from the index cache.
package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/checksum"
	"github.com/starford/vaultstats/internal/index"
	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/storage"
)

// Store combines a storage provider and the metadata cache.
//
// The content returned by the last ReadContent is kept until the following
// Metadata call for the same unchanged file, so each note is read once per
// analysis.
type Store struct {
	files  storage.Provider
	cache  index.MetadataCache
	logger *slog.Logger

	mu   sync.Mutex
	last readResult
}

type readResult struct {
	path     string
	modified time.Time
	size     int64
	data     []byte
}

// NewStore creates a Store.
func NewStore(files storage.Provider, cache index.MetadataCache, logger *slog.Logger) *Store {
	return &Store{files: files, cache: cache, logger: logger}
}

// Files returns every non-hidden file of the vault.
func (s *Store) Files(ctx context.Context) ([]models.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.files.Files()
}

// Folders returns every non-hidden folder below the vault root.
func (s *Store) Folders(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.files.Folders()
}

// ReadContent returns the text of f.
func (s *Store) ReadContent(ctx context.Context, f models.FileInfo) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.files.Read(f.Path)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.last = readResult{path: f.Path, modified: f.ModifiedAt, size: f.Size, data: data}
	s.mu.Unlock()
	return string(data), nil
}

// Metadata returns the cached metadata of f. A missing, outdated or
// unreadable cache entry is refreshed from the file content first. When the
// refreshed metadata cannot be stored it is still returned.
func (s *Store) Metadata(ctx context.Context, f models.FileInfo) (*models.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.cache.Get(f.Path)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		s.logger.Warn("vault: cache entry unreadable, re-indexing",
			slog.String("path", f.Path), slog.String("error", err.Error()))
		entry = nil
	}

	data, err := s.content(f)
	if err != nil {
		return nil, err
	}
	if entry != nil && checksum.Equal(data, entry.Checksum) {
		return &entry.Metadata, nil
	}

	md, err := index.IndexFile(s.cache, f.Path, data)
	if err != nil {
		if md == nil {
			return nil, fmt.Errorf("vault: refresh %s: %w", f.Path, err)
		}
		s.logger.Warn("vault: metadata not cached",
			slog.String("path", f.Path), slog.String("error", err.Error()))
		return md, nil
	}
	s.logger.Debug("vault: metadata refreshed", slog.String("path", f.Path))
	return md, nil
}

// content returns the bytes kept by ReadContent for f, or reads the file.
func (s *Store) content(f models.FileInfo) ([]byte, error) {
	s.mu.Lock()
	last := s.last
	s.last = readResult{}
	s.mu.Unlock()

	if last.data != nil && last.path == f.Path && last.size == f.Size && last.modified.Equal(f.ModifiedAt) {
		return last.data, nil
	}
	return s.files.Read(f.Path)
}
