// Package analyzer computes the vault statistics snapshot in one sequential
// pass over the documents of a DocumentStore.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/vaultstats/internal/exclude"
	"github.com/starford/vaultstats/internal/models"
)

// DocumentStore is the source of files, content and cached metadata.
type DocumentStore interface {
	Files(ctx context.Context) ([]models.FileInfo, error)
	Folders(ctx context.Context) ([]string, error)
	ReadContent(ctx context.Context, f models.FileInfo) (string, error)
	// Metadata may return nil when nothing is cached for f.
	Metadata(ctx context.Context, f models.FileInfo) (*models.Metadata, error)
}

// Config holds the analysis settings.
type Config struct {
	ExcludePatterns []string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the clock used for recency buckets and GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// Analyzer produces VaultStatistics. It keeps no state between calls, so
// concurrent Analyze calls do not interfere.
type Analyzer struct {
	store   DocumentStore
	exclude *exclude.Matcher
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Analyzer over store.
func New(store DocumentStore, cfg Config, logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:   store,
		exclude: exclude.Compile(cfg.ExcludePatterns),
		logger:  logger,
		now:     time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze scans the vault and returns a fresh statistics snapshot.
//
// A document whose content or metadata cannot be read is logged, counted in
// SkippedNotes and left out of every aggregate. Failing to enumerate the vault
// or a cancelled ctx aborts the run.
func (a *Analyzer) Analyze(ctx context.Context) (*models.VaultStatistics, error) {
	now := a.now()

	files, err := a.store.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzer: list files: %w", err)
	}
	folders, err := a.store.Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzer: list folders: %w", err)
	}

	b := newBuilder(now)
	var docs []models.FileInfo
	for _, f := range files {
		if a.exclude.Match(f.Path) {
			continue
		}
		b.addFile(f)
		if f.IsNote() {
			docs = append(docs, f)
		}
	}
	for _, p := range folders {
		// "dir/*" also excludes the folder dir itself.
		if !a.exclude.Match(p) && !a.exclude.Match(p+"/") {
			b.folders++
		}
	}

	for _, f := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := a.store.ReadContent(ctx, f)
		if err != nil {
			a.skip(b, f, "read", err)
			continue
		}
		md, err := a.store.Metadata(ctx, f)
		if err != nil {
			a.skip(b, f, "metadata", err)
			continue
		}
		b.addDocument(f, content, md)
	}

	st := b.finalize()
	a.logger.Debug("analyzer: done",
		slog.Int("notes", st.TotalNotes),
		slog.Int("files", st.TotalFiles),
		slog.Int("skipped", st.SkippedNotes))
	return st, nil
}

func (a *Analyzer) skip(b *builder, f models.FileInfo, op string, err error) {
	b.skipped++
	a.logger.Warn("analyzer: skip document",
		slog.String("path", f.Path),
		slog.String("op", op),
		slog.String("error", err.Error()))
}
