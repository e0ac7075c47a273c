package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/starford/vaultstats/internal/models"
	"github.com/starford/vaultstats/internal/parser"
	"github.com/starford/vaultstats/internal/storage"
)

var errBroken = errors.New("broken")

// fakeStore is an in-memory DocumentStore. Metadata is parsed from the
// content unless set explicitly.
type fakeStore struct {
	files    []models.FileInfo
	folders  []string
	content  map[string]string
	meta     map[string]*models.Metadata
	readErr  map[string]error
	metaErr  map[string]error
	filesErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		content: make(map[string]string),
		meta:    make(map[string]*models.Metadata),
		readErr: make(map[string]error),
		metaErr: make(map[string]error),
	}
}

// add registers a file created and modified at the given instants.
func (s *fakeStore) add(p, content string, created, modified time.Time) {
	base := path.Base(p)
	ext := storage.FileExtension(base)
	name := base
	if ext != "" {
		name = base[:len(base)-len(ext)-1]
	}
	folder := path.Dir(p)
	if folder == "." {
		folder = ""
	}
	s.files = append(s.files, models.FileInfo{
		Path:       p,
		Name:       name,
		Extension:  ext,
		Folder:     folder,
		Size:       int64(len(content)),
		CreatedAt:  created,
		ModifiedAt: modified,
	})
	s.content[p] = content
}

func (s *fakeStore) Files(ctx context.Context) ([]models.FileInfo, error) {
	if s.filesErr != nil {
		return nil, s.filesErr
	}
	return s.files, nil
}

func (s *fakeStore) Folders(ctx context.Context) ([]string, error) {
	return s.folders, nil
}

func (s *fakeStore) ReadContent(ctx context.Context, f models.FileInfo) (string, error) {
	if err := s.readErr[f.Path]; err != nil {
		return "", err
	}
	return s.content[f.Path], nil
}

func (s *fakeStore) Metadata(ctx context.Context, f models.FileInfo) (*models.Metadata, error) {
	if err := s.metaErr[f.Path]; err != nil {
		return nil, err
	}
	if md, ok := s.meta[f.Path]; ok {
		return md, nil
	}
	res, err := parser.Parse([]byte(s.content[f.Path]))
	if err != nil {
		return nil, err
	}
	return res.Metadata(), nil
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
