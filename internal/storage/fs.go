package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/djherbis/times"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to vault directory
}

var _ Provider = (*FS)(nil)

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute vault directory.
func (f *FS) Root() string { return f.root }

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// Files walks the vault and describes every file. Entries whose name starts
// with '.' are skipped, including whole hidden directories such as .git.
func (f *FS) Files() ([]models.FileInfo, error) {
	var out []models.FileInfo
	err := f.walk(func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := f.rel(p)
		if err != nil {
			return err
		}
		out = append(out, describe(p, rel, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list files: %w", err)
	}
	return out, nil
}

// Folders returns every folder below the root, as vault-relative paths.
func (f *FS) Folders() ([]string, error) {
	var out []string
	err := f.walk(func(p string, d fs.DirEntry) error {
		if !d.IsDir() || p == f.root {
			return nil
		}
		rel, err := f.rel(p)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list folders: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(p string) ([]byte, error) {
	abs, err := f.safePath(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", p, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	return data, nil
}

func (f *FS) walk(fn func(p string, d fs.DirEntry) error) error {
	return filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != f.root && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(p, d)
	})
}

func (f *FS) rel(abs string) (string, error) {
	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// describe builds the FileInfo of one file. The creation time is the
// file system birth time when the platform records one, otherwise the
// modification time.
func describe(abs, rel string, info fs.FileInfo) models.FileInfo {
	name := info.Name()
	ext := FileExtension(name)
	base := name
	if ext != "" {
		base = name[:len(name)-len(ext)-1]
	}
	folder := path.Dir(rel)
	if folder == "." {
		folder = ""
	}

	modified := info.ModTime()
	created := modified
	if ts, err := times.Stat(abs); err == nil && ts.HasBirthTime() {
		created = ts.BirthTime()
	}

	return models.FileInfo{
		Path:       rel,
		Name:       base,
		Extension:  ext,
		Folder:     folder,
		Size:       info.Size(),
		CreatedAt:  created,
		ModifiedAt: modified,
	}
}

// FileExtension returns the lower-cased text after the last '.' of
// filename, or "" when there is none.
func FileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// IsHidden reports whether a file or directory name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
