package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/starford/vaultstats/internal/apperr"
)

func tempVault(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, fs
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFiles_DescribesEveryFile(t *testing.T) {
	dir, s := tempVault(t)
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "sub/b.MD", "b")
	writeFile(t, dir, "sub/deep/img.PNG", "png")
	writeFile(t, dir, "LICENSE", "x")

	files, err := s.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("len = %d, want 4", len(files))
	}
	byPath := map[string]int{}
	for i, f := range files {
		byPath[f.Path] = i
	}

	b := files[byPath["sub/b.MD"]]
	if b.Name != "b" || b.Extension != "md" || b.Folder != "sub" || !b.IsNote() {
		t.Errorf("sub/b.MD = %+v", b)
	}
	img := files[byPath["sub/deep/img.PNG"]]
	if img.Extension != "png" || img.Folder != "sub/deep" {
		t.Errorf("img = %+v", img)
	}
	lic := files[byPath["LICENSE"]]
	if lic.Extension != "" || lic.Name != "LICENSE" || lic.Folder != "" {
		t.Errorf("LICENSE = %+v", lic)
	}
	a := files[byPath["a.md"]]
	if a.ModifiedAt.IsZero() || a.CreatedAt.IsZero() {
		t.Errorf("timestamps missing: %+v", a)
	}
}

func TestFiles_SkipsHidden(t *testing.T) {
	dir, s := tempVault(t)
	writeFile(t, dir, "visible.md", "v")
	writeFile(t, dir, ".obsidian/workspace.json", "{}")
	writeFile(t, dir, ".hidden.md", "h")

	files, err := s.Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "visible.md" {
		t.Errorf("files = %+v", files)
	}
}

func TestFolders(t *testing.T) {
	dir, s := tempVault(t)
	writeFile(t, dir, "a/b/c.md", "c")
	writeFile(t, dir, "d/e.md", "e")
	writeFile(t, dir, ".git/HEAD", "ref")

	folders, err := s.Folders()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(folders)
	want := []string{"a", "a/b", "d"}
	if len(folders) != len(want) {
		t.Fatalf("folders = %v, want %v", folders, want)
	}
	for i := range want {
		if folders[i] != want[i] {
			t.Errorf("folders[%d] = %q, want %q", i, folders[i], want[i])
		}
	}
}

func TestRead(t *testing.T) {
	dir, s := tempVault(t)
	writeFile(t, dir, "sub/note.md", "# Hello")
	got, err := s.Read("sub/note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "# Hello" {
		t.Errorf("content = %q", got)
	}
}

func TestRead_NotFound(t *testing.T) {
	_, s := tempVault(t)
	_, err := s.Read("missing.md")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTraversalBlocked(t *testing.T) {
	_, s := tempVault(t)
	for _, p := range []string{"../../etc/passwd", "../outside.md", "/etc/shadow"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"note.md":        "md",
		"Photo.JPEG":     "jpeg",
		"archive.tar.gz": "gz",
		"README":         "",
		"trailing.":      "",
	}
	for in, want := range cases {
		if got := FileExtension(in); got != want {
			t.Errorf("FileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	if _, err := NewFS("/tmp/vaultstats-does-not-exist-" + t.Name()); err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "vaultstats-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
