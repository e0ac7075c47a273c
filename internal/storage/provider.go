// Package storage defines the read-only vault file-system abstraction.
package storage

import "github.com/starford/vaultstats/internal/models"

// Provider is the interface for vault file access.
// Paths are vault-relative and use forward slashes.
type Provider interface {
	// Files returns every non-hidden file in the vault.
	Files() ([]models.FileInfo, error)
	// Folders returns every non-hidden folder below the vault root.
	Folders() ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Root returns the absolute vault directory.
	Root() string
}
