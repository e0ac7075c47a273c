package index

import "github.com/starford/vaultstats/internal/models"

// MetadataCache defines the interface for cached note metadata.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type MetadataCache interface {
	Upsert(path, checksum string, md *models.Metadata) error
	Get(path string) (*Entry, error)
	Delete(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	Count() (int, error)
	Close() error
}

// Verify *DB satisfies MetadataCache at compile time.
var _ MetadataCache = (*DB)(nil)
