package ports

import "planvault/internal/domain"

// VaultIndex provides cached access to vault entities. Query
// operations should be O(1) or O(log n) via database indexes; the
// markdown files stay the source of truth.
type VaultIndex interface {
	// Lifecycle
	Open(vaultPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.IndexStats, error)
	SyncFull() (*domain.IndexStats, error)

	// Queries
	GetByID(id string) (*domain.IndexEntry, error)
	ListByType(typ domain.EntityType) ([]*domain.IndexEntry, error)
	ListByStatus(status domain.Status) ([]*domain.IndexEntry, error)
	Search(query string) ([]*domain.IndexEntry, error)
}
