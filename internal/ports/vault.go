package ports

import "planvault/internal/domain"

// EntityRepository defines storage operations for work-item entities.
// Entities are mutable in memory; callers persist via Save after
// mutation.
type EntityRepository interface {
	// Load returns the entity with the given id, or a not-found error.
	Load(id string) (*domain.Entity, error)

	// Save persists the entity with an atomic single-file replace,
	// rewriting its frontmatter.
	Save(e *domain.Entity) error

	// ListAll returns every entity in the vault, ordered by id.
	ListAll() ([]*domain.Entity, error)

	// ChildrenOf returns the entities whose parent is the given entity.
	ChildrenOf(e *domain.Entity) ([]*domain.Entity, error)
}

// CanvasStore loads and saves a canvas document as a whole.
type CanvasStore interface {
	Load(path string) (*domain.Canvas, error)
	Save(path string, c *domain.Canvas) error
}

// ObsidianOpener opens a vault file in Obsidian.
type ObsidianOpener interface {
	OpenFile(relPath string) error
}
