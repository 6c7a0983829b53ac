package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"planvault/internal/adapters/frontmatter"
	"planvault/internal/application"
	"planvault/internal/domain"
)

// Repository implements ports.EntityRepository on a vault directory.
// The markdown files are the source of truth; every save is an atomic
// single-file replace.
type Repository struct {
	vaultPath string
}

// NewRepository creates a new filesystem repository
func NewRepository(vaultPath string) *Repository {
	return &Repository{vaultPath: ExpandHome(vaultPath)}
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// VaultPath returns the absolute vault root.
func (r *Repository) VaultPath() string {
	return r.vaultPath
}

// Load returns the entity with the given id.
func (r *Repository) Load(id string) (*domain.Entity, error) {
	typ := domain.ParseEntityType(id)
	if typ == domain.TypeUnknown {
		return nil, fmt.Errorf("%w: %s", application.ErrInvalidID, id)
	}

	entities, err := r.scanFolder(typ.Folder())
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, &application.NotFoundError{Kind: "entity", ID: id}
}

// Save persists the entity, deriving the file path for new entities.
func (r *Repository) Save(e *domain.Entity) error {
	if e.Path == "" {
		e.Path = e.Type.Folder() + "/" + e.ID + ".md"
	}

	content, err := frontmatter.Serialize(e)
	if err != nil {
		return err
	}

	path := filepath.Join(r.vaultPath, e.Path)
	if err := writeFileAtomic(path, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.Path, err)
	}
	return nil
}

// ListAll returns every entity in the vault, ordered by id. Markdown
// files without entity frontmatter are plain notes and are skipped.
func (r *Repository) ListAll() ([]*domain.Entity, error) {
	var all []*domain.Entity
	for _, folder := range domain.EntityFolders {
		entities, err := r.scanFolder(folder)
		if err != nil {
			return nil, err
		}
		all = append(all, entities...)
	}
	domain.SortEntities(all)
	return all, nil
}

// ChildrenOf returns the entities whose parent is the given entity.
func (r *Repository) ChildrenOf(e *domain.Entity) ([]*domain.Entity, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	var children []*domain.Entity
	for _, candidate := range all {
		if candidate.Parent == e.ID {
			children = append(children, candidate)
		}
	}
	return children, nil
}

func (r *Repository) scanFolder(folder string) ([]*domain.Entity, error) {
	root := filepath.Join(r.vaultPath, folder)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var entities []*domain.Entity
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		e, err := frontmatter.Parse(content)
		if err != nil {
			if errors.Is(err, frontmatter.ErrNoFrontmatter) {
				return nil
			}
			return nil // unparsable entity files surface via validate, not here
		}

		relPath, err := filepath.Rel(r.vaultPath, path)
		if err != nil {
			return nil
		}
		e.Path = filepath.ToSlash(relPath)
		entities = append(entities, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", folder, err)
	}
	return entities, nil
}

// writeFileAtomic replaces path via write-temp-then-rename so readers
// never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planvault-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
