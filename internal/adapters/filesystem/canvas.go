package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"planvault/internal/domain"
)

// CanvasStore implements ports.CanvasStore on the vault directory.
// Canvas paths are vault-relative, matching the frontmatter `canvas`
// field.
type CanvasStore struct {
	vaultPath string
}

// NewCanvasStore creates a new canvas store
func NewCanvasStore(vaultPath string) *CanvasStore {
	return &CanvasStore{vaultPath: ExpandHome(vaultPath)}
}

// Load reads and decodes a canvas document.
func (s *CanvasStore) Load(path string) (*domain.Canvas, error) {
	content, err := os.ReadFile(filepath.Join(s.vaultPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas %s: %w", path, err)
	}

	var doc domain.Canvas
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse canvas %s: %w", path, err)
	}
	return &doc, nil
}

// Save encodes and atomically replaces a canvas document. Obsidian
// writes tab-indented JSON; matching it keeps diffs quiet.
func (s *CanvasStore) Save(path string, doc *domain.Canvas) error {
	if doc.Nodes == nil {
		doc.Nodes = []domain.CanvasNode{}
	}
	if doc.Edges == nil {
		doc.Edges = []domain.CanvasEdge{}
	}

	content, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode canvas %s: %w", path, err)
	}
	content = append(content, '\n')

	if err := writeFileAtomic(filepath.Join(s.vaultPath, path), content); err != nil {
		return fmt.Errorf("failed to write canvas %s: %w", path, err)
	}
	return nil
}
