package commands

import (
	"context"
	"errors"
	"fmt"

	"planvault/internal/canvasid"
	"planvault/internal/domain"
	"planvault/internal/ports"
)

// SyncDependenciesResult reports one canvas -> frontmatter sync run.
type SyncDependenciesResult struct {
	Updated []string // entity ids whose depends_on changed
	Skipped int      // entities without a canvas node
	Errors  []error  // per-entity failures; the batch continues past them
}

// Err joins the per-entity errors; nil when the whole batch succeeded.
func (r *SyncDependenciesResult) Err() error {
	return errors.Join(r.Errors...)
}

// SyncDependenciesCommand rewrites each entity's depends_on to match
// the set of entities with an incoming canvas edge. The canvas is the
// source of truth in this direction.
type SyncDependenciesCommand struct {
	repo       ports.EntityRepository
	canvas     ports.CanvasStore
	CanvasPath string
}

// NewSyncDependenciesCommand creates a new SyncDependenciesCommand
func NewSyncDependenciesCommand(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) *SyncDependenciesCommand {
	return &SyncDependenciesCommand{repo: repo, canvas: canvas, CanvasPath: canvasPath}
}

// Execute runs the sync. A canvas or entity-listing failure aborts the
// whole batch; per-entity save failures are collected instead.
func (c *SyncDependenciesCommand) Execute(ctx context.Context) (*SyncDependenciesResult, error) {
	doc, err := c.canvas.Load(c.CanvasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load canvas: %w", err)
	}

	entities, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	pathToEntity := make(map[string]*domain.Entity, len(entities))
	for _, e := range entities {
		pathToEntity[e.Path] = e
	}

	nodeToPath := make(map[string]string)
	pathToNode := make(map[string]string)
	for _, node := range doc.FileNodes() {
		nodeToPath[node.ID] = node.File
		// First node wins when several reference the same file, so the
		// entity's edges resolve against one node deterministically.
		if _, ok := pathToNode[node.File]; !ok {
			pathToNode[node.File] = node.ID
		}
	}

	result := &SyncDependenciesResult{}
	for _, ent := range entities {
		nodeID, ok := pathToNode[ent.Path]
		if !ok {
			result.Skipped++
			continue
		}

		computed := computeDependsOn(doc, nodeID, nodeToPath, pathToEntity)
		if sameSet(ent.DependsOn, computed) {
			continue
		}

		ent.DependsOn = computed
		ent.Touch()
		if err := c.repo.Save(ent); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", ent.ID, err))
			continue
		}
		result.Updated = append(result.Updated, ent.ID)
	}

	return result, nil
}

// computeDependsOn resolves every edge into the node to an entity id.
// Edges whose source is not a file node, or whose file does not map to
// a known entity, contribute nothing. Duplicates collapse; edge order
// is preserved for output stability.
func computeDependsOn(doc *domain.Canvas, nodeID string, nodeToPath map[string]string, pathToEntity map[string]*domain.Entity) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, edge := range doc.EdgesInto(nodeID) {
		srcPath, ok := nodeToPath[edge.FromNode]
		if !ok {
			continue
		}
		src, ok := pathToEntity[srcPath]
		if !ok {
			continue
		}
		if seen[src.ID] {
			continue
		}
		seen[src.ID] = true
		deps = append(deps, src.ID)
	}
	return deps
}

// sameSet compares two id lists ignoring order.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}

// PushDependenciesResult reports one frontmatter -> canvas push run.
type PushDependenciesResult struct {
	EdgesAdded   int
	EdgesRemoved int
}

// PushDependenciesCommand drives canvas edges from recorded
// dependencies: the opposite direction of SyncDependenciesCommand.
// Only edges between two entity file nodes are managed; everything
// else on the canvas is left alone.
type PushDependenciesCommand struct {
	repo       ports.EntityRepository
	canvas     ports.CanvasStore
	CanvasPath string
}

// NewPushDependenciesCommand creates a new PushDependenciesCommand
func NewPushDependenciesCommand(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) *PushDependenciesCommand {
	return &PushDependenciesCommand{repo: repo, canvas: canvas, CanvasPath: canvasPath}
}

// Execute runs the push. The canvas is saved once, and only when it
// changed.
func (c *PushDependenciesCommand) Execute(ctx context.Context) (*PushDependenciesResult, error) {
	doc, err := c.canvas.Load(c.CanvasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load canvas: %w", err)
	}

	entities, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	pathToEntity := make(map[string]*domain.Entity, len(entities))
	idToNode := make(map[string]string)
	nodeToEntity := make(map[string]*domain.Entity)
	for _, e := range entities {
		pathToEntity[e.Path] = e
	}
	for _, node := range doc.FileNodes() {
		if ent, ok := pathToEntity[node.File]; ok {
			idToNode[ent.ID] = node.ID
			nodeToEntity[node.ID] = ent
		}
	}

	result := &PushDependenciesResult{}

	// Drop managed edges no longer backed by a recorded dependency.
	var kept []domain.CanvasEdge
	for _, edge := range doc.Edges {
		src, srcOK := nodeToEntity[edge.FromNode]
		dst, dstOK := nodeToEntity[edge.ToNode]
		if srcOK && dstOK && !dst.DependsOnID(src.ID) {
			result.EdgesRemoved++
			continue
		}
		kept = append(kept, edge)
	}
	doc.Edges = kept

	// Create edges for recorded dependencies missing from the canvas.
	for _, ent := range entities {
		toNode, ok := idToNode[ent.ID]
		if !ok {
			continue
		}
		for _, depID := range ent.DependsOn {
			fromNode, ok := idToNode[depID]
			if !ok {
				continue
			}
			if doc.HasEdge(fromNode, toNode) {
				continue
			}
			id, err := canvasid.New()
			if err != nil {
				return nil, err
			}
			doc.AddEdge(domain.CanvasEdge{ID: id, FromNode: fromNode, ToNode: toNode})
			result.EdgesAdded++
		}
	}

	if result.EdgesAdded > 0 || result.EdgesRemoved > 0 {
		if err := c.canvas.Save(c.CanvasPath, doc); err != nil {
			return nil, fmt.Errorf("failed to save canvas: %w", err)
		}
	}

	return result, nil
}
