package commands

import (
	"context"
	"fmt"

	"planvault/internal/domain"
	"planvault/internal/ports"
)

// Indicator geometry relative to the target node.
const (
	indicatorWidth   = 160
	indicatorHeight  = 40
	indicatorSpacing = 20
)

// ReconcileIndicatorsResult reports one indicator reconciliation run.
// A second run with no intervening change reports all zeros.
type ReconcileIndicatorsResult struct {
	Created int
	Updated int
	Removed int
	Total   int // entities with a canvas node that were examined
}

// ReconcileIndicatorsCommand keeps one indicator node per entity on
// the canvas, showing the entity's display status (Blocked wins while
// a blocker exists). Orphaned indicators are removed.
type ReconcileIndicatorsCommand struct {
	repo       ports.EntityRepository
	canvas     ports.CanvasStore
	CanvasPath string
}

// NewReconcileIndicatorsCommand creates a new ReconcileIndicatorsCommand
func NewReconcileIndicatorsCommand(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) *ReconcileIndicatorsCommand {
	return &ReconcileIndicatorsCommand{repo: repo, canvas: canvas, CanvasPath: canvasPath}
}

type indicatorUpdate struct {
	id    string
	label string
	color string
}

// Execute computes the desired indicator set, applies the
// create/update/remove diff in one batch, and saves the canvas once.
func (c *ReconcileIndicatorsCommand) Execute(ctx context.Context) (*ReconcileIndicatorsResult, error) {
	doc, err := c.canvas.Load(c.CanvasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load canvas: %w", err)
	}

	entities, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	resolve := domain.ResolverFromSlice(entities)
	pathToEntity := make(map[string]*domain.Entity, len(entities))
	for _, e := range entities {
		pathToEntity[e.Path] = e
	}

	// Classify first, mutate after: appends and removals shift the node
	// slice under any pointers handed out during classification.
	existing := doc.Indicators()
	result := &ReconcileIndicatorsResult{}
	live := make(map[string]bool)

	var creates []domain.CanvasNode
	var updates []indicatorUpdate
	var removals []string

	for _, node := range doc.FileNodes() {
		ent, ok := pathToEntity[node.File]
		if !ok {
			continue
		}
		result.Total++
		live[node.ID] = true

		label, color := domain.StatusBadge(ent.DisplayStatus(resolve))

		indicator, ok := existing[node.ID]
		if !ok {
			creates = append(creates, domain.CanvasNode{
				ID:     domain.IndicatorID(node.ID),
				Type:   domain.NodeIndicator,
				X:      node.X,
				Y:      node.Y - indicatorHeight - indicatorSpacing,
				Width:  indicatorWidth,
				Height: indicatorHeight,
				Text:   label,
				Color:  color,
			})
			continue
		}
		if indicator.Text != label || indicator.Color != color {
			updates = append(updates, indicatorUpdate{id: indicator.ID, label: label, color: color})
		}
	}

	// Orphans: target node removed, or its file no longer an entity.
	for target, indicator := range existing {
		if !live[target] {
			removals = append(removals, indicator.ID)
		}
	}

	for _, u := range updates {
		if node := doc.NodeByID(u.id); node != nil {
			node.Text = u.label
			node.Color = u.color
			result.Updated++
		}
	}
	for _, id := range removals {
		if doc.RemoveNode(id) {
			result.Removed++
		}
	}
	for _, node := range creates {
		doc.AddNode(node)
		result.Created++
	}

	if result.Created > 0 || result.Updated > 0 || result.Removed > 0 {
		if err := c.canvas.Save(c.CanvasPath, doc); err != nil {
			return nil, fmt.Errorf("failed to save canvas: %w", err)
		}
	}

	return result, nil
}
