package commands

import (
	"context"
	"fmt"
	"strings"

	"planvault/internal/domain"
	"planvault/internal/ports"
)

// BlockedEntity describes one blocked entity and why.
type BlockedEntity struct {
	ID       string
	Title    string
	Status   domain.Status
	Blockers []string // blocking dependency ids, depends_on order
	Reason   string   // human-readable summary
}

// BlockedReportCommand lists every entity whose dependencies make it
// blocked, distinguishing incomplete from missing dependencies in the
// reason text.
type BlockedReportCommand struct {
	repo ports.EntityRepository
}

// NewBlockedReportCommand creates a new BlockedReportCommand
func NewBlockedReportCommand(repo ports.EntityRepository) *BlockedReportCommand {
	return &BlockedReportCommand{repo: repo}
}

// Execute runs the report
func (c *BlockedReportCommand) Execute(ctx context.Context) ([]BlockedEntity, error) {
	entities, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	resolve := domain.ResolverFromSlice(entities)

	var blocked []BlockedEntity
	for _, e := range entities {
		blockers := e.Blockers(resolve)
		if len(blockers) == 0 {
			continue
		}

		var incomplete, missing []string
		for _, id := range blockers {
			if _, ok := resolve(id); ok {
				incomplete = append(incomplete, id)
			} else {
				missing = append(missing, id)
			}
		}

		var parts []string
		if len(incomplete) > 0 {
			parts = append(parts, "incomplete: "+strings.Join(incomplete, ", "))
		}
		if len(missing) > 0 {
			parts = append(parts, "missing: "+strings.Join(missing, ", "))
		}

		blocked = append(blocked, BlockedEntity{
			ID:       e.ID,
			Title:    e.Title,
			Status:   e.Status,
			Blockers: blockers,
			Reason:   strings.Join(parts, "; "),
		})
	}

	return blocked, nil
}
