package commands

import (
	"context"
	"fmt"

	"planvault/internal/domain"
	"planvault/internal/ports"
)

// ValidateVaultResult contains all findings of a validation run.
type ValidateVaultResult struct {
	Entities int
	Issues   []domain.ValidationIssue
	Errors   int
	Warnings int
}

// ValidateVaultCommand checks relationship rules across the whole
// vault and, when a canvas path is given, the canvas file nodes too.
type ValidateVaultCommand struct {
	repo       ports.EntityRepository
	canvas     ports.CanvasStore
	CanvasPath string // optional; empty skips the canvas check
}

// NewValidateVaultCommand creates a new ValidateVaultCommand
func NewValidateVaultCommand(repo ports.EntityRepository, canvas ports.CanvasStore, canvasPath string) *ValidateVaultCommand {
	return &ValidateVaultCommand{repo: repo, canvas: canvas, CanvasPath: canvasPath}
}

// Execute runs the validation
func (c *ValidateVaultCommand) Execute(ctx context.Context) (*ValidateVaultResult, error) {
	entities, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	issues := domain.ValidateEntities(entities)

	if c.CanvasPath != "" {
		doc, err := c.canvas.Load(c.CanvasPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load canvas: %w", err)
		}
		issues = append(issues, domain.ValidateCanvas(doc, entities)...)
	}

	errors, warnings := domain.CountBySeverity(issues)
	return &ValidateVaultResult{
		Entities: len(entities),
		Issues:   issues,
		Errors:   errors,
		Warnings: warnings,
	}, nil
}
