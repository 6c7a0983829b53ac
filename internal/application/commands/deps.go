package commands

import (
	"context"
	"fmt"

	"planvault/internal/application"
	"planvault/internal/ports"
)

// DependencyResult contains the result of a dependency edit
type DependencyResult struct {
	ID      string
	DepID   string
	Message string
}

// AddDependencyCommand records that one entity depends on another.
type AddDependencyCommand struct {
	repo  ports.EntityRepository
	ID    string
	DepID string
}

// NewAddDependencyCommand creates a new AddDependencyCommand
func NewAddDependencyCommand(repo ports.EntityRepository, id, depID string) *AddDependencyCommand {
	return &AddDependencyCommand{repo: repo, ID: id, DepID: depID}
}

// Validate checks the command arguments
func (c *AddDependencyCommand) Validate() error {
	if c.ID == "" || c.DepID == "" {
		return &application.ValidationError{Field: "id", Message: "both entity IDs are required"}
	}
	if c.ID == c.DepID {
		return &application.ValidationError{Field: "depends_on", Message: "an entity cannot depend on itself"}
	}
	return nil
}

// Execute runs the add dependency command
func (c *AddDependencyCommand) Execute(ctx context.Context) (*DependencyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ent, err := c.repo.Load(c.ID)
	if err != nil {
		return nil, err
	}
	// The dependency target must exist; a dangling id would make the
	// entity permanently blocked.
	if _, err := c.repo.Load(c.DepID); err != nil {
		return nil, &application.NotFoundError{Kind: "dependency", ID: c.DepID}
	}

	if err := ent.AddDependency(c.DepID); err != nil {
		return nil, &application.ValidationError{Field: "depends_on", Message: err.Error()}
	}

	ent.Touch()
	if err := c.repo.Save(ent); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", ent.ID, err)
	}

	return &DependencyResult{
		ID:      c.ID,
		DepID:   c.DepID,
		Message: fmt.Sprintf("%s now depends on %s", c.ID, c.DepID),
	}, nil
}

// RemoveDependencyCommand removes a recorded dependency.
type RemoveDependencyCommand struct {
	repo  ports.EntityRepository
	ID    string
	DepID string
}

// NewRemoveDependencyCommand creates a new RemoveDependencyCommand
func NewRemoveDependencyCommand(repo ports.EntityRepository, id, depID string) *RemoveDependencyCommand {
	return &RemoveDependencyCommand{repo: repo, ID: id, DepID: depID}
}

// Validate checks the command arguments
func (c *RemoveDependencyCommand) Validate() error {
	if c.ID == "" || c.DepID == "" {
		return &application.ValidationError{Field: "id", Message: "both entity IDs are required"}
	}
	return nil
}

// Execute runs the remove dependency command
func (c *RemoveDependencyCommand) Execute(ctx context.Context) (*DependencyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ent, err := c.repo.Load(c.ID)
	if err != nil {
		return nil, err
	}

	if !ent.RemoveDependency(c.DepID) {
		return nil, &application.NotFoundError{Kind: "dependency", ID: c.DepID}
	}

	ent.Touch()
	if err := c.repo.Save(ent); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", ent.ID, err)
	}

	return &DependencyResult{
		ID:      c.ID,
		DepID:   c.DepID,
		Message: fmt.Sprintf("%s no longer depends on %s", c.ID, c.DepID),
	}, nil
}
