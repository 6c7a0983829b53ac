package commands

import (
	"context"
	"fmt"

	"planvault/internal/application"
	"planvault/internal/domain"
	"planvault/internal/ports"
)

// childrenResolver bridges the repository to the lifecycle manager's
// injected children lookup.
func childrenResolver(repo ports.EntityRepository) domain.ChildrenResolver {
	return domain.ChildrenResolverFunc(func(e *domain.Entity) ([]*domain.Entity, error) {
		return repo.ChildrenOf(e)
	})
}

// TransitionResult contains the result of a status transition
type TransitionResult struct {
	ID      string
	From    domain.Status
	To      domain.Status
	Message string
}

// TransitionCommand moves an entity to a target status via the
// lifecycle rules and persists it.
type TransitionCommand struct {
	repo   ports.EntityRepository
	ID     string
	Target domain.Status
}

// NewTransitionCommand creates a new TransitionCommand
func NewTransitionCommand(repo ports.EntityRepository, id string, target domain.Status) *TransitionCommand {
	return &TransitionCommand{repo: repo, ID: id, Target: target}
}

// Validate checks the command arguments
func (c *TransitionCommand) Validate() error {
	if c.ID == "" {
		return &application.ValidationError{Field: "id", Message: "entity ID is required"}
	}
	if domain.ParseEntityType(c.ID) == domain.TypeUnknown {
		return &application.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("unknown entity ID prefix: %s", c.ID),
		}
	}
	if !c.Target.IsValid() {
		return &application.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("unknown status: %q", c.Target),
		}
	}
	return nil
}

// Execute runs the transition command
func (c *TransitionCommand) Execute(ctx context.Context) (*TransitionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ent, err := c.repo.Load(c.ID)
	if err != nil {
		return nil, err
	}

	manager := domain.NewLifecycleManager(childrenResolver(c.repo))
	applied, err := manager.Transition(ent, c.Target)
	if err != nil {
		return nil, err
	}

	ent.Touch()
	if err := c.repo.Save(ent); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", ent.ID, err)
	}

	return &TransitionResult{
		ID:      ent.ID,
		From:    applied.From,
		To:      applied.To,
		Message: fmt.Sprintf("%s: %s -> %s", ent.ID, applied.From, applied.To),
	}, nil
}

// AvailableTransitions returns the target statuses the entity may move
// to right now, for presentation layers.
func AvailableTransitions(repo ports.EntityRepository, id string) ([]domain.Status, error) {
	ent, err := repo.Load(id)
	if err != nil {
		return nil, err
	}
	manager := domain.NewLifecycleManager(childrenResolver(repo))
	return manager.AvailableTransitions(ent), nil
}
