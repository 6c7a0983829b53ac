package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"planvault/internal/application"
	"planvault/internal/domain"
)

func TestTransitionCommand_Execute(t *testing.T) {
	repo := newStubRepo(entity("T-001", "Wire auth", domain.StatusNotStarted))

	cmd := NewTransitionCommand(repo, "T-001", domain.StatusInProgress)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.From != domain.StatusNotStarted || result.To != domain.StatusInProgress {
		t.Errorf("result = %+v", result)
	}

	saved := repo.entities["T-001"]
	if saved.Status != domain.StatusInProgress {
		t.Errorf("persisted status = %q", saved.Status)
	}
	if saved.Updated.IsZero() || time.Since(saved.Updated) > time.Minute {
		t.Errorf("updated timestamp not bumped: %v", saved.Updated)
	}
	if len(repo.saves) != 1 {
		t.Errorf("saves = %v, want one", repo.saves)
	}
}

func TestTransitionCommand_InvalidTransitionDoesNotSave(t *testing.T) {
	repo := newStubRepo(entity("T-001", "Wire auth", domain.StatusNotStarted))

	cmd := NewTransitionCommand(repo, "T-001", domain.StatusCompleted)
	_, err := cmd.Execute(context.Background())

	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidTransitionError", err)
	}
	if !strings.Contains(invalid.Reason, "Invalid transition") {
		t.Errorf("reason = %q", invalid.Reason)
	}
	if repo.entities["T-001"].Status != domain.StatusNotStarted {
		t.Error("status mutated on rejected transition")
	}
	if len(repo.saves) != 0 {
		t.Errorf("saves = %v, want none", repo.saves)
	}
}

func TestTransitionCommand_MilestoneGuardUsesChildren(t *testing.T) {
	m := entity("M-001", "Launch", domain.StatusInProgress)
	s1 := entity("S-001", "Backend", domain.StatusCompleted)
	s1.Parent = "M-001"
	s2 := entity("S-002", "Frontend", domain.StatusInProgress)
	s2.Parent = "M-001"
	repo := newStubRepo(m, s1, s2)

	_, err := NewTransitionCommand(repo, "M-001", domain.StatusCompleted).Execute(context.Background())
	if err == nil {
		t.Fatal("expected guard failure")
	}
	if !strings.Contains(err.Error(), "S-002") {
		t.Errorf("error = %v, want it to name the incomplete child", err)
	}

	// Completing the straggler unlocks the milestone.
	s2.Status = domain.StatusCompleted
	if _, err := NewTransitionCommand(repo, "M-001", domain.StatusCompleted).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransitionCommand_NotFound(t *testing.T) {
	repo := newStubRepo()

	_, err := NewTransitionCommand(repo, "T-404", domain.StatusInProgress).Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTransitionCommand_Validate(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		target domain.Status
		errMsg string
	}{
		{"missing id", "", domain.StatusInProgress, "entity ID is required"},
		{"bad prefix", "X-001", domain.StatusInProgress, "unknown entity ID prefix"},
		{"bad status", "T-001", domain.Status("Paused"), "unknown status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTransitionCommand(newStubRepo(), tt.id, tt.target)
			err := cmd.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestAvailableTransitions(t *testing.T) {
	repo := newStubRepo(entity("T-001", "Wire auth", domain.StatusInProgress))

	got, err := AvailableTransitions(repo, "T-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Status{domain.StatusCompleted, domain.StatusBlocked}
	if len(got) != len(want) {
		t.Fatalf("AvailableTransitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableTransitions = %v, want %v", got, want)
		}
	}
}

func TestDependencyCommands(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	b := entity("T-002", "B", domain.StatusNotStarted)
	repo := newStubRepo(a, b)

	if _, err := NewAddDependencyCommand(repo, "T-002", "T-001").Execute(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !b.DependsOnID("T-001") {
		t.Error("dependency not recorded")
	}

	// Missing target must not be recorded.
	_, err := NewAddDependencyCommand(repo, "T-002", "T-404").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	if _, err := NewRemoveDependencyCommand(repo, "T-002", "T-001").Execute(context.Background()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if b.DependsOnID("T-001") {
		t.Error("dependency not removed")
	}

	_, err = NewRemoveDependencyCommand(repo, "T-002", "T-001").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
