package domain

import "testing"

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		id   string
		want EntityType
	}{
		{"M-001", TypeMilestone},
		{"S-014", TypeStory},
		{"T-103", TypeTask},
		{"X-001", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		if got := ParseEntityType(tt.id); got != tt.want {
			t.Errorf("ParseEntityType(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIsBlocked(t *testing.T) {
	done := task("T-001", StatusCompleted)
	open := task("T-002", StatusInProgress)

	tests := []struct {
		name     string
		deps     []string
		universe []*Entity
		want     bool
	}{
		{"no dependencies", nil, []*Entity{done, open}, false},
		{"all complete", []string{"T-001"}, []*Entity{done, open}, false},
		{"incomplete dependency", []string{"T-001", "T-002"}, []*Entity{done, open}, true},
		{"unresolved id blocks", []string{"T-999"}, []*Entity{done, open}, true},
		{"unresolved id blocks even without edges", []string{"T-999"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := task("T-100", StatusNotStarted)
			e.DependsOn = tt.deps
			if got := e.IsBlocked(ResolverFromSlice(tt.universe)); got != tt.want {
				t.Errorf("IsBlocked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayStatus_BlockedPrecedence(t *testing.T) {
	open := task("T-002", StatusInProgress)
	resolve := ResolverFromSlice([]*Entity{open})

	e := task("T-100", StatusInProgress)
	e.DependsOn = []string{"T-002"}
	if got := e.DisplayStatus(resolve); got != StatusBlocked {
		t.Errorf("DisplayStatus = %q, want %q", got, StatusBlocked)
	}

	e.DependsOn = nil
	if got := e.DisplayStatus(resolve); got != StatusInProgress {
		t.Errorf("DisplayStatus = %q, want %q", got, StatusInProgress)
	}
}

func TestBlockers(t *testing.T) {
	done := task("T-001", StatusCompleted)
	open := task("T-002", StatusInProgress)
	resolve := ResolverFromSlice([]*Entity{done, open})

	e := task("T-100", StatusNotStarted)
	e.DependsOn = []string{"T-001", "T-002", "T-999"}

	blockers := e.Blockers(resolve)
	want := []string{"T-002", "T-999"}
	if len(blockers) != len(want) {
		t.Fatalf("Blockers = %v, want %v", blockers, want)
	}
	for i := range want {
		if blockers[i] != want[i] {
			t.Errorf("Blockers = %v, want %v", blockers, want)
		}
	}
}

func TestAddDependency(t *testing.T) {
	e := task("T-100", StatusNotStarted)

	if err := e.AddDependency("T-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.AddDependency("T-001"); err == nil {
		t.Error("expected duplicate dependency to be rejected")
	}
	if err := e.AddDependency("T-100"); err == nil {
		t.Error("expected self-reference to be rejected")
	}
	if len(e.DependsOn) != 1 {
		t.Errorf("DependsOn = %v, want a single entry", e.DependsOn)
	}
}

func TestRemoveDependency(t *testing.T) {
	e := task("T-100", StatusNotStarted)
	e.DependsOn = []string{"T-001", "T-002"}

	if !e.RemoveDependency("T-001") {
		t.Error("expected removal of present id to report true")
	}
	if e.RemoveDependency("T-001") {
		t.Error("expected removal of absent id to report false")
	}
	if len(e.DependsOn) != 1 || e.DependsOn[0] != "T-002" {
		t.Errorf("DependsOn = %v, want [T-002]", e.DependsOn)
	}
}
