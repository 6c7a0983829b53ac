package commands

import (
	"context"
	"errors"
	"testing"

	"planvault/internal/domain"
)

const testCanvas = "Plan.canvas"

func TestSyncDependencies_ComputesFromEdges(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	b := entity("T-002", "B", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	repo := newStubRepo(a, b, x)

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{fileNode("na", a), fileNode("nb", b), fileNode("nx", x)},
		Edges: []domain.CanvasEdge{
			{ID: "e1", FromNode: "na", ToNode: "nx"},
			{ID: "e2", FromNode: "nb", ToNode: "nx"},
		},
	}
	store := newStubCanvas(testCanvas, doc)

	result, err := NewSyncDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "T-100" {
		t.Errorf("Updated = %v", result.Updated)
	}
	if len(x.DependsOn) != 2 || x.DependsOn[0] != "T-001" || x.DependsOn[1] != "T-002" {
		t.Errorf("DependsOn = %v", x.DependsOn)
	}
	if x.Updated.IsZero() {
		t.Error("updated timestamp not bumped")
	}
}

func TestSyncDependencies_DuplicateNodesForOneFileUseFirst(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	repo := newStubRepo(a, x)

	// Two nodes embed the same entity file; edges arrive at the first.
	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{
			fileNode("na", a),
			fileNode("nx1", x),
			fileNode("nx2", x),
		},
		Edges: []domain.CanvasEdge{{ID: "e1", FromNode: "na", ToNode: "nx1"}},
	}
	store := newStubCanvas(testCanvas, doc)

	result, err := NewSyncDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "T-100" {
		t.Errorf("Updated = %v", result.Updated)
	}
	if len(x.DependsOn) != 1 || x.DependsOn[0] != "T-001" {
		t.Errorf("DependsOn = %v, want edge into the first node to count", x.DependsOn)
	}
}

func TestSyncDependencies_RoundTripLeavesMatchingSetUntouched(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	b := entity("T-002", "B", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	x.DependsOn = []string{"T-001", "T-002"}
	repo := newStubRepo(a, b, x)

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{fileNode("na", a), fileNode("nb", b), fileNode("nx", x)},
		Edges: []domain.CanvasEdge{
			{ID: "e1", FromNode: "na", ToNode: "nx"},
			{ID: "e2", FromNode: "nb", ToNode: "nx"},
		},
	}

	result, err := NewSyncDependenciesCommand(repo, newStubCanvas(testCanvas, doc), testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Updated) != 0 {
		t.Errorf("Updated = %v, want none", result.Updated)
	}
	if len(repo.saves) != 0 {
		t.Errorf("saves = %v, want none (idempotence)", repo.saves)
	}
	if len(x.DependsOn) != 2 {
		t.Errorf("DependsOn = %v", x.DependsOn)
	}
}

func TestSyncDependencies_SecondRunIsNoop(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	repo := newStubRepo(a, x)

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{fileNode("na", a), fileNode("nx", x)},
		Edges: []domain.CanvasEdge{{ID: "e1", FromNode: "na", ToNode: "nx"}},
	}
	store := newStubCanvas(testCanvas, doc)

	first, err := NewSyncDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil || len(first.Updated) != 1 {
		t.Fatalf("first run: %v %v", first, err)
	}

	second, err := NewSyncDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Updated) != 0 {
		t.Errorf("second run Updated = %v, want none", second.Updated)
	}
}

func TestSyncDependencies_DanglingEdgeContributesNothing(t *testing.T) {
	x := entity("T-100", "X", domain.StatusNotStarted)
	repo := newStubRepo(x)

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{
			fileNode("nx", x),
			{ID: "note", Type: domain.NodeText, Text: "remember"},
			{ID: "stray", Type: domain.NodeFile, File: "notes/unrelated.md"},
		},
		Edges: []domain.CanvasEdge{
			{ID: "e1", FromNode: "ghost", ToNode: "nx"},  // source node gone
			{ID: "e2", FromNode: "note", ToNode: "nx"},   // source not a file node
			{ID: "e3", FromNode: "stray", ToNode: "nx"},  // file is not an entity
		},
	}

	result, err := NewSyncDependenciesCommand(repo, newStubCanvas(testCanvas, doc), testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Updated) != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want clean no-op", result)
	}
	if len(x.DependsOn) != 0 {
		t.Errorf("DependsOn = %v, want empty", x.DependsOn)
	}
}

func TestSyncDependencies_EntityWithoutNodeSkipped(t *testing.T) {
	x := entity("T-100", "X", domain.StatusNotStarted)
	repo := newStubRepo(x)

	result, err := NewSyncDependenciesCommand(repo, newStubCanvas(testCanvas, &domain.Canvas{}), testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestSyncDependencies_PerEntityErrorsDoNotAbortBatch(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	y := entity("T-200", "Y", domain.StatusNotStarted)
	repo := newStubRepo(a, x, y)
	repo.saveErr["T-100"] = errors.New("disk full")

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{fileNode("na", a), fileNode("nx", x), fileNode("ny", y)},
		Edges: []domain.CanvasEdge{
			{ID: "e1", FromNode: "na", ToNode: "nx"},
			{ID: "e2", FromNode: "na", ToNode: "ny"},
		},
	}

	result, err := NewSyncDependenciesCommand(repo, newStubCanvas(testCanvas, doc), testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("batch must not abort: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "T-200" {
		t.Errorf("Updated = %v, want [T-200]", result.Updated)
	}
	if result.Err() == nil {
		t.Error("Err() must report the failed batch")
	}
}

func TestSyncDependencies_CanvasLoadFailureIsFatal(t *testing.T) {
	store := newStubCanvas(testCanvas, &domain.Canvas{})
	store.loadErr = errors.New("corrupt json")

	_, err := NewSyncDependenciesCommand(newStubRepo(), store, testCanvas).Execute(context.Background())
	if err == nil {
		t.Fatal("expected fatal error")
	}
}

func TestPushDependencies(t *testing.T) {
	a := entity("T-001", "A", domain.StatusCompleted)
	b := entity("T-002", "B", domain.StatusCompleted)
	x := entity("T-100", "X", domain.StatusNotStarted)
	x.DependsOn = []string{"T-001", "T-002", "T-404"} // T-404 has no node
	repo := newStubRepo(a, b, x)

	doc := &domain.Canvas{
		Nodes: []domain.CanvasNode{
			fileNode("na", a), fileNode("nb", b), fileNode("nx", x),
			{ID: "note", Type: domain.NodeText, Text: "context"},
		},
		Edges: []domain.CanvasEdge{
			{ID: "e1", FromNode: "na", ToNode: "nx"},   // already recorded
			{ID: "e2", FromNode: "nb", ToNode: "na"},   // stale: A does not depend on B
			{ID: "e3", FromNode: "note", ToNode: "nx"}, // foreign edge, untouched
		},
	}
	store := newStubCanvas(testCanvas, doc)

	result, err := NewPushDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EdgesAdded != 1 {
		t.Errorf("EdgesAdded = %d, want 1 (nb -> nx)", result.EdgesAdded)
	}
	if result.EdgesRemoved != 1 {
		t.Errorf("EdgesRemoved = %d, want 1 (stale nb -> na)", result.EdgesRemoved)
	}
	if !doc.HasEdge("nb", "nx") {
		t.Error("missing created edge nb -> nx")
	}
	if doc.HasEdge("nb", "na") {
		t.Error("stale edge not removed")
	}
	if !doc.HasEdge("note", "nx") {
		t.Error("foreign edge must be left alone")
	}
	if store.saves != 1 {
		t.Errorf("canvas saves = %d, want 1", store.saves)
	}

	// Second run: nothing left to do, no save.
	again, err := NewPushDependenciesCommand(repo, store, testCanvas).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if again.EdgesAdded != 0 || again.EdgesRemoved != 0 {
		t.Errorf("second run = %+v, want no-op", again)
	}
	if store.saves != 1 {
		t.Errorf("canvas saved again on no-op run")
	}
}
