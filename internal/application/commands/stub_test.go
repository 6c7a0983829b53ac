package commands

import (
	"fmt"

	"planvault/internal/application"
	"planvault/internal/domain"
)

// stubRepo is an in-memory EntityRepository for command tests.
type stubRepo struct {
	entities map[string]*domain.Entity
	saveErr  map[string]error // per-id injected save failures
	saves    []string
}

func newStubRepo(entities ...*domain.Entity) *stubRepo {
	r := &stubRepo{
		entities: make(map[string]*domain.Entity),
		saveErr:  make(map[string]error),
	}
	for _, e := range entities {
		r.entities[e.ID] = e
	}
	return r
}

func (r *stubRepo) Load(id string) (*domain.Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return nil, &application.NotFoundError{Kind: "entity", ID: id}
	}
	return e, nil
}

func (r *stubRepo) Save(e *domain.Entity) error {
	if err := r.saveErr[e.ID]; err != nil {
		return err
	}
	r.entities[e.ID] = e
	r.saves = append(r.saves, e.ID)
	return nil
}

func (r *stubRepo) ListAll() ([]*domain.Entity, error) {
	var all []*domain.Entity
	for _, e := range r.entities {
		all = append(all, e)
	}
	domain.SortEntities(all)
	return all, nil
}

func (r *stubRepo) ChildrenOf(e *domain.Entity) ([]*domain.Entity, error) {
	var children []*domain.Entity
	for _, child := range r.entities {
		if child.Parent == e.ID {
			children = append(children, child)
		}
	}
	domain.SortEntities(children)
	return children, nil
}

// stubCanvas is an in-memory CanvasStore for command tests.
type stubCanvas struct {
	docs    map[string]*domain.Canvas
	loadErr error
	saveErr error
	saves   int
}

func newStubCanvas(path string, doc *domain.Canvas) *stubCanvas {
	return &stubCanvas{docs: map[string]*domain.Canvas{path: doc}}
}

func (s *stubCanvas) Load(path string) (*domain.Canvas, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("no canvas at %s", path)
	}
	return doc, nil
}

func (s *stubCanvas) Save(path string, c *domain.Canvas) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[path] = c
	s.saves++
	return nil
}

func entity(id, title string, status domain.Status) *domain.Entity {
	typ := domain.ParseEntityType(id)
	return &domain.Entity{
		ID:     id,
		Type:   typ,
		Title:  title,
		Status: status,
		Path:   typ.Folder() + "/" + id + ".md",
	}
}

func fileNode(nodeID string, e *domain.Entity) domain.CanvasNode {
	return domain.CanvasNode{ID: nodeID, Type: domain.NodeFile, File: e.Path, Width: 400, Height: 120}
}
