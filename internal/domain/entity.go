package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// EntityType classifies a work item in the planning vault.
type EntityType string

const (
	TypeMilestone EntityType = "milestone"
	TypeStory     EntityType = "story"
	TypeTask      EntityType = "task"
	TypeUnknown   EntityType = ""
)

// String returns the string representation of the entity type.
func (t EntityType) String() string {
	return string(t)
}

// IsValid checks whether the type is a known value.
func (t EntityType) IsValid() bool {
	switch t {
	case TypeMilestone, TypeStory, TypeTask:
		return true
	}
	return false
}

// Folder returns the vault folder that holds entities of this type.
func (t EntityType) Folder() string {
	switch t {
	case TypeMilestone:
		return "milestones"
	case TypeStory:
		return "stories"
	case TypeTask:
		return "tasks"
	}
	return ""
}

// EntityFolders lists the vault folders scanned for entities.
var EntityFolders = []string{"milestones", "stories", "tasks"}

// Id prefixes, e.g. M-001, S-014, T-103.
var typePrefixes = []struct {
	prefix string
	typ    EntityType
}{
	{"M-", TypeMilestone},
	{"S-", TypeStory},
	{"T-", TypeTask},
}

// ParseEntityType determines the entity type from an id prefix.
func ParseEntityType(id string) EntityType {
	for _, p := range typePrefixes {
		if strings.HasPrefix(id, p.prefix) {
			return p.typ
		}
	}
	return TypeUnknown
}

// Status represents the recorded state of an entity.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusBlocked    Status = "Blocked"
)

// AllStatuses lists every status in canonical order.
var AllStatuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Entity is a milestone, story, or task stored as a markdown file
// with YAML frontmatter.
type Entity struct {
	ID        string
	Type      EntityType
	Title     string
	Status    Status
	Archived  bool
	DependsOn []string  // ordered dependency ids
	Parent    string    // story id for tasks, milestone id for stories
	Created   time.Time
	Updated   time.Time
	Canvas    string // canvas file the entity is anchored to
	Path      string // vault-relative path of the markdown file
	Body      string // markdown body below the frontmatter, preserved on save
}

// Touch bumps the updated timestamp.
func (e *Entity) Touch() {
	e.Updated = time.Now().UTC().Truncate(time.Second)
}

// DependsOnID reports whether id is in the entity's dependency list.
func (e *Entity) DependsOnID(id string) bool {
	for _, dep := range e.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// AddDependency appends id to depends_on, rejecting self-references
// and duplicates.
func (e *Entity) AddDependency(id string) error {
	if id == e.ID {
		return fmt.Errorf("%s cannot depend on itself", e.ID)
	}
	if e.DependsOnID(id) {
		return fmt.Errorf("%s already depends on %s", e.ID, id)
	}
	e.DependsOn = append(e.DependsOn, id)
	return nil
}

// RemoveDependency deletes id from depends_on. It reports whether
// the id was present.
func (e *Entity) RemoveDependency(id string) bool {
	for i, dep := range e.DependsOn {
		if dep == id {
			e.DependsOn = append(e.DependsOn[:i], e.DependsOn[i+1:]...)
			return true
		}
	}
	return false
}

// Resolver looks up an entity by id. The second return reports
// whether the id resolved to a known entity.
type Resolver func(id string) (*Entity, bool)

// ResolverFromSlice builds a Resolver over a fixed entity set.
func ResolverFromSlice(entities []*Entity) Resolver {
	byID := make(map[string]*Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	return func(id string) (*Entity, bool) {
		e, ok := byID[id]
		return e, ok
	}
}

// IsBlocked reports whether any dependency is incomplete or does not
// resolve to a known entity. An unresolved id always blocks.
func (e *Entity) IsBlocked(resolve Resolver) bool {
	for _, depID := range e.DependsOn {
		dep, ok := resolve(depID)
		if !ok || dep.Status != StatusCompleted {
			return true
		}
	}
	return false
}

// Blockers returns the dependency ids currently blocking the entity,
// in depends_on order.
func (e *Entity) Blockers(resolve Resolver) []string {
	var blockers []string
	for _, depID := range e.DependsOn {
		dep, ok := resolve(depID)
		if !ok || dep.Status != StatusCompleted {
			blockers = append(blockers, depID)
		}
	}
	return blockers
}

// DisplayStatus is the status an indicator should show: Blocked takes
// precedence over the recorded status whenever a blocker exists.
func (e *Entity) DisplayStatus(resolve Resolver) Status {
	if e.IsBlocked(resolve) {
		return StatusBlocked
	}
	return e.Status
}

// SortEntities orders entities by id in ascending order.
func SortEntities(entities []*Entity) {
	slices.SortFunc(entities, func(a, b *Entity) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
