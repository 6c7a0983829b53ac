package domain

import (
	"fmt"
	"strings"
)

// ChildrenResolver supplies the children of an entity (tasks of a
// story, stories of a milestone). Injected so the lifecycle rules stay
// free of storage concerns.
type ChildrenResolver interface {
	ChildrenOf(e *Entity) ([]*Entity, error)
}

// ChildrenResolverFunc adapts a function to the ChildrenResolver interface.
type ChildrenResolverFunc func(e *Entity) ([]*Entity, error)

// ChildrenOf calls the wrapped function.
func (f ChildrenResolverFunc) ChildrenOf(e *Entity) ([]*Entity, error) {
	return f(e)
}

// guard identifies the condition attached to a transition table entry.
type guard int

const (
	guardNone guard = iota
	guardChildrenComplete
)

type transitionKey struct {
	typ  EntityType
	from Status
	to   Status
}

// transitionTable is the full set of legal transitions per entity type.
// Pairs not listed are disallowed.
var transitionTable = map[transitionKey]guard{
	{TypeMilestone, StatusNotStarted, StatusInProgress}: guardNone,
	{TypeMilestone, StatusInProgress, StatusCompleted}:  guardChildrenComplete,

	{TypeStory, StatusNotStarted, StatusInProgress}: guardNone,
	{TypeStory, StatusInProgress, StatusCompleted}:  guardNone,
	{TypeStory, StatusCompleted, StatusInProgress}:  guardNone,

	{TypeTask, StatusNotStarted, StatusInProgress}: guardNone,
	{TypeTask, StatusInProgress, StatusCompleted}:  guardNone,
	{TypeTask, StatusInProgress, StatusBlocked}:    guardNone,
	{TypeTask, StatusCompleted, StatusInProgress}:  guardNone,
	{TypeTask, StatusCompleted, StatusNotStarted}:  guardNone,
}

// InvalidTransitionError reports a rejected status transition with the
// reason the guard or table produced.
type InvalidTransitionError struct {
	ID     string
	From   Status
	To     Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition %q -> %q: %s", e.ID, e.From, e.To, e.Reason)
}

// Decision is the outcome of a transition check.
type Decision struct {
	Allowed bool
	Reason  string
}

// TransitionResult records the before/after pair of an applied transition.
type TransitionResult struct {
	From Status
	To   Status
}

// LifecycleManager is the single authority on status transitions.
// The zero value works; without a children resolver the
// children-complete guard passes vacuously.
type LifecycleManager struct {
	children ChildrenResolver
}

// NewLifecycleManager creates a manager with the given children
// resolver, which may be nil.
func NewLifecycleManager(children ChildrenResolver) *LifecycleManager {
	return &LifecycleManager{children: children}
}

// CanTransition evaluates the transition table for the entity's type.
func (m *LifecycleManager) CanTransition(e *Entity, target Status) Decision {
	g, ok := transitionTable[transitionKey{e.Type, e.Status, target}]
	if !ok {
		return Decision{Allowed: false, Reason: "Invalid transition"}
	}

	switch g {
	case guardChildrenComplete:
		return m.checkChildrenComplete(e)
	default:
		return Decision{Allowed: true}
	}
}

func (m *LifecycleManager) checkChildrenComplete(e *Entity) Decision {
	if m.children == nil {
		return Decision{Allowed: true}
	}

	children, err := m.children.ChildrenOf(e)
	if err != nil {
		return Decision{Allowed: false, Reason: fmt.Sprintf("cannot resolve children: %v", err)}
	}

	var incomplete []string
	for _, child := range children {
		if child.Status != StatusCompleted {
			incomplete = append(incomplete, child.ID)
		}
	}
	if len(incomplete) > 0 {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("incomplete children: %s", strings.Join(incomplete, ", ")),
		}
	}
	return Decision{Allowed: true}
}

// AvailableTransitions returns every target status the entity may move
// to right now, in canonical status order.
func (m *LifecycleManager) AvailableTransitions(e *Entity) []Status {
	var targets []Status
	for _, s := range AllStatuses {
		if m.CanTransition(e, s).Allowed {
			targets = append(targets, s)
		}
	}
	return targets
}

// Transition re-validates and applies the status change in place.
// It does not persist; that is the caller's job.
func (m *LifecycleManager) Transition(e *Entity, target Status) (*TransitionResult, error) {
	decision := m.CanTransition(e, target)
	if !decision.Allowed {
		return nil, &InvalidTransitionError{
			ID:     e.ID,
			From:   e.Status,
			To:     target,
			Reason: decision.Reason,
		}
	}

	result := &TransitionResult{From: e.Status, To: target}
	e.Status = target
	return result, nil
}
