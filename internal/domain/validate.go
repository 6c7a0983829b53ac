package domain

import "fmt"

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is one finding against an entity or the canvas.
type ValidationIssue struct {
	EntityID string
	Field    string
	Message  string
	Severity Severity
	Path     string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s [%s] %s", i.EntityID, i.Field, i.Message)
}

// expected parent type per child type
var parentTypes = map[EntityType]EntityType{
	TypeStory: TypeMilestone,
	TypeTask:  TypeStory,
}

// ValidateEntities checks relationship rules across a set of entities:
// ids must be unique across files, referenced ids must exist, parents
// must have the expected type, and depends_on must contain no
// self-reference or duplicate.
func ValidateEntities(entities []*Entity) []ValidationIssue {
	var issues []ValidationIssue
	issues = append(issues, validateUniqueIDs(entities)...)

	resolve := ResolverFromSlice(entities)
	for _, e := range entities {
		issues = append(issues, validateDependsOn(e, resolve)...)
		issues = append(issues, validateParent(e, resolve)...)
	}
	return issues
}

// validateUniqueIDs flags ids claimed by more than one file. The
// resolver keeps only one entity per id, so without this pass a
// duplicate would win silently.
func validateUniqueIDs(entities []*Entity) []ValidationIssue {
	var issues []ValidationIssue
	firstPath := make(map[string]string, len(entities))

	for _, e := range entities {
		prev, seen := firstPath[e.ID]
		if !seen {
			firstPath[e.ID] = e.Path
			continue
		}
		issues = append(issues, ValidationIssue{
			EntityID: e.ID,
			Field:    "id",
			Message:  fmt.Sprintf("duplicate entity id: also defined in %q", prev),
			Severity: SeverityError,
			Path:     e.Path,
		})
	}
	return issues
}

func validateDependsOn(e *Entity, resolve Resolver) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	for _, depID := range e.DependsOn {
		if depID == e.ID {
			issues = append(issues, ValidationIssue{
				EntityID: e.ID,
				Field:    "depends_on",
				Message:  "entity depends on itself",
				Severity: SeverityError,
				Path:     e.Path,
			})
			continue
		}
		if seen[depID] {
			issues = append(issues, ValidationIssue{
				EntityID: e.ID,
				Field:    "depends_on",
				Message:  fmt.Sprintf("duplicate dependency %q", depID),
				Severity: SeverityError,
				Path:     e.Path,
			})
			continue
		}
		seen[depID] = true

		if _, ok := resolve(depID); !ok {
			issues = append(issues, ValidationIssue{
				EntityID: e.ID,
				Field:    "depends_on",
				Message:  fmt.Sprintf("referenced entity %q not found", depID),
				Severity: SeverityError,
				Path:     e.Path,
			})
		}
	}
	return issues
}

func validateParent(e *Entity, resolve Resolver) []ValidationIssue {
	if e.Parent == "" {
		return nil
	}

	parent, ok := resolve(e.Parent)
	if !ok {
		return []ValidationIssue{{
			EntityID: e.ID,
			Field:    "parent",
			Message:  fmt.Sprintf("parent entity %q not found", e.Parent),
			Severity: SeverityError,
			Path:     e.Path,
		}}
	}

	expected, constrained := parentTypes[e.Type]
	if constrained && parent.Type != expected {
		return []ValidationIssue{{
			EntityID: e.ID,
			Field:    "parent",
			Message:  fmt.Sprintf("invalid parent type: expected %q, got %q", expected, parent.Type),
			Severity: SeverityError,
			Path:     e.Path,
		}}
	}
	return nil
}

// ValidateCanvas flags file nodes whose referenced path does not map to
// a known entity. Dangling references are warnings: the node may point
// at a plain note.
func ValidateCanvas(c *Canvas, entities []*Entity) []ValidationIssue {
	byPath := make(map[string]*Entity, len(entities))
	for _, e := range entities {
		byPath[e.Path] = e
	}

	var issues []ValidationIssue
	for _, node := range c.FileNodes() {
		if _, ok := byPath[node.File]; !ok {
			issues = append(issues, ValidationIssue{
				EntityID: node.ID,
				Field:    "canvas_node",
				Message:  fmt.Sprintf("file node references %q, which is not a known entity", node.File),
				Severity: SeverityWarning,
				Path:     node.File,
			})
		}
	}
	return issues
}

// CountBySeverity tallies issues by severity.
func CountBySeverity(issues []ValidationIssue) (errors, warnings int) {
	for _, i := range issues {
		switch i.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
