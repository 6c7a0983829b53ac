// Package frontmatter parses and serializes the markdown-with-YAML
// format entity files are stored in.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"planvault/internal/domain"
)

// ErrNoFrontmatter marks a markdown file without a frontmatter block
// or without an entity id. Such files are plain notes, not entities.
var ErrNoFrontmatter = errors.New("no entity frontmatter")

var (
	openDelim  = []byte("---\n")
	closeDelim = []byte("\n---\n")
)

// fields is the on-disk frontmatter schema.
type fields struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Status    string   `yaml:"status"`
	Parent    string   `yaml:"parent,omitempty"`
	DependsOn []string `yaml:"depends_on"`
	Canvas    string   `yaml:"canvas,omitempty"`
	Created   string   `yaml:"created,omitempty"`
	Updated   string   `yaml:"updated,omitempty"`
	Archived  bool     `yaml:"archived"`
}

// Parse reads an entity from markdown content. The body below the
// frontmatter is preserved verbatim on the returned entity.
func Parse(content []byte) (*domain.Entity, error) {
	if !bytes.HasPrefix(content, openDelim) {
		return nil, ErrNoFrontmatter
	}

	rest := content[len(openDelim):]
	end := bytes.Index(rest, closeDelim)
	if end < 0 {
		return nil, ErrNoFrontmatter
	}

	var f fields
	if err := yaml.Unmarshal(rest[:end], &f); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if f.ID == "" {
		return nil, ErrNoFrontmatter
	}

	typ := domain.ParseEntityType(f.ID)
	if typ == domain.TypeUnknown {
		return nil, fmt.Errorf("unknown entity ID prefix: %s", f.ID)
	}

	status := domain.Status(f.Status)
	if f.Status == "" {
		status = domain.StatusNotStarted
	} else if !status.IsValid() {
		return nil, fmt.Errorf("%s: unknown status %q", f.ID, f.Status)
	}

	created, err := parseTime(f.Created)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid created timestamp: %w", f.ID, err)
	}
	updated, err := parseTime(f.Updated)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid updated timestamp: %w", f.ID, err)
	}

	return &domain.Entity{
		ID:        f.ID,
		Type:      typ,
		Title:     f.Title,
		Status:    status,
		Archived:  f.Archived,
		DependsOn: f.DependsOn,
		Parent:    f.Parent,
		Created:   created,
		Updated:   updated,
		Canvas:    f.Canvas,
		Body:      string(rest[end+len(closeDelim):]),
	}, nil
}

// Serialize writes the entity back to markdown, frontmatter first,
// body unchanged.
func Serialize(e *domain.Entity) ([]byte, error) {
	f := fields{
		ID:        e.ID,
		Title:     e.Title,
		Status:    string(e.Status),
		Parent:    e.Parent,
		DependsOn: e.DependsOn,
		Canvas:    e.Canvas,
		Created:   formatTime(e.Created),
		Updated:   formatTime(e.Updated),
		Archived:  e.Archived,
	}

	encoded, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n")
	buf.WriteString(e.Body)
	return buf.Bytes(), nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
