package frontmatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"planvault/internal/domain"
)

const sample = `---
id: T-001
title: Wire auth middleware
status: In Progress
parent: S-001
depends_on:
    - T-002
    - T-003
canvas: Plan.canvas
created: 2026-01-05T10:00:00Z
updated: 2026-01-06T11:30:00Z
archived: false
---
## Notes

Middleware must run before the session check.
`

func TestParse(t *testing.T) {
	e, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.ID != "T-001" || e.Type != domain.TypeTask {
		t.Errorf("id/type = %q/%q", e.ID, e.Type)
	}
	if e.Status != domain.StatusInProgress {
		t.Errorf("status = %q", e.Status)
	}
	if e.Parent != "S-001" {
		t.Errorf("parent = %q", e.Parent)
	}
	if len(e.DependsOn) != 2 || e.DependsOn[0] != "T-002" || e.DependsOn[1] != "T-003" {
		t.Errorf("depends_on = %v", e.DependsOn)
	}
	if e.Canvas != "Plan.canvas" {
		t.Errorf("canvas = %q", e.Canvas)
	}
	if e.Created.IsZero() || e.Created.Hour() != 10 {
		t.Errorf("created = %v", e.Created)
	}
	if !strings.Contains(e.Body, "session check") {
		t.Errorf("body = %q", e.Body)
	}
}

func TestParse_NotAnEntity(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "# Just a note\n"},
		{"unterminated block", "---\nid: T-001\n"},
		{"frontmatter without id", "---\ntitle: loose note\n---\nbody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if !errors.Is(err, ErrNoFrontmatter) {
				t.Errorf("error = %v, want ErrNoFrontmatter", err)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown prefix", "---\nid: X-001\n---\nbody", "unknown entity ID prefix"},
		{"unknown status", "---\nid: T-001\nstatus: Paused\n---\nbody", "unknown status"},
		{"bad timestamp", "---\nid: T-001\ncreated: yesterday\n---\nbody", "invalid created timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestParse_EmptyStatusDefaultsToNotStarted(t *testing.T) {
	e, err := Parse([]byte("---\nid: T-001\ntitle: bare\n---\nbody"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Status != domain.StatusNotStarted {
		t.Errorf("status = %q, want %q", e.Status, domain.StatusNotStarted)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	original := &domain.Entity{
		ID:        "S-007",
		Type:      domain.TypeStory,
		Title:     "Checkout flow",
		Status:    domain.StatusBlocked,
		DependsOn: []string{"S-002"},
		Parent:    "M-001",
		Created:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		Updated:   time.Date(2026, 2, 3, 16, 45, 0, 0, time.UTC),
		Canvas:    "Plan.canvas",
		Body:      "Payment provider pending.\n",
	}

	content, err := Serialize(original)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	parsed, err := Parse(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if parsed.ID != original.ID || parsed.Status != original.Status || parsed.Parent != original.Parent {
		t.Errorf("round trip mismatch: %+v", parsed)
	}
	if len(parsed.DependsOn) != 1 || parsed.DependsOn[0] != "S-002" {
		t.Errorf("depends_on = %v", parsed.DependsOn)
	}
	if !parsed.Updated.Equal(original.Updated) {
		t.Errorf("updated = %v, want %v", parsed.Updated, original.Updated)
	}
	if parsed.Body != original.Body {
		t.Errorf("body = %q", parsed.Body)
	}
}
