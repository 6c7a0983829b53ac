package domain

import "strings"

// NodeKind is the closed set of canvas node variants. Consumers switch
// on the kind exhaustively; an indicator is never treated as plain text.
type NodeKind string

const (
	NodeFile      NodeKind = "file"
	NodeText      NodeKind = "text"
	NodeGroup     NodeKind = "group"
	NodeIndicator NodeKind = "indicator"
)

// IsValid checks whether the kind is a known value.
func (k NodeKind) IsValid() bool {
	switch k {
	case NodeFile, NodeText, NodeGroup, NodeIndicator:
		return true
	}
	return false
}

// Canvas color palette values used for status badges.
const (
	ColorRed   = "1"
	ColorGreen = "4"
	ColorCyan  = "5"
)

// CanvasNode is one node of the canvas document.
type CanvasNode struct {
	ID     string   `json:"id"`
	Type   NodeKind `json:"type"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	File   string   `json:"file,omitempty"`
	Text   string   `json:"text,omitempty"`
	Color  string   `json:"color,omitempty"`
}

// CanvasEdge is a directed connection: the source blocks the target,
// i.e. the target depends on the source.
type CanvasEdge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
}

// Canvas is the node/edge diagram document.
type Canvas struct {
	Nodes []CanvasNode `json:"nodes"`
	Edges []CanvasEdge `json:"edges"`
}

// indicatorPrefix keys an indicator node to its target: the indicator's
// id is the target node id with this prefix. At most one indicator can
// therefore exist per target.
const indicatorPrefix = "status-"

// IndicatorID returns the indicator node id for a target node.
func IndicatorID(targetNodeID string) string {
	return indicatorPrefix + targetNodeID
}

// IndicatorTarget extracts the target node id from an indicator node id.
func IndicatorTarget(indicatorID string) (string, bool) {
	if !strings.HasPrefix(indicatorID, indicatorPrefix) {
		return "", false
	}
	return strings.TrimPrefix(indicatorID, indicatorPrefix), true
}

// NodeByID returns the node with the given id, or nil.
func (c *Canvas) NodeByID(id string) *CanvasNode {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i]
		}
	}
	return nil
}

// FileNodes returns all file-reference nodes.
func (c *Canvas) FileNodes() []*CanvasNode {
	var nodes []*CanvasNode
	for i := range c.Nodes {
		if c.Nodes[i].Type == NodeFile {
			nodes = append(nodes, &c.Nodes[i])
		}
	}
	return nodes
}

// Indicators returns all indicator nodes keyed by their target node id.
// Indicators whose id does not follow the target convention are skipped.
func (c *Canvas) Indicators() map[string]*CanvasNode {
	indicators := make(map[string]*CanvasNode)
	for i := range c.Nodes {
		if c.Nodes[i].Type != NodeIndicator {
			continue
		}
		target, ok := IndicatorTarget(c.Nodes[i].ID)
		if !ok {
			continue
		}
		indicators[target] = &c.Nodes[i]
	}
	return indicators
}

// EdgesInto returns the edges whose target is the given node,
// in document order.
func (c *Canvas) EdgesInto(nodeID string) []CanvasEdge {
	var edges []CanvasEdge
	for _, e := range c.Edges {
		if e.ToNode == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// HasEdge reports whether an edge from fromNode to toNode exists.
func (c *Canvas) HasEdge(fromNode, toNode string) bool {
	for _, e := range c.Edges {
		if e.FromNode == fromNode && e.ToNode == toNode {
			return true
		}
	}
	return false
}

// AddNode appends a node to the document.
func (c *Canvas) AddNode(n CanvasNode) {
	c.Nodes = append(c.Nodes, n)
}

// RemoveNode deletes the node with the given id. It reports whether
// a node was removed.
func (c *Canvas) RemoveNode(id string) bool {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			c.Nodes = append(c.Nodes[:i], c.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// AddEdge appends an edge to the document.
func (c *Canvas) AddEdge(e CanvasEdge) {
	c.Edges = append(c.Edges, e)
}

// RemoveEdge deletes the edge with the given id. It reports whether
// an edge was removed.
func (c *Canvas) RemoveEdge(id string) bool {
	for i := range c.Edges {
		if c.Edges[i].ID == id {
			c.Edges = append(c.Edges[:i], c.Edges[i+1:]...)
			return true
		}
	}
	return false
}

// StatusBadge returns the indicator label and canvas color for a status.
// Not Started renders as a neutral badge with no color.
func StatusBadge(s Status) (label, color string) {
	switch s {
	case StatusBlocked:
		return "Blocked", ColorRed
	case StatusCompleted:
		return "Completed", ColorGreen
	case StatusInProgress:
		return "In Progress", ColorCyan
	default:
		return "Not Started", ""
	}
}
