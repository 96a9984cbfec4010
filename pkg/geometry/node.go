package geometry

import "fmt"

// NodeKind discriminates leaves from groups.
type NodeKind int

const (
	// NodeItem is a leaf holding one item.
	NodeItem NodeKind = iota
	// NodeHorizontal lays its children out left to right.
	NodeHorizontal
	// NodeVertical lays its children out top to bottom.
	NodeVertical
)

var nodeKindNames = [...]string{"item", "horizontal", "vertical"}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("node(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	for i, n := range nodeKindNames {
		if n == string(text) {
			*k = NodeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// Node is a leaf item or a group of nodes.
//
// For groups, Spacing is the fixed gap between consecutive children along
// the group's direction. Leaves carry the slot key of the item they hold.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Key      string   `json:"key,omitempty"`
	Size     Size     `json:"size"`
	Spacing  float64  `json:"spacing,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

func leaf(key string, size Size) *Node {
	return &Node{Kind: NodeItem, Key: key, Size: size}
}

func group(kind NodeKind, size Size, spacing float64, children []*Node) *Node {
	return &Node{Kind: kind, Size: size, Spacing: spacing, Children: children}
}

// IsLeaf reports whether n holds an item.
func (n *Node) IsLeaf() bool { return n.Kind == NodeItem }

// Walk calls fn for n and its descendants in depth-first order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node, int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Leaves returns the item nodes under n in layout order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ int) bool {
		if c.IsLeaf() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Keys returns the slot keys of the leaves under n.
func (n *Node) Keys() []string {
	leaves := n.Leaves()
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.Key
	}
	return out
}

// Rows returns the leaf keys of each direct child of n: rows for flow and
// fixed-column sections, stacks or strips for the other styles. A leaf root
// is reported as a single row.
func Rows(n *Node) [][]string {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return [][]string{{n.Key}}
	}
	out := make([][]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Keys())
	}
	return out
}
