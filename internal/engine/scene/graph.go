// Package scene composes per-frame world transforms for a parent-indexed node tree.
//
// Every node carries a Pose that is a pure function of elapsed time. A child's
// world transform is always its parent's world transform multiplied on the
// right by the child's local transform, so moving a parent carries its whole
// subtree rigidly while the children still animate in the parent's frame.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NoParent marks a root node.
const NoParent = -1

// MaxDepth is the deepest chain of nodes a graph accepts (a root has depth 1).
const MaxDepth = 16

var (
	ErrCycle         = errors.New("scene: cycle in node parents")
	ErrUnknownParent = errors.New("scene: unknown parent")
	ErrTooDeep       = errors.New("scene: node tree too deep")
	ErrDuplicateName = errors.New("scene: duplicate node name")
)

// Node is one entry of the tree.
type Node struct {
	Name   string
	Parent int
	Pose   Pose
}

// Graph holds nodes and the order in which they are composed.
type Graph struct {
	nodes []Node
	depth []int
	order []int
	index map[string]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// Build creates a graph from nodes given in any order. Parents are indices
// into nodes. The graph is validated before it is returned.
func Build(nodes []Node) (*Graph, error) {
	g := &Graph{
		nodes: append([]Node(nil), nodes...),
		index: make(map[string]int, len(nodes)),
	}
	for i, n := range g.nodes {
		if _, dup := g.index[n.Name]; dup && n.Name != "" {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n.Name)
		}
		if n.Name != "" {
			g.index[n.Name] = i
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Add appends a node whose parent must already be in the graph and returns its index.
func (g *Graph) Add(n Node) (int, error) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	if n.Name != "" {
		if _, dup := g.index[n.Name]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateName, n.Name)
		}
	}

	d := 1
	if n.Parent != NoParent {
		if n.Parent < 0 || n.Parent >= len(g.nodes) {
			return 0, fmt.Errorf("%w: node %q parent %d", ErrUnknownParent, n.Name, n.Parent)
		}
		d = g.depth[n.Parent] + 1
	}
	if d > MaxDepth {
		return 0, fmt.Errorf("%w: node %q at depth %d", ErrTooDeep, n.Name, d)
	}

	i := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.depth = append(g.depth, d)
	g.order = append(g.order, i)
	if n.Name != "" {
		g.index[n.Name] = i
	}
	return i, nil
}

// AddChild adds a node under the node called parent.
// An empty parent name adds a root.
func (g *Graph) AddChild(parent, name string, pose Pose) (int, error) {
	p := NoParent
	if parent != "" {
		var ok bool
		if p, ok = g.Lookup(parent); !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownParent, parent)
		}
	}
	return g.Add(Node{Name: name, Parent: p, Pose: pose})
}

// Validate checks parents, cycles and depth, and recomputes the composition
// order so that every parent precedes its children.
func (g *Graph) Validate() error {
	n := len(g.nodes)
	depth := make([]int, n)

	var walk func(i int, seen int) (int, error)
	walk = func(i int, seen int) (int, error) {
		if depth[i] > 0 {
			return depth[i], nil
		}
		if seen > n {
			return 0, fmt.Errorf("%w: at node %d (%q)", ErrCycle, i, g.nodes[i].Name)
		}
		p := g.nodes[i].Parent
		if p == NoParent {
			depth[i] = 1
			return 1, nil
		}
		if p < 0 || p >= n {
			return 0, fmt.Errorf("%w: node %q parent %d", ErrUnknownParent, g.nodes[i].Name, p)
		}
		if p == i {
			return 0, fmt.Errorf("%w: node %q is its own parent", ErrCycle, g.nodes[i].Name)
		}
		pd, err := walk(p, seen+1)
		if err != nil {
			return 0, err
		}
		depth[i] = pd + 1
		return depth[i], nil
	}

	for i := range g.nodes {
		d, err := walk(i, 0)
		if err != nil {
			return err
		}
		if d > MaxDepth {
			return fmt.Errorf("%w: node %q at depth %d", ErrTooDeep, g.nodes[i].Name, d)
		}
	}

	// Stable order by depth keeps insertion order among siblings.
	order := make([]int, 0, n)
	for d := 1; len(order) < n; d++ {
		for i := range g.nodes {
			if depth[i] == d {
				order = append(order, i)
			}
		}
	}

	g.depth = depth
	g.order = order
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns node i.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Lookup returns the index of the node called name.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Depth returns the depth of node i; roots have depth 1.
func (g *Graph) Depth(i int) int { return g.depth[i] }

// Compose writes every node's world transform at time t into out, indexed
// like the nodes, and returns it. out is grown when it is too short.
func (g *Graph) Compose(t float32, out []mgl32.Mat4) []mgl32.Mat4 {
	if cap(out) < len(g.nodes) {
		out = make([]mgl32.Mat4, len(g.nodes))
	}
	out = out[:len(g.nodes)]

	for _, i := range g.order {
		n := &g.nodes[i]
		local := n.Pose.Local(t)
		if n.Parent == NoParent {
			out[i] = local
		} else {
			out[i] = out[n.Parent].Mul4(local)
		}
	}
	return out
}

// IsAffine reports whether m keeps the bottom row (0, 0, 0, 1).
func IsAffine(m mgl32.Mat4) bool {
	return m[3] == 0 && m[7] == 0 && m[11] == 0 && m[15] == 1
}
