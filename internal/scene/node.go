package scene

import "spatial-preview/internal/gpu"

// Kind is the role of a Node in the tree.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLight
)

// Node is one element of the scene tree. A node has at most one parent; adding it to another
// parent detaches it from the previous one.
type Node struct {
	Name      string
	Kind      Kind
	Transform gpu.Transform
	Visible   bool

	// Mesh and Material are set for KindMesh nodes. They are not owned by the node; the Context
	// that allocated them releases them.
	Mesh     gpu.Mesh
	Material gpu.Material
	// Light is set for KindLight nodes.
	Light gpu.Light

	parent   *Node
	children []*Node
}

// NewGroup returns an empty, visible group node.
func NewGroup(name string) *Node {
	return &Node{Name: name, Kind: KindGroup, Transform: gpu.Identity(), Visible: true}
}

// NewMesh returns a visible mesh node drawing mesh with mat.
func NewMesh(name string, mesh gpu.Mesh, mat gpu.Material) *Node {
	return &Node{Name: name, Kind: KindMesh, Transform: gpu.Identity(), Visible: true, Mesh: mesh, Material: mat}
}

// NewLight returns a light node.
func NewLight(name string, l gpu.Light) *Node {
	return &Node{Name: name, Kind: KindLight, Transform: gpu.Identity(), Visible: true, Light: l}
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z float32) {
	n.Transform.Position = [3]float32{x, y, z}
}

// AddChild appends child, detaching it from its current parent first.
// Panics on a nil child or when the add would create a cycle.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child. Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChild(child)
	child.parent = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestor reports whether a is n or one of n's ancestors.
func isAncestor(a, n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Count returns how many nodes of kind k are in the subtree rooted at n.
func (n *Node) Count(k Kind) int {
	total := 0
	n.Walk(func(c *Node) bool {
		if c.Kind == k {
			total++
		}
		return true
	})
	return total
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
