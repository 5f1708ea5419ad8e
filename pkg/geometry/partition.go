package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Flatten expands every group into its leaf objects, depth first. The
// returned leaves are fresh top-level copies with the enclosing group
// transforms baked in, so they render exactly as before. The input is not
// modified.
func Flatten(objects []*Object) []*Object {
	var leaves []*Object
	for _, o := range objects {
		if o == nil {
			continue
		}
		leaves = flattenInto(leaves, o, core.Identity(), core.Identity())
	}
	return leaves
}

// flattenInto appends the leaves below o. toWorld and fromWorld are the
// composed transforms of the groups above o.
func flattenInto(leaves []*Object, o *Object, toWorld, fromWorld core.Matrix) []*Object {
	toWorld = toWorld.Multiply(o.objectToWorld)
	fromWorld = o.worldToObject.Multiply(fromWorld)

	if g, ok := o.shape.(*Group); ok {
		for _, child := range g.children {
			leaves = flattenInto(leaves, child, toWorld, fromWorld)
		}
		return leaves
	}

	leaf := *o
	leaf.parent = nil
	leaf.objectToWorld = toWorld
	leaf.worldToObject = fromWorld
	return append(leaves, &leaf)
}

// BinaryPartition flattens objects and regroups the leaves into a nested
// group tree following an octree of the given depth over their combined
// bounds. Each leaf settles in the deepest cell that fully contains it.
// Leaves without finite bounds, such as planes, stay at the root.
func BinaryPartition(depth int, objects []*Object) (*Object, error) {
	for i, o := range objects {
		if o == nil {
			return nil, fmt.Errorf("object %d: %w", i, ErrNilObject)
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}

	leaves := Flatten(objects)

	bounds := core.EmptyBounds()
	for _, leaf := range leaves {
		if b := leaf.Bounds(); b.IsFinite() {
			bounds = bounds.Enclose(b)
		}
	}

	bmap := NewBoundingBoxMap(depth, bounds)
	for _, leaf := range leaves {
		bmap.Insert(leaf)
	}

	stats := bmap.Stats()
	core.ComponentLogger("partition").Debug("binary partition built",
		"objects", len(leaves),
		"depth", bmap.Depth(),
		"nodes", stats.Nodes,
		"occupied", stats.OccupiedNodes,
		"maxDepth", stats.MaxDepth,
	)

	return bmap.ToGroup()
}

// TreeNode is one cell of a BoundingBoxMap
type TreeNode struct {
	Bounds   core.Bounds
	Members  []*Object   // Objects contained here but by no child cell
	Children []*TreeNode // Eight octant cells, or nil at the bottom level
}

// IsLeaf reports whether the node has no child cells
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// BoundingBoxMap is a fixed-depth octree of cells used to group objects
// by location.
type BoundingBoxMap struct {
	root  *TreeNode
	depth int
}

// NewBoundingBoxMap subdivides bounds into a complete octree of the given
// depth. Empty or unbounded boxes cannot be split and get a single cell.
func NewBoundingBoxMap(depth int, bounds core.Bounds) *BoundingBoxMap {
	if depth < 0 || bounds.IsEmpty() || !bounds.IsFinite() {
		depth = 0
	}
	return &BoundingBoxMap{
		root:  buildTreeNode(bounds, depth),
		depth: depth,
	}
}

func buildTreeNode(bounds core.Bounds, remaining int) *TreeNode {
	node := &TreeNode{Bounds: bounds}
	if remaining == 0 {
		return node
	}
	cells := bounds.Octants()
	node.Children = make([]*TreeNode, len(cells))
	for i, cell := range cells {
		node.Children[i] = buildTreeNode(cell, remaining-1)
	}
	return node
}

// Root returns the top cell
func (m *BoundingBoxMap) Root() *TreeNode {
	return m.root
}

// Depth returns the number of subdivision levels below the root
func (m *BoundingBoxMap) Depth() int {
	return m.depth
}

// Insert places obj in the deepest cell that fully contains its bounds.
// Objects that fit no cell are kept at the root.
func (m *BoundingBoxMap) Insert(obj *Object) {
	b := obj.Bounds()
	node := m.root
	for {
		next := node.childContaining(b)
		if next == nil {
			break
		}
		node = next
	}
	node.Members = append(node.Members, obj)
}

// childContaining returns the first child cell that contains b
func (n *TreeNode) childContaining(b core.Bounds) *TreeNode {
	for _, child := range n.Children {
		if child.Bounds.Contains(b) {
			return child
		}
	}
	return nil
}

// ToGroup converts the populated tree into nested groups. Each cell becomes
// a group holding a group of its own members first, then the groups of its
// occupied child cells in octant order. Unoccupied cells are left out.
// The members are handed to the new groups, so the map is emptied.
func (m *BoundingBoxMap) ToGroup() (*Object, error) {
	g, err := nodeToGroup(m.root)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return NewGroup()
	}
	return g, nil
}

func nodeToGroup(node *TreeNode) (*Object, error) {
	var parts []*Object

	if len(node.Members) > 0 {
		members, err := NewGroup(node.Members...)
		if err != nil {
			return nil, err
		}
		node.Members = nil
		parts = append(parts, members)
	}

	for _, child := range node.Children {
		g, err := nodeToGroup(child)
		if err != nil {
			return nil, err
		}
		if g != nil {
			parts = append(parts, g)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}
	return NewGroup(parts...)
}

// PartitionStats summarizes a BoundingBoxMap
type PartitionStats struct {
	Nodes         int // Cells in the tree
	LeafNodes     int // Cells at the bottom level
	OccupiedNodes int // Cells holding at least one member
	Members       int // Objects held by all cells
	MaxDepth      int // Deepest level holding a member
}

// Stats walks the tree and collects occupancy statistics
func (m *BoundingBoxMap) Stats() PartitionStats {
	var stats PartitionStats
	collectStats(m.root, 0, &stats)
	return stats
}

func collectStats(node *TreeNode, depth int, stats *PartitionStats) {
	stats.Nodes++
	if node.IsLeaf() {
		stats.LeafNodes++
	}
	if n := len(node.Members); n > 0 {
		stats.OccupiedNodes++
		stats.Members += n
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}
	for _, child := range node.Children {
		collectStats(child, depth+1, stats)
	}
}
