package geometry

import (
	"sort"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves hold exactly one shape (or none for an empty tree); internal
// nodes hold two children and the union of their boxes.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shape       Shape // Leaf payload, nil for internal nodes and the empty leaf
}

// IsLeaf reports whether the node has no children
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is read-only after construction and safe for concurrent Hit calls.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	// Sorting happens in place, so work on a private copy
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the tree over shapes
func buildBVH(shapes []Shape) *BVHNode {
	switch len(shapes) {
	case 0:
		return &BVHNode{}
	case 1:
		return newLeaf(shapes[0])
	case 2:
		left, right := newLeaf(shapes[0]), newLeaf(shapes[1])
		return &BVHNode{
			BoundingBox: left.BoundingBox.Union(right.BoundingBox),
			Left:        left,
			Right:       right,
		}
	}

	// Split along the longest axis of the range so neighbouring shapes share a subtree
	bounds := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		bounds = bounds.Union(shape.BoundingBox())
	}
	sortShapesByAxis(shapes, bounds.LongestAxis())

	mid := len(shapes) / 2
	left := buildBVH(shapes[:mid])
	right := buildBVH(shapes[mid:])

	return &BVHNode{
		BoundingBox: left.BoundingBox.Union(right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

func newLeaf(shape Shape) *BVHNode {
	return &BVHNode{BoundingBox: shape.BoundingBox(), Shape: shape}
}

// sortShapesByAxis orders shapes by the minimum of their bounding box along axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Axis(axis).Min < shapes[j].BoundingBox().Axis(axis).Min
	})
}

// Hit tests if a ray intersects any shape in the BVH and returns the nearest hit
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, rayT)
}

// hitNode recursively tests ray intersection with BVH nodes
func hitNode(node *BVHNode, ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if _, ok := node.BoundingBox.Hit(ray, rayT); !ok {
		return nil, false
	}

	if node.IsLeaf() {
		if node.Shape == nil {
			return nil, false
		}
		return node.Shape.Hit(ray, rayT)
	}

	leftHit, hitLeft := hitNode(node.Left, ray, rayT)

	// Only a strictly nearer hit may come from the right subtree
	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := hitNode(node.Right, ray, rightT); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats summarises the shape of a built tree
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	TotalShapes int
	MaxDepth    int
	AvgDepth    float64 // Mean depth of leaves
}

// Stats walks the tree and returns its statistics
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		if node.Shape != nil {
			stats.TotalShapes++
		}
		stats.AvgDepth += float64(depth) // Accumulated, divided by leaf count in Stats
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
