// seehuhn.de/go/visibility - 2D visibility polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package visibility

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// rayLength is the minimum length of the ray used for nearest-obstacle
// queries.  The sweep extends it for frames with a larger diameter.
const rayLength = 1e6

// nilNode marks a missing child in the node pool.
const nilNode = -1

// activeTree holds the obstacles currently crossed by the sweep ray.
// It is an unbalanced binary search tree, ordered by the distance of each
// obstacle from the origin, with ties broken by obstacle ID.  Nodes live in
// a slice and refer to each other by index; freed slots are reused.
//
// The tree only stores references to segments owned by the caller.
type activeTree struct {
	origin vec.Vec2
	reach  float64 // length of the query ray

	nodes []treeNode
	free  []int32
	root  int32
	size  int

	// dist caches the key of every segment currently in the tree, so that
	// remove can locate a node from the ID alone.
	dist map[int]float64
}

type treeNode struct {
	seg         *Segment
	dist        float64 // distance from the origin to seg
	left, right int32
}

// rayHit describes where the sweep ray meets an obstacle.
type rayHit struct {
	seg  *Segment
	pt   vec.Vec2
	dist float64
}

func newActiveTree(origin vec.Vec2, reach float64, capacity int) *activeTree {
	return &activeTree{
		origin: origin,
		reach:  max(reach, rayLength),
		nodes:  make([]treeNode, 0, capacity),
		root:   nilNode,
		dist:   make(map[int]float64, capacity),
	}
}

// Len returns the number of obstacles in the tree.
func (t *activeTree) Len() int {
	return t.size
}

// compareKey orders (d1, id1) against (d2, id2).  Distances within Epsilon
// of each other are considered equal and the IDs decide.
func compareKey(d1 float64, id1 int, d2 float64, id2 int) int {
	if math.Abs(d1-d2) < Epsilon {
		switch {
		case id1 < id2:
			return -1
		case id1 > id2:
			return 1
		default:
			return 0
		}
	}
	if d1 < d2 {
		return -1
	}
	return 1
}

func (t *activeTree) alloc(seg *Segment, d float64) int32 {
	n := treeNode{seg: seg, dist: d, left: nilNode, right: nilNode}
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (t *activeTree) release(idx int32) {
	t.nodes[idx] = treeNode{left: nilNode, right: nilNode}
	t.free = append(t.free, idx)
}

// Insert adds seg to the tree.  Inserting a segment whose ID is already
// present is a no-op.
func (t *activeTree) Insert(seg *Segment) {
	if _, ok := t.dist[seg.ID]; ok {
		return
	}
	d := PointToSegmentDistance(t.origin, seg.A, seg.B)
	t.dist[seg.ID] = d
	t.size++

	idx := t.alloc(seg, d)
	if t.root == nilNode {
		t.root = idx
		return
	}

	cur := t.root
	for {
		n := &t.nodes[cur]
		if compareKey(d, seg.ID, n.dist, n.seg.ID) < 0 {
			if n.left == nilNode {
				n.left = idx
				return
			}
			cur = n.left
		} else {
			if n.right == nilNode {
				n.right = idx
				return
			}
			cur = n.right
		}
	}
}

// Remove deletes the segment with the given ID from the tree and reports
// whether it was present.  A node with two children is replaced by its
// in-order successor.
func (t *activeTree) Remove(id int) bool {
	d, ok := t.dist[id]
	if !ok {
		return false
	}

	parent := int32(nilNode)
	cur := t.root
	for cur != nilNode {
		n := &t.nodes[cur]
		if n.seg.ID == id {
			break
		}
		parent = cur
		if compareKey(d, id, n.dist, n.seg.ID) > 0 {
			cur = n.right
		} else {
			cur = n.left
		}
	}
	if cur == nilNode {
		// The cached key always leads to the node; reaching this means
		// the tree order was corrupted.
		panic("visibility: active tree lost an obstacle")
	}

	delete(t.dist, id)
	t.size--

	n := &t.nodes[cur]
	if n.left != nilNode && n.right != nilNode {
		// splice out the successor and move its payload into cur
		succParent := cur
		succ := n.right
		for t.nodes[succ].left != nilNode {
			succParent = succ
			succ = t.nodes[succ].left
		}
		s := t.nodes[succ]
		if succParent == cur {
			t.nodes[succParent].right = s.right
		} else {
			t.nodes[succParent].left = s.right
		}
		n.seg = s.seg
		n.dist = s.dist
		t.release(succ)
		return true
	}

	child := n.left
	if child == nilNode {
		child = n.right
	}
	switch {
	case parent == nilNode:
		t.root = child
	case t.nodes[parent].left == cur:
		t.nodes[parent].left = child
	default:
		t.nodes[parent].right = child
	}
	t.release(cur)
	return true
}

// SearchByID returns the segment with the given ID, if present.
// This is a full traversal and does not use the tree order.
func (t *activeTree) SearchByID(id int) (*Segment, bool) {
	var found *Segment
	t.walk(t.root, func(n *treeNode) bool {
		if n.seg.ID == id {
			found = n.seg
			return false
		}
		return true
	})
	return found, found != nil
}

// walk visits the subtree rooted at idx in order, until yield returns false.
func (t *activeTree) walk(idx int32, yield func(*treeNode) bool) bool {
	if idx == nilNode {
		return true
	}
	n := &t.nodes[idx]
	return t.walk(n.left, yield) && yield(n) && t.walk(n.right, yield)
}

// NearestAlongRay returns the obstacle hit first by the ray leaving the
// origin at the given angle.  Hits within Epsilon of each other are
// resolved in favour of the smaller ID.  The second return value is false
// if the ray misses every obstacle in the tree.
func (t *activeTree) NearestAlongRay(angle float64) (rayHit, bool) {
	dir := vec.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	best := rayHit{dist: math.Inf(1)}
	t.nearest(t.root, dir, &best)
	return best, best.seg != nil
}

func (t *activeTree) nearest(idx int32, dir vec.Vec2, best *rayHit) {
	for idx != nilNode {
		n := &t.nodes[idx]

		// Everything on the left is at least as close as n, so it always
		// has to be searched.
		t.nearest(n.left, dir, best)

		if n.dist > best.dist+2*Epsilon {
			// The ray meets a segment no earlier than its distance from
			// the origin, and the right subtree is further away than n.
			return
		}
		if pt, d, ok := hitSegment(t.origin, dir, t.reach, n.seg); ok {
			if best.seg == nil || d < best.dist-Epsilon ||
				(d <= best.dist+Epsilon && n.seg.ID < best.seg.ID) {
				*best = rayHit{seg: n.seg, pt: pt, dist: d}
			}
		}

		idx = n.right
	}
}

// hitSegment intersects the ray origin + s·dir (0 ≤ s ≤ reach) with the
// closed segment seg.  It returns the intersection point and its distance
// from the origin.
func hitSegment(origin, dir vec.Vec2, reach float64, seg *Segment) (vec.Vec2, float64, bool) {
	far := origin.Add(dir.Mul(reach))
	s, u, ok := lineParameters(origin, far, seg.A, seg.B)
	if !ok {
		return vec.Vec2{}, 0, false
	}

	const tol = 1e-9
	if u < -tol || u > 1+tol {
		return vec.Vec2{}, 0, false
	}
	if s*reach < -Epsilon {
		return vec.Vec2{}, 0, false
	}

	// Use the parametrisation of the obstacle, so that hits at an
	// endpoint reproduce the endpoint exactly.
	var pt vec.Vec2
	switch {
	case u <= tol:
		pt = seg.A
	case u >= 1-tol:
		pt = seg.B
	default:
		pt = seg.A.Add(seg.B.Sub(seg.A).Mul(u))
	}
	return pt, pt.Sub(origin).Length(), true
}
