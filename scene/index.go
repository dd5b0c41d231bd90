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

package scene

import (
	"github.com/dhconnelly/rtreego"

	"seehuhn.de/go/geom/rect"
)

// R-tree node sizes.
const (
	indexMinChildren = 4
	indexMaxChildren = 16
)

// Index is a spatial index over the bounding boxes of shapes.
type Index struct {
	tree    *rtreego.Rtree
	entries map[Shape]*indexEntry
}

type indexEntry struct {
	shape Shape
	bb    rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.bb
}

// NewIndex builds an index containing the given shapes.
func NewIndex(shapes []Shape) *Index {
	ix := &Index{entries: make(map[Shape]*indexEntry, len(shapes))}
	objs := make([]rtreego.Spatial, 0, len(shapes))
	for _, s := range shapes {
		e := newIndexEntry(s)
		ix.entries[s] = e
		objs = append(objs, e)
	}
	ix.tree = rtreego.NewTree(2, indexMinChildren, indexMaxChildren, objs...)
	return ix
}

func newIndexEntry(s Shape) *indexEntry {
	return &indexEntry{shape: s, bb: toRTree(s.Bounds())}
}

func toRTree(r rect.Rect) rtreego.Rect {
	// The only possible error is a dimension mismatch.
	bb, _ := rtreego.NewRectFromPoints(
		rtreego.Point{r.LLx, r.LLy},
		rtreego.Point{r.URx, r.URy},
	)
	return bb
}

// Len returns the number of indexed shapes.
func (ix *Index) Len() int {
	return ix.tree.Size()
}

// Insert adds s to the index.  Shapes which are already present are
// ignored.
func (ix *Index) Insert(s Shape) {
	if _, ok := ix.entries[s]; ok {
		return
	}
	e := newIndexEntry(s)
	ix.entries[s] = e
	ix.tree.Insert(e)
}

// Delete removes s from the index.
func (ix *Index) Delete(s Shape) {
	e, ok := ix.entries[s]
	if !ok {
		return
	}
	delete(ix.entries, s)
	ix.tree.Delete(e)
}

// Update refreshes the bounding box of s, for example after it has moved.
func (ix *Index) Update(s Shape) {
	ix.Delete(s)
	ix.Insert(s)
}

// Search returns the set of shapes whose bounding boxes meet r.
func (ix *Index) Search(r rect.Rect) map[Shape]bool {
	hits := ix.tree.SearchIntersect(toRTree(r))
	res := make(map[Shape]bool, len(hits))
	for _, h := range hits {
		res[h.(*indexEntry).shape] = true
	}
	return res
}
