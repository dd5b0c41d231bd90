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

// Package visibility computes visibility polygons in the plane.
//
// Given a viewpoint and a set of opaque line segments, [Compute] returns
// the polygon of all points which can be seen from the viewpoint.  The
// computation is a radial sweep: the segment endpoints are sorted by angle
// around the viewpoint and a ray is rotated once around the full circle,
// while a binary search tree keeps track of the segments crossed by the
// ray, ordered by distance.  The visible region is bounded by a synthetic
// rectangular frame around all obstacles.
//
// The package also contains the geometric predicates used by the sweep,
// which are useful on their own, and two sort routines for the sweep
// events.
//
// The sub-packages add a raster mask for measuring visible areas
// (package mask), a small scene description language with commands to
// select shapes by visibility (package scene), and PDF output (package
// draw).
package visibility

//go:generate go run ./testcases/export
