// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ring

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rclancey/earcut"

	"m4o.io/georender/model"
)

// Geometry is the triangulated result of an assembly. Cells index the
// vertices of Positions, which holds interleaved lon, lat pairs.
type Geometry struct {
	Positions []float32
	Cells     []int
}

// Empty reports whether no ring survived assembly.
func (g Geometry) Empty() bool {
	return len(g.Positions) == 0
}

// minRingVertices is the smallest ring worth triangulating.
const minRingVertices = 3

type nodeRing struct {
	role   Role
	refs   []model.ID
	closed bool
}

type loop struct {
	role   Role
	points orb.Ring
}

type group struct {
	outer loop
	holes []loop
}

// Assemble sorts the members, materializes their rings, assigns every inner
// ring to the outer ring containing it and triangulates each group. A
// relation without a usable outer ring yields an empty Geometry.
func Assemble(members []Member, ways WayNodes, nodes NodePositions) (Geometry, error) {
	sorted := Sort(members, ways)
	if len(sorted) == 0 {
		return Geometry{}, nil
	}

	nodeRings := materialize(sorted, ways)

	// Every referenced node must resolve, including those of rings too short
	// to triangulate.
	rings := make([]loop, 0, len(nodeRings))
	for _, nr := range nodeRings {
		r := loop{role: nr.role, points: make(orb.Ring, len(nr.refs))}
		for i, ref := range nr.refs {
			p, ok := nodes.Get(ref)
			if !ok {
				return Geometry{}, &MissingNodeError{ID: ref}
			}
			r.points[i] = orb.Point{float64(p[0]), float64(p[1])}
		}

		if len(r.points) < minRingVertices {
			continue
		}

		rings = append(rings, r)
	}

	return triangulate(assignHoles(rings))
}

// materialize walks the sorted members and splits their node ids into
// rings. A ring ends when it returns to its first node or the role changes;
// the closing node is not repeated.
func materialize(members []Member, ways WayNodes) []nodeRing {
	var rings []nodeRing

	for _, m := range members {
		refs, _ := ways.Get(m.WayID)

		if len(rings) == 0 || rings[len(rings)-1].role != m.Role || rings[len(rings)-1].closed {
			rings = append(rings, nodeRing{role: m.Role})
		}

		for j := range refs {
			ref := refs[j]
			if m.Reverse {
				ref = refs[len(refs)-1-j]
			}

			cur := &rings[len(rings)-1]

			if cur.closed {
				rings = append(rings, nodeRing{role: m.Role})
				cur = &rings[len(rings)-1]
			}

			n := len(cur.refs)
			if j == 0 && n > 0 && cur.refs[n-1] == ref {
				continue
			}

			if n > 0 && cur.refs[0] == ref {
				cur.closed = true

				continue
			}

			cur.refs = append(cur.refs, ref)
		}
	}

	return rings
}

// assignHoles groups each inner ring with the outer ring containing it,
// falling back to the closest preceding outer ring.
func assignHoles(rings []loop) []group {
	var groups []group
	var orphans []loop

	for _, r := range rings {
		if r.role == Outer {
			groups = append(groups, group{outer: r})

			continue
		}

		if len(groups) == 0 {
			orphans = append(orphans, r)

			continue
		}

		i := containing(groups, r, len(groups)-1)
		groups[i].holes = append(groups[i].holes, r)
	}

	if len(groups) == 0 {
		return nil
	}

	for _, r := range orphans {
		i := containing(groups, r, 0)
		groups[i].holes = append(groups[i].holes, r)
	}

	return groups
}

func containing(groups []group, hole loop, fallback int) int {
	for i, g := range groups {
		if planar.RingContains(g.outer.points, hole.points[0]) {
			return i
		}
	}

	return fallback
}

func triangulate(groups []group) (Geometry, error) {
	var g Geometry

	for _, grp := range groups {
		vertices := len(grp.outer.points)
		for _, h := range grp.holes {
			vertices += len(h.points)
		}

		data := make([]float64, 0, 2*vertices)
		holeIndices := make([]int, 0, len(grp.holes))

		data = appendRing(data, grp.outer.points)
		for _, h := range grp.holes {
			holeIndices = append(holeIndices, len(data)/2)
			data = appendRing(data, h.points)
		}

		cells, err := earcut.Earcut(data, holeIndices, 2)
		if err != nil {
			return Geometry{}, err
		}

		offset := len(g.Positions) / 2
		for _, c := range cells {
			g.Cells = append(g.Cells, c+offset)
		}

		for _, f := range data {
			g.Positions = append(g.Positions, float32(f))
		}
	}

	return g, nil
}

func appendRing(data []float64, r orb.Ring) []float64 {
	for _, p := range r {
		data = append(data, p[0], p[1])
	}

	return data
}
