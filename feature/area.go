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

package feature

import (
	"m4o.io/georender/internal/varint"
)

// Area is a triangulated polygon, possibly with holes, or several polygons
// sharing one vertex list.
type Area struct {
	Header

	// Positions are interleaved lon, lat pairs.
	Positions []float32

	// Cells are vertex index triples, one per triangle.
	Cells []int
}

func (a *Area) Kind() Kind { return KindArea }

func (a *Area) Meta() Header { return a.Header }

// Triangles returns the number of triangles.
func (a *Area) Triangles() int {
	return len(a.Cells) / 3
}

func (a *Area) Size() int {
	triangles := a.Triangles()

	n := headerSize(a.Header) + positionsSize(a.Positions) + varint.Len(uint64(triangles))
	for _, c := range a.Cells[:3*triangles] {
		n += varint.Len(uint64(c))
	}

	return n + labelSize(a.Header)
}

func (a *Area) AppendTo(buf []byte) []byte {
	triangles := a.Triangles()

	buf = appendHeader(buf, KindArea, a.Header)
	buf = appendPositions(buf, a.Positions)
	buf = varint.Append(buf, uint64(triangles))
	for _, c := range a.Cells[:3*triangles] {
		buf = varint.Append(buf, uint64(c))
	}

	return appendLabels(buf, a.Header)
}

// DecodeArea decodes an area record from the start of buf.
func DecodeArea(buf []byte) (Area, int, error) {
	var a Area
	var err error

	r := reader{buf: buf}
	if a.Header, err = r.header(KindArea); err != nil {
		return Area{}, 0, err
	}

	if a.Positions, err = r.positions(); err != nil {
		return Area{}, 0, err
	}

	triangles, err := r.uvarint()
	if err != nil {
		return Area{}, 0, err
	}

	if triangles > uint64(r.remaining()/3) {
		return Area{}, 0, ErrTruncatedInput
	}

	a.Cells = make([]int, 3*triangles)
	for i := range a.Cells {
		c, err := r.uvarint()
		if err != nil {
			return Area{}, 0, err
		}
		a.Cells[i] = int(c)
	}

	if a.Labels, err = r.labels(); err != nil {
		return Area{}, 0, err
	}

	return a, r.off, nil
}
