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

// Line is an open polyline with labels.
type Line struct {
	Header

	// Positions are interleaved lon, lat pairs.
	Positions []float32
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Meta() Header { return l.Header }

func (l *Line) Size() int {
	return headerSize(l.Header) + positionsSize(l.Positions) + labelSize(l.Header)
}

func (l *Line) AppendTo(buf []byte) []byte {
	buf = appendHeader(buf, KindLine, l.Header)
	buf = appendPositions(buf, l.Positions)

	return appendLabels(buf, l.Header)
}

// DecodeLine decodes a line record from the start of buf.
func DecodeLine(buf []byte) (Line, int, error) {
	var l Line
	var err error

	r := reader{buf: buf}
	if l.Header, err = r.header(KindLine); err != nil {
		return Line{}, 0, err
	}

	if l.Positions, err = r.positions(); err != nil {
		return Line{}, 0, err
	}

	if l.Labels, err = r.labels(); err != nil {
		return Line{}, 0, err
	}

	return l, r.off, nil
}

func positionsSize(positions []float32) int {
	count := len(positions) / 2

	return varint.Len(uint64(count)) + 8*count
}

func appendPositions(buf []byte, positions []float32) []byte {
	count := len(positions) / 2

	buf = varint.Append(buf, uint64(count))
	for _, f := range positions[:2*count] {
		buf = appendFloat32(buf, f)
	}

	return buf
}
