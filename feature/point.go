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

// Point is a single position with labels.
type Point struct {
	Header

	// Position is (lon, lat).
	Position [2]float32
}

func (p *Point) Kind() Kind { return KindPoint }

func (p *Point) Meta() Header { return p.Header }

func (p *Point) Size() int {
	return headerSize(p.Header) + 8 + labelSize(p.Header)
}

func (p *Point) AppendTo(buf []byte) []byte {
	buf = appendHeader(buf, KindPoint, p.Header)
	buf = appendFloat32(buf, p.Position[0])
	buf = appendFloat32(buf, p.Position[1])

	return appendLabels(buf, p.Header)
}

// DecodePoint decodes a point record from the start of buf.
func DecodePoint(buf []byte) (Point, int, error) {
	var p Point
	var err error

	r := reader{buf: buf}
	if p.Header, err = r.header(KindPoint); err != nil {
		return Point{}, 0, err
	}

	for i := range p.Position {
		if p.Position[i], err = r.float32(); err != nil {
			return Point{}, 0, err
		}
	}

	if p.Labels, err = r.labels(); err != nil {
		return Point{}, 0, err
	}

	return p, r.off, nil
}
