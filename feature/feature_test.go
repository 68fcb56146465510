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

package feature_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/georender/feature"
)

const (
	pointHex     = "0100fd93c1e906211044413a5c5842103d4e65752042726f64657273746f726600"
	stoplightHex = "01d305fd93c1e906211044413a5c58420f3d4920616d2053746f706c6967687400"
	lineHex      = "029c03b1d6837003787af941922eef41a77af941bf30ef41977af941e72fef4100"
	areaHex      = "03ae01b1d6837003787af941922eef41a77af941bf30ef41977af941e72fef410101000200"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func label(entries ...string) []byte {
	var b []byte
	for _, e := range entries {
		b = append(b, byte(len(e)))
		b = append(b, e...)
	}

	return append(b, 0x00)
}

var linePositions = []float32{
	31.184799400000003, 29.897739500000004,
	31.184888100000002, 29.898801400000004,
	31.184858400000003, 29.8983899,
}

func TestPointFixtures(t *testing.T) {
	tests := []struct {
		name  string
		hex   string
		point feature.Point
	}{
		{
			"cable car",
			pointHex,
			feature.Point{
				Header:   feature.Header{ID: 1831881213, FeatureType: 0, Labels: label("=Neu Broderstorf")},
				Position: [2]float32{12.253938100000001, 54.09006660000001},
			},
		},
		{
			"stoplight",
			stoplightHex,
			feature.Point{
				Header:   feature.Header{ID: 1831881213, FeatureType: 723, Labels: label("=I am Stoplight")},
				Position: [2]float32{12.253938100000001, 54.09006660000001},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expected := mustHex(t, tc.hex)

			buf := feature.Encode(&tc.point)
			assert.Equal(t, tc.hex, hex.EncodeToString(buf))
			assert.Equal(t, len(buf), tc.point.Size())
			assert.Equal(t, len(buf), cap(buf))

			p, n, err := feature.DecodePoint(expected)
			require.NoError(t, err)
			assert.Equal(t, len(expected), n)
			assert.Equal(t, tc.point, p)
		})
	}
}

func TestLineFixture(t *testing.T) {
	line := feature.Line{
		Header:    feature.Header{ID: 234941233, FeatureType: 412, Labels: []byte{0x00}},
		Positions: linePositions,
	}

	buf := feature.Encode(&line)
	assert.Equal(t, lineHex, hex.EncodeToString(buf))

	l, n, err := feature.DecodeLine(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, line, l)
}

func TestAreaFixture(t *testing.T) {
	area := feature.Area{
		Header:    feature.Header{ID: 234941233, FeatureType: 174, Labels: []byte{0x00}},
		Positions: linePositions,
		Cells:     []int{1, 0, 2},
	}

	buf := feature.Encode(&area)
	assert.Equal(t, areaHex, hex.EncodeToString(buf))
	assert.Equal(t, 1, area.Triangles())

	a, n, err := feature.DecodeArea(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, area, a)
}

func TestDecodeDispatch(t *testing.T) {
	tests := []struct {
		hex  string
		kind feature.Kind
	}{
		{pointHex, feature.KindPoint},
		{lineHex, feature.KindLine},
		{areaHex, feature.KindArea},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			buf := mustHex(t, tc.hex)

			f, n, err := feature.Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, f.Kind())
			assert.Equal(t, len(buf), n)
			assert.Equal(t, buf, feature.Encode(f))
		})
	}
}

func TestSchemaMismatch(t *testing.T) {
	_, _, err := feature.DecodePoint(mustHex(t, lineHex))

	var mismatch *feature.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, feature.KindPoint, mismatch.Expected)
	assert.Equal(t, byte(0x02), mismatch.Got)

	_, _, err = feature.DecodeArea(mustHex(t, pointHex))
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, feature.KindArea, mismatch.Expected)
	assert.Equal(t, byte(0x01), mismatch.Got)

	_, _, err = feature.Decode([]byte{0x07, 0x00, 0x00})
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, feature.Kind(0), mismatch.Expected)
	assert.Equal(t, byte(0x07), mismatch.Got)
}

func TestTruncatedInput(t *testing.T) {
	for _, h := range []string{pointHex, stoplightHex, lineHex, areaHex} {
		buf := mustHex(t, h)

		for i := 0; i < len(buf); i++ {
			_, _, err := feature.Decode(buf[:i])
			assert.ErrorIs(t, err, feature.ErrTruncatedInput, "prefix %d of %s", i, h)
		}
	}
}

func TestTruncatedCounts(t *testing.T) {
	// a line claiming a million positions
	_, _, err := feature.DecodeLine([]byte{0x02, 0x01, 0x01, 0xc0, 0x84, 0x3d, 0x00})
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)

	// an area claiming more triangles than bytes left
	_, _, err = feature.DecodeArea([]byte{0x03, 0x01, 0x01, 0x00, 0x05, 0x00, 0x01, 0x02, 0x00})
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)
}

func TestRoundTrip(t *testing.T) {
	features := []feature.Feature{
		&feature.Point{
			Header:   feature.Header{ID: 1 << 40, FeatureType: 5, Labels: label("=A", "en=B", "de=C")},
			Position: [2]float32{-179.5, -89.25},
		},
		&feature.Line{
			Header:    feature.Header{ID: 0, FeatureType: 300, Labels: label()},
			Positions: []float32{0, 0, 1, 1},
		},
		&feature.Area{
			Header:    feature.Header{ID: 77, FeatureType: 1000, Labels: label("=Square")},
			Positions: []float32{0, 0, 1, 0, 1, 1, 0, 1},
			Cells:     []int{2, 3, 0, 0, 1, 2},
		},
		&feature.Area{
			Header:    feature.Header{ID: 78, FeatureType: 1, Labels: label()},
			Positions: []float32{},
			Cells:     []int{},
		},
	}

	var stream []byte
	for _, f := range features {
		buf := feature.Encode(f)
		assert.Equal(t, f.Size(), len(buf))

		decoded, n, err := feature.Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, f, decoded)

		stream = append(stream, buf...)
	}

	decoded, err := feature.DecodeAll(stream, len(features))
	require.NoError(t, err)
	assert.Equal(t, features, decoded)

	_, err = feature.DecodeAll(stream, len(features)+1)
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)
}

func TestDecodeAllOversizedCount(t *testing.T) {
	buf := feature.Encode(&feature.Point{Header: feature.Header{ID: 1, FeatureType: 2}})

	_, err := feature.DecodeAll(buf, 1<<62)
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)

	_, err = feature.DecodeAll(buf, -1)
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)
}

func TestEncodeNilLabels(t *testing.T) {
	p := &feature.Point{Header: feature.Header{ID: 1, FeatureType: 2}}

	buf := feature.Encode(p)
	assert.Equal(t, byte(0x00), buf[len(buf)-1])
	assert.Equal(t, p.Size(), len(buf))
}

func TestParseLabels(t *testing.T) {
	labels, err := feature.ParseLabels(label("=Neu Broderstorf", "en=New Broderstorf"))
	require.NoError(t, err)
	assert.Equal(t, []feature.Label{
		{Lang: "", Value: "Neu Broderstorf"},
		{Lang: "en", Value: "New Broderstorf"},
	}, labels)

	labels, err = feature.ParseLabels([]byte{0x00})
	require.NoError(t, err)
	assert.Empty(t, labels)

	_, err = feature.ParseLabels([]byte{0x05, '=', 'a'})
	assert.ErrorIs(t, err, feature.ErrTruncatedInput)

	assert.Equal(t, "Neu Broderstorf", feature.Name(label("en=X", "=Neu Broderstorf")))
	assert.Equal(t, "", feature.Name(label("en=X")))
}
