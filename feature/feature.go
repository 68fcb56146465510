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

// Package feature implements the binary records of the georender format.
//
// Every record starts with a kind byte, followed by the varint feature type
// and the varint element id. Geometry follows in a kind specific layout and
// the record ends with the label block: length-prefixed "key=value" entries
// terminated by a zero byte.
package feature

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"m4o.io/georender/internal/varint"
)

// Kind is the leading byte of every record.
type Kind byte

const (
	KindPoint Kind = 0x01
	KindLine  Kind = 0x02
	KindArea  Kind = 0x03
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindArea:
		return "area"
	default:
		return fmt.Sprintf("kind(%#02x)", byte(k))
	}
}

// ErrTruncatedInput is returned when a record ends before its layout does.
var ErrTruncatedInput = varint.ErrTruncatedInput

// SchemaMismatchError is returned when a record starts with an unexpected
// kind byte. Expected is zero when any kind was acceptable.
type SchemaMismatchError struct {
	Expected Kind
	Got      byte
}

func (e *SchemaMismatchError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("unknown feature kind %#02x", e.Got)
	}

	return fmt.Sprintf("expected feature kind %#02x, got %#02x", byte(e.Expected), e.Got)
}

// Header holds the fields shared by every record.
type Header struct {
	ID          uint64
	FeatureType uint64
	Labels      []byte
}

// Feature is a Point, Line or Area record.
type Feature interface {
	Kind() Kind

	// Meta returns the shared record fields.
	Meta() Header

	// Size returns the exact encoded length.
	Size() int

	// AppendTo appends the encoding to buf.
	AppendTo(buf []byte) []byte
}

var (
	_ Feature = (*Point)(nil)
	_ Feature = (*Line)(nil)
	_ Feature = (*Area)(nil)
)

// Encode returns the encoding of f in a buffer of exactly f.Size() bytes.
func Encode(f Feature) []byte {
	return f.AppendTo(make([]byte, 0, f.Size()))
}

// Decode decodes the record at the start of buf, dispatching on its kind
// byte, and returns the feature along with the number of bytes consumed.
func Decode(buf []byte) (Feature, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrTruncatedInput
	}

	switch Kind(buf[0]) {
	case KindPoint:
		p, n, err := DecodePoint(buf)
		if err != nil {
			return nil, 0, err
		}

		return &p, n, nil
	case KindLine:
		l, n, err := DecodeLine(buf)
		if err != nil {
			return nil, 0, err
		}

		return &l, n, nil
	case KindArea:
		a, n, err := DecodeArea(buf)
		if err != nil {
			return nil, 0, err
		}

		return &a, n, nil
	default:
		return nil, 0, &SchemaMismatchError{Got: buf[0]}
	}
}

// DecodeAll decodes count consecutive records from buf.
func DecodeAll(buf []byte, count int) ([]Feature, error) {
	if count < 0 || count > len(buf) {
		return nil, ErrTruncatedInput
	}

	features := make([]Feature, 0, count)

	for i := 0; i < count; i++ {
		f, n, err := Decode(buf)
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i, err)
		}

		features = append(features, f)
		buf = buf[n:]
	}

	return features, nil
}

func headerSize(h Header) int {
	return 1 + varint.Len(h.FeatureType) + varint.Len(h.ID)
}

func labelSize(h Header) int {
	if len(h.Labels) == 0 {
		return 1
	}

	return len(h.Labels)
}

func appendHeader(buf []byte, k Kind, h Header) []byte {
	buf = append(buf, byte(k))
	buf = varint.Append(buf, h.FeatureType)

	return varint.Append(buf, h.ID)
}

// appendLabels writes an empty label block for a nil label.
func appendLabels(buf []byte, h Header) []byte {
	if len(h.Labels) == 0 {
		return append(buf, 0x00)
	}

	return append(buf, h.Labels...)
}

func appendFloat32(buf []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
}

// reader is a bounds checked cursor over a record.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) kind(expected Kind) error {
	if r.remaining() < 1 {
		return ErrTruncatedInput
	}

	got := r.buf[r.off]
	if Kind(got) != expected {
		return &SchemaMismatchError{Expected: expected, Got: got}
	}
	r.off++

	return nil
}

func (r *reader) uvarint() (uint64, error) {
	n, v, err := varint.Decode(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n

	return v, nil
}

func (r *reader) header(expected Kind) (Header, error) {
	var h Header

	if err := r.kind(expected); err != nil {
		return h, err
	}

	var err error
	if h.FeatureType, err = r.uvarint(); err != nil {
		return h, err
	}

	if h.ID, err = r.uvarint(); err != nil {
		return h, err
	}

	return h, nil
}

func (r *reader) float32() (float32, error) {
	if r.remaining() < 4 {
		return 0, ErrTruncatedInput
	}

	bits := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4

	return math.Float32frombits(bits), nil
}

// positions reads count interleaved lon/lat pairs.
func (r *reader) positions() ([]float32, error) {
	count, err := r.uvarint()
	if err != nil {
		return nil, err
	}

	if count > uint64(r.remaining()/8) {
		return nil, ErrTruncatedInput
	}

	positions := make([]float32, 2*count)
	for i := range positions {
		positions[i], _ = r.float32()
	}

	return positions, nil
}

// labels scans the label block up to and including its zero terminator.
func (r *reader) labels() ([]byte, error) {
	start := r.off

	for {
		n, err := r.uvarint()
		if err != nil {
			return nil, err
		}

		if n == 0 {
			break
		}

		if n > uint64(r.remaining()) {
			return nil, ErrTruncatedInput
		}
		r.off += int(n)
	}

	return bytes.Clone(r.buf[start:r.off]), nil
}
