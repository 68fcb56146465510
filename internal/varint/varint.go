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

// Package varint implements unsigned LEB128 variable-length integers, the
// integer encoding used throughout the georender wire format.
package varint

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// MaxLen is the maximum number of bytes needed to encode a uint64.
const MaxLen = 10

// ErrTruncatedInput is returned when a read runs past the end of the buffer
// or a continuation chain exceeds MaxLen bytes.
var ErrTruncatedInput = errors.New("truncated input")

// Len returns the number of bytes needed to encode v.
func Len(v uint64) int {
	return protowire.SizeVarint(v)
}

// Append appends the encoding of v to buf and returns the extended buffer.
func Append(buf []byte, v uint64) []byte {
	return protowire.AppendVarint(buf, v)
}

// Encode returns the encoding of v.
func Encode(v uint64) []byte {
	return Append(make([]byte, 0, Len(v)), v)
}

// Decode reads a varint from the start of buf, returning the number of bytes
// consumed and the value.
func Decode(buf []byte) (int, uint64, error) {
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, 0, ErrTruncatedInput
	}

	return n, v, nil
}
