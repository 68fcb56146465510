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

package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	assert.Equal(t, []byte{0x00}, Encode(0))
	assert.Equal(t, []byte{0x7f}, Encode(127))
	assert.Equal(t, []byte{0x80, 0x01}, Encode(128))
	assert.Equal(t, []byte{0xd3, 0x05}, Encode(723))
	assert.Equal(t, []byte{0xfd, 0x93, 0xc1, 0xe9, 0x06}, Encode(1831881213))
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 277, 16383, 16384, 1 << 32, 1<<56 + 3, math.MaxUint64}

	for _, v := range values {
		buf := Encode(v)
		assert.Len(t, buf, Len(v))

		n, got, err := Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, Len(v), n)
		assert.Equal(t, v, got)
	}

	assert.Equal(t, MaxLen, Len(math.MaxUint64))
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	n, v, err := Decode([]byte{0xac, 0x02, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(300), v)
}

func TestDecodeTruncated(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	_, _, err = Decode([]byte{0x80, 0x80})
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeOverlongChain(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}

	_, _, err := Decode(buf)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestAppend(t *testing.T) {
	buf := Append([]byte{0x03}, 277)
	assert.Equal(t, []byte{0x03, 0x95, 0x02}, buf)
}
