// Copyright 2017-26 the original author or authors.
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

package packers

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
)

// Unpack decompresses data into a buffer of rawSize bytes, failing when the
// decompressed length differs. At most rawSize+1 bytes are ever inflated.
func Unpack(data []byte, rawSize int, factory func(r io.Reader) (io.Reader, error)) ([]byte, error) {
	rdr, err := factory(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	if c, ok := rdr.(io.Closer); ok {
		defer c.Close()
	}

	buf := bytes.NewBuffer(make([]byte, 0, rawSize+bytes.MinRead))

	if n, err := buf.ReadFrom(io.LimitReader(rdr, int64(rawSize)+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if n != int64(rawSize) {
		return nil, fmt.Errorf("raw blob data size %d but expected %d", n, rawSize)
	}

	return buf.Bytes(), nil
}

func RawReader(r io.Reader) (io.Reader, error) {
	return r, nil
}

func ZlibReader(r io.Reader) (io.Reader, error) {
	return zlib.NewReader(r)
}

func LzmaReader(r io.Reader) (io.Reader, error) {
	return lzma.NewReader(r)
}

func Lz4Reader(r io.Reader) (io.Reader, error) {
	return lz4.NewReader(r), nil
}

func ZstdReader(r io.Reader) (io.Reader, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}

	return d.IOReadCloser(), nil
}
