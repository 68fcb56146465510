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

// Package blob frames batches of encoded feature records.
//
// A frame is a big endian uint32 size followed by a blob. A blob is a
// compression byte, the varint raw size, the varint record count and the
// packed records.
package blob

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"m4o.io/georender/internal/blob/packers"
	"m4o.io/georender/internal/varint"
)

// Compression is the compression applied to a blob.
type Compression byte

const (
	RAW Compression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

// MaxFrameSize bounds the size of a single frame.
const MaxFrameSize = 64 << 20

// MinRecordSize is a lower bound on the encoded size of any feature record.
const MinRecordSize = 4

var (
	ErrUnknownCompressionType = errors.New("unknown blob compression type")
	ErrFrameTooLarge          = errors.New("frame exceeds maximum size")
	ErrRecordCount            = errors.New("record count exceeds blob size")
)

var compressionNames = []string{"raw", "zlib", "lzma", "lz4", "zstd"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}

	return fmt.Sprintf("compression(%d)", byte(c))
}

// ParseCompression parses a compression name, ignoring case.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return Compression(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompressionType, s)
}

// CompressionNames lists the accepted compression names.
func CompressionNames() []string {
	return append([]string(nil), compressionNames...)
}

// newPacker creates the appropriate Packer for the compression.
func newPacker(c Compression) (packers.Packer, error) {
	switch c {
	case RAW:
		return packers.NewRawPacker(), nil
	case ZLIB:
		return packers.NewZlibPacker(), nil
	case LZMA:
		return packers.NewLzmaPacker(), nil
	case LZ4:
		return packers.NewLz4Packer(), nil
	case ZSTD:
		return packers.NewZstdPacker(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}
}

func readerFactory(c Compression) (func(io.Reader) (io.Reader, error), error) {
	switch c {
	case RAW:
		return packers.RawReader, nil
	case ZLIB:
		return packers.ZlibReader, nil
	case LZMA:
		return packers.LzmaReader, nil
	case LZ4:
		return packers.Lz4Reader, nil
	case ZSTD:
		return packers.ZstdReader, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}
}

// Batch is a run of concatenated encoded records.
type Batch struct {
	Records []byte
	Count   int
}

// Pack compresses the batch into a blob.
func Pack(b Batch, c Compression) ([]byte, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(b.Records); err != nil {
		return nil, fmt.Errorf("could not compress records: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	packed := p.Bytes()

	bb := make([]byte, 0, 1+2*varint.MaxLen+len(packed))
	bb = append(bb, byte(c))
	bb = varint.Append(bb, uint64(len(b.Records)))
	bb = varint.Append(bb, uint64(b.Count))

	return append(bb, packed...), nil
}

// Unpack decompresses a blob.
func Unpack(bb []byte) (Batch, Compression, error) {
	if len(bb) == 0 {
		return Batch{}, 0, varint.ErrTruncatedInput
	}

	c := Compression(bb[0])

	factory, err := readerFactory(c)
	if err != nil {
		return Batch{}, c, err
	}

	off := 1

	n, rawSize, err := varint.Decode(bb[off:])
	if err != nil {
		return Batch{}, c, fmt.Errorf("error reading raw size: %w", err)
	}
	off += n

	n, count, err := varint.Decode(bb[off:])
	if err != nil {
		return Batch{}, c, fmt.Errorf("error reading record count: %w", err)
	}
	off += n

	if rawSize > MaxFrameSize*16 {
		return Batch{}, c, fmt.Errorf("raw size %d: %w", rawSize, ErrFrameTooLarge)
	}

	if count > rawSize/MinRecordSize {
		return Batch{}, c, fmt.Errorf("%d records in %d bytes: %w", count, rawSize, ErrRecordCount)
	}

	records, err := packers.Unpack(bb[off:], int(rawSize), factory)
	if err != nil {
		return Batch{}, c, err
	}

	return Batch{Records: records, Count: int(count)}, c, nil
}

// WriteFrame writes a size prefixed blob.
func WriteFrame(w io.Writer, bb []byte) error {
	if len(bb) > MaxFrameSize {
		return ErrFrameTooLarge
	}

	if err := binary.Write(w, binary.BigEndian, uint32(len(bb))); err != nil {
		return fmt.Errorf("could not write frame size: %w", err)
	}

	if _, err := w.Write(bb); err != nil {
		return fmt.Errorf("could not write blob: %w", err)
	}

	return nil
}

// ReadFrame reads a size prefixed blob. It returns io.EOF only when the
// reader ends cleanly between frames.
func ReadFrame(r io.Reader) ([]byte, error) {
	var size uint32

	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("error reading frame size: %w", err)
	}

	if size > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes: %w", size, ErrFrameTooLarge)
	}

	bb := make([]byte, size)
	if _, err := io.ReadFull(r, bb); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return bb, nil
}

// GenerateBlobReader creates an iterator over the blobs framed in the
// reader.
func GenerateBlobReader(ctx context.Context, r io.Reader) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			select {
			case <-ctx.Done():
				yield(nil, ctx.Err())

				return
			default:
			}

			bb, err := ReadFrame(r)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to read blob", "error", err)
					yield(nil, err)
				}

				return
			}

			if !yield(bb, nil) {
				return
			}
		}
	}
}
