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

// Package packers compresses and decompresses blob payloads.
package packers

import (
	"bytes"
	"io"
)

// Packer compresses everything written to it. Close must be called before
// Bytes returns the complete packed data.
type Packer interface {
	io.WriteCloser

	// Bytes returns the packed data.
	Bytes() []byte
}

type base struct {
	w   io.WriteCloser
	buf bytes.Buffer
}

func (b *base) Write(p []byte) (int, error) {
	return b.w.Write(p)
}

func (b *base) Close() error {
	return b.w.Close()
}

func (b *base) Bytes() []byte {
	return b.buf.Bytes()
}

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}
