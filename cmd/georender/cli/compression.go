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

package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"m4o.io/georender/internal/blob"
)

// -- blob.Compression Value
type compressionValue struct {
	value *blob.Compression
}

// NewCompressionValue creates a cobra Value object for a blob.Compression.
func NewCompressionValue(def blob.Compression, p *blob.Compression) pflag.Value {
	cv := &compressionValue{value: p}
	*cv.value = def

	return cv
}

func (c *compressionValue) Set(val string) error {
	compression, err := blob.ParseCompression(val)
	if err != nil {
		return err
	}

	*c.value = compression

	return nil
}

func (c *compressionValue) Type() string {
	return strings.Join(blob.CompressionNames(), "|")
}

func (c *compressionValue) String() string {
	return c.value.String()
}
