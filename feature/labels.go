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
	"strings"

	"m4o.io/georender/internal/varint"
)

// Label is one entry of a label block. An empty Lang is the plain name.
type Label struct {
	Lang  string
	Value string
}

// ParseLabels splits a label block into its entries.
func ParseLabels(block []byte) ([]Label, error) {
	var labels []Label

	for {
		n, l, err := varint.Decode(block)
		if err != nil {
			return nil, err
		}
		block = block[n:]

		if l == 0 {
			return labels, nil
		}

		if l > uint64(len(block)) {
			return nil, ErrTruncatedInput
		}

		lang, value, _ := strings.Cut(string(block[:l]), "=")
		labels = append(labels, Label{Lang: lang, Value: value})
		block = block[l:]
	}
}

// Name returns the plain name entry, if any.
func Name(block []byte) string {
	labels, err := ParseLabels(block)
	if err != nil {
		return ""
	}

	for _, l := range labels {
		if l.Lang == "" {
			return l.Value
		}
	}

	return ""
}
