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

// Package classify maps ordered OSM tags to a feature type and a name label.
package classify

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"m4o.io/georender/internal/varint"
	"m4o.io/georender/model"
)

// PlaceOther is the registry key used when no tag names a known type.
const PlaceOther = "place.other"

// DefaultPriority applies to registered types missing from the priority table.
const DefaultPriority uint64 = 50

// ErrNoFallbackType is returned when a registry lacks the place.other entry.
var ErrNoFallbackType = errors.New("registry has no " + PlaceOther + " type")

//go:embed features.json
var featuresJSON []byte

var nameTag = regexp.MustCompile(`^(|[^:]+_)name($|:)`)

// Registry maps "key.value" strings to feature type identifiers.
type Registry map[string]uint64

// ParseRegistry decodes a JSON object of "key.value" to type id entries.
func ParseRegistry(data []byte) (Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing feature registry: %w", err)
	}

	if _, ok := r[PlaceOther]; !ok {
		return nil, ErrNoFallbackType
	}

	return r, nil
}

// LoadRegistry reads a registry from a JSON file.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature registry: %w", err)
	}

	return ParseRegistry(data)
}

var defaultClassifier = sync.OnceValue(func() *Classifier {
	r, err := ParseRegistry(featuresJSON)
	if err != nil {
		panic(err)
	}

	c, err := New(r)
	if err != nil {
		panic(err)
	}

	return c
})

// Default returns the classifier backed by the embedded registry.
func Default() *Classifier {
	return defaultClassifier()
}

// Classifier resolves feature types against an immutable registry. It is
// safe for concurrent use.
type Classifier struct {
	types Registry
	other uint64
}

// New creates a classifier for the registry.
func New(r Registry) (*Classifier, error) {
	other, ok := r[PlaceOther]
	if !ok {
		return nil, ErrNoFallbackType
	}

	return &Classifier{types: r, other: other}, nil
}

// Lookup returns the type registered for "key.value".
func (c *Classifier) Lookup(key, value string) (uint64, bool) {
	t, ok := c.types[key+"."+value]

	return t, ok
}

// Fallback returns the place.other type id.
func (c *Classifier) Fallback() uint64 {
	return c.other
}

// Classify returns the feature type and the label bytes for the tags.
func (c *Classifier) Classify(tags model.Tags) (uint64, []byte) {
	return c.Type(tags), Label(tags)
}

// Type returns the registered type of the highest priority tag. Ties go to
// the later tag.
func (c *Classifier) Type(tags model.Tags) uint64 {
	best := c.other
	var bestPriority uint64

	for _, tag := range tags {
		t, ok := c.Lookup(tag.Key, tag.Value)
		if !ok {
			continue
		}

		if p := Priority(tag.Key, tag.Value); bestPriority <= p {
			bestPriority = p
			best = t
		}
	}

	return best
}

// IsNameTag reports whether the key belongs to the name family, e.g. name,
// alt_name or name:en.
func IsNameTag(key string) bool {
	return nameTag.MatchString(key)
}

// labelKey strips the name family prefix: name and alt_name become the empty
// string, name:en becomes en.
func labelKey(key string) string {
	loc := nameTag.FindStringIndex(key)
	if loc == nil {
		return key
	}

	return key[loc[1]:]
}

// LabelLen returns the exact encoded size of the label for the tags.
func LabelLen(tags model.Tags) int {
	n := 1

	for _, tag := range tags {
		if !IsNameTag(tag.Key) {
			continue
		}

		l := len(labelKey(tag.Key)) + 1 + len(tag.Value)
		n += varint.Len(uint64(l)) + l
	}

	return n
}

// Label encodes the name family tags in input order, each entry as a
// length-prefixed "key=value", terminated by a zero byte.
func Label(tags model.Tags) []byte {
	return AppendLabel(make([]byte, 0, LabelLen(tags)), tags)
}

// AppendLabel appends the encoded label for the tags to buf.
func AppendLabel(buf []byte, tags model.Tags) []byte {
	for _, tag := range tags {
		if !IsNameTag(tag.Key) {
			continue
		}

		k := labelKey(tag.Key)
		buf = varint.Append(buf, uint64(len(k)+1+len(tag.Value)))
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = append(buf, tag.Value...)
	}

	return append(buf, 0x00)
}
