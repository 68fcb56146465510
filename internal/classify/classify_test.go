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

package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/georender/internal/classify"
	"m4o.io/georender/model"
)

func tags(kv ...string) model.Tags {
	t := make(model.Tags, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		t = append(t, model.Tag{Key: kv[i], Value: kv[i+1]})
	}

	return t
}

func TestDefaultRegistryIDs(t *testing.T) {
	c := classify.Default()

	tests := []struct {
		key, value string
		id         uint64
	}{
		{"aerialway", "cable_car", 0},
		{"boundary", "protected_area", 174},
		{"place", "other", 277},
		{"highway", "residential", 412},
		{"power", "cable", 723},
	}

	for _, tc := range tests {
		t.Run(tc.key+"."+tc.value, func(t *testing.T) {
			id, ok := c.Lookup(tc.key, tc.value)
			require.True(t, ok)
			assert.Equal(t, tc.id, id)
		})
	}

	_, ok := c.Lookup("railway", "wash")
	assert.False(t, ok)
	assert.Equal(t, uint64(277), c.Fallback())
}

func TestClassifierType(t *testing.T) {
	c := classify.Default()

	primary, _ := c.Lookup("highway", "primary")

	tests := []struct {
		name     string
		tags     model.Tags
		expected uint64
	}{
		{"no tags", nil, 277},
		{"unregistered", tags("source", "bing"), 277},
		{"one has no priority", tags("name", "I am Stoplight", "highway", "traffic_signals", "power", "cable"), 723},
		{"both have priorities", tags("name", "I am Stoplight", "route", "canoe", "power", "cable"), 723},
		{"unregistered before", tags("name", "I am Stoplight", "railway", "wash", "power", "cable"), 723},
		{"unregistered after", tags("name", "I am Stoplight", "power", "cable", "railway", "wash"), 723},
		{"tie goes to later", tags("highway", "primary", "highway", "residential"), 412},
		{"tie goes to later reversed", tags("highway", "residential", "highway", "primary"), primary},
		{"wildcard", tags("source", "bing", "boundary", "protected_area"), 174},
		{"cable car", tags("name", "Neu Broderstorf", "aerialway", "cable_car"), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Type(tc.tags))
		})
	}
}

func TestPriority(t *testing.T) {
	assert.Equal(t, uint64(100), classify.Priority("amenity", "university"))
	assert.Equal(t, uint64(60), classify.Priority("amenity", "cafe"))
	assert.Equal(t, uint64(20), classify.Priority("building", "yes"))
	assert.Equal(t, uint64(5), classify.Priority("boundary", "protected_area"))
	assert.Equal(t, uint64(1), classify.Priority("sport", "soccer"))
	assert.Equal(t, classify.DefaultPriority, classify.Priority("highway", "residential"))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		tags     model.Tags
		expected []byte
	}{
		{"no names", tags("highway", "residential"), []byte{0x00}},
		{"name only", tags("name", "I am Stoplight"), append([]byte{0x0f}, append([]byte("=I am Stoplight"), 0x00)...)},
		{"alt_name", tags("alt_name", "B"), []byte{0x02, '=', 'B', 0x00}},
		{"name:en", tags("name:en", "Hi"), []byte{0x05, 'e', 'n', '=', 'H', 'i', 0x00}},
		{
			"order preserved",
			tags("name:de", "X", "highway", "primary", "name", "Y"),
			[]byte{0x04, 'd', 'e', '=', 'X', 0x02, '=', 'Y', 0x00},
		},
		{"not a name key", tags("name_of_thing", "Z", "surname", "Q"), []byte{0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label := classify.Label(tc.tags)
			assert.Equal(t, tc.expected, label)
			assert.Equal(t, len(label), classify.LabelLen(tc.tags))
			assert.Equal(t, len(label), cap(label))
		})
	}
}

func TestLabelLongValue(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	label := classify.Label(tags("name", string(long)))
	assert.Equal(t, []byte{0xc9, 0x01, '='}, label[:3])
	assert.Len(t, label, 2+201+1)
}

func TestIsNameTag(t *testing.T) {
	assert.True(t, classify.IsNameTag("name"))
	assert.True(t, classify.IsNameTag("alt_name"))
	assert.True(t, classify.IsNameTag("old_name:fr"))
	assert.True(t, classify.IsNameTag("name:en"))
	assert.False(t, classify.IsNameTag("surname"))
	assert.False(t, classify.IsNameTag("names"))
}

func TestParseRegistry(t *testing.T) {
	_, err := classify.ParseRegistry([]byte(`{"highway.primary": 1}`))
	assert.ErrorIs(t, err, classify.ErrNoFallbackType)

	_, err = classify.ParseRegistry([]byte(`not json`))
	assert.Error(t, err)

	r, err := classify.ParseRegistry([]byte(`{"highway.primary": 1, "place.other": 2}`))
	require.NoError(t, err)

	c, err := classify.New(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Type(tags("highway", "primary")))
	assert.Equal(t, uint64(2), c.Type(tags("highway", "residential")))
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"place.other": 9}`), 0o600))

	r, err := classify.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, classify.Registry{"place.other": 9}, r)

	_, err = classify.LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewWithoutFallback(t *testing.T) {
	_, err := classify.New(classify.Registry{})
	assert.ErrorIs(t, err, classify.ErrNoFallbackType)
}
