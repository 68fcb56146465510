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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/georender/model"
)

func TestTagsFind(t *testing.T) {
	tags := model.Tags{
		{Key: "name", Value: "first"},
		{Key: "highway", Value: "residential"},
		{Key: "name", Value: "second"},
	}

	assert.Equal(t, "first", tags.Find("name"))
	assert.Equal(t, "residential", tags.Find("highway"))
	assert.Equal(t, "", tags.Find("area"))
	assert.True(t, tags.Has("highway"))
	assert.False(t, tags.Has("area"))
}

func TestNodePosition(t *testing.T) {
	n := &model.Node{ID: 1831881213, Lat: 54.09006660000001, Lon: 12.253938100000001}

	pos := n.Position()
	assert.Equal(t, float32(12.253938100000001), pos[0])
	assert.Equal(t, float32(54.09006660000001), pos[1])
}

func TestEntityAccessors(t *testing.T) {
	tags := model.Tags{{Key: "type", Value: "multipolygon"}}
	entities := []model.Entity{
		&model.Node{ID: 1, Tags: tags},
		&model.Way{ID: 2, Tags: tags},
		&model.Relation{ID: 3, Tags: tags},
	}

	for i, e := range entities {
		assert.Equal(t, model.ID(i+1), e.GetID())
		assert.Equal(t, tags, e.GetTags())
		assert.Nil(t, e.GetInfo())
	}
}
