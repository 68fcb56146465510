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

// Package model contains the OpenStreetMap entities consumed by the georender
// encoders.
package model

import (
	"time"
)

// UID is the primary key for a user.
type UID int32

// Info represents information common to Node, Way, and Relation entities.
type Info struct {
	Version   int32
	UID       UID
	Timestamp time.Time
	Changeset int64
	User      string
	Visible   bool
}

// Entity is implemented by Node, Way and Relation.
type Entity interface {
	isEntity() // prevents extensions

	GetID() ID

	GetTags() Tags

	GetInfo() *Info
}

// ID is the primary key of an entity.
type ID int64

// Tag is a single key/value pair attached to an entity.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered list of tags. Order is significant and duplicate keys
// are allowed.
type Tags []Tag

// Find returns the value of the first tag with the given key, or the empty
// string.
func (t Tags) Find(key string) string {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value
		}
	}

	return ""
}

// Has reports whether a tag with the given key is present.
func (t Tags) Has(key string) bool {
	for _, tag := range t {
		if tag.Key == key {
			return true
		}
	}

	return false
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID   ID
	Tags Tags
	Info *Info
	Lat  Degrees
	Lon  Degrees
}

var _ Entity = (*Node)(nil)

func (n *Node) isEntity() {}

func (n *Node) GetID() ID {
	return n.ID
}

func (n *Node) GetTags() Tags {
	return n.Tags
}

func (n *Node) GetInfo() *Info {
	return n.Info
}

// Position returns the node coordinates as the single precision (lon, lat)
// pair stored in encoded features.
func (n *Node) Position() [2]float32 {
	return [2]float32{n.Lon.Float32(), n.Lat.Float32()}
}

// Way is an ordered list of nodes that define a polyline or, when closed, a
// ring.
type Way struct {
	ID      ID
	Tags    Tags
	Info    *Info
	NodeIDs []ID
}

var _ Entity = (*Way)(nil)

func (w *Way) isEntity() {}

func (w *Way) GetID() ID {
	return w.ID
}

func (w *Way) GetTags() Tags {
	return w.Tags
}

func (w *Way) GetInfo() *Info {
	return w.Info
}

// EntityType is an enumeration of OSM entity types.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

// Member represents an entity referenced by a relation, with the role it
// plays within the relation.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data entities (nodes, ways, and/or other relations).
type Relation struct {
	ID      ID
	Tags    Tags
	Info    *Info
	Members []Member
}

var _ Entity = (*Relation)(nil)

func (r *Relation) isEntity() {}

func (r *Relation) GetID() ID {
	return r.ID
}

func (r *Relation) GetTags() Tags {
	return r.Tags
}

func (r *Relation) GetInfo() *Info {
	return r.Info
}
