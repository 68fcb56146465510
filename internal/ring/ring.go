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

// Package ring assembles the closed rings of a multipolygon relation from
// its unordered, arbitrarily oriented way members, and triangulates them.
package ring

import (
	"errors"
	"fmt"

	"m4o.io/georender/model"
)

// Role is the part a way plays in a multipolygon.
type Role int

const (
	Unused Role = iota
	Outer
	Inner
)

func (r Role) String() string {
	switch r {
	case Outer:
		return "outer"
	case Inner:
		return "inner"
	default:
		return "unused"
	}
}

// ParseRole maps a relation member role to a Role. Anything other than
// inner or outer is unused.
func ParseRole(role string) Role {
	switch role {
	case "outer":
		return Outer
	case "inner":
		return Inner
	default:
		return Unused
	}
}

// MemberType is the kind of entity a member references.
type MemberType int

const (
	Node MemberType = iota
	Way
	Relation
)

// Member is a relation member. Reverse is set by Sort when the way must be
// walked from its last node to its first.
type Member struct {
	WayID   model.ID
	Role    Role
	Type    MemberType
	Reverse bool
}

// FromModel converts relation members.
func FromModel(members []model.Member) []Member {
	out := make([]Member, len(members))

	for i, m := range members {
		out[i] = Member{WayID: m.ID, Role: ParseRole(m.Role)}

		switch m.Type {
		case model.NODE:
			out[i].Type = Node
		case model.WAY:
			out[i].Type = Way
		case model.RELATION:
			out[i].Type = Relation
		}
	}

	return out
}

// WayNodes resolves a way id to its node ids.
type WayNodes interface {
	Get(id model.ID) ([]model.ID, bool)
}

// NodePositions resolves a node id to its (lon, lat) position.
type NodePositions interface {
	Get(id model.ID) ([2]float32, bool)
}

// WayMap is a WayNodes backed by a map.
type WayMap map[model.ID][]model.ID

func (m WayMap) Get(id model.ID) ([]model.ID, bool) {
	refs, ok := m[id]

	return refs, ok
}

// PositionMap is a NodePositions backed by a map.
type PositionMap map[model.ID][2]float32

func (m PositionMap) Get(id model.ID) ([2]float32, bool) {
	p, ok := m[id]

	return p, ok
}

// ErrMissingNode is matched by MissingNodeError.
var ErrMissingNode = errors.New("missing node position")

// MissingNodeError reports a ring vertex without a known position.
type MissingNodeError struct {
	ID model.ID
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing position for node %d", e.ID)
}

func (e *MissingNodeError) Is(target error) bool {
	return target == ErrMissingNode
}
