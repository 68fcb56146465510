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

// Package osmsource reads OpenStreetMap entities from PBF files.
package osmsource

import (
	"context"
	"io"
	"iter"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"m4o.io/georender/model"
)

// Source iterates over the entities of a PBF file in file order. Sorted
// extracts list nodes, then ways, then relations.
type Source struct {
	scanner *osmpbf.Scanner
}

// New creates a Source decoding r with procs parallel workers.
func New(ctx context.Context, r io.Reader, procs int) *Source {
	return &Source{scanner: osmpbf.New(ctx, r, procs)}
}

// Entities yields every node, way and relation. Changesets and unknown
// objects are skipped. A scanner failure ends the sequence with its error.
func (s *Source) Entities() iter.Seq2[model.Entity, error] {
	return func(yield func(model.Entity, error) bool) {
		for s.scanner.Scan() {
			entity, ok := Convert(s.scanner.Object())
			if !ok {
				continue
			}

			if !yield(entity, nil) {
				return
			}
		}

		if err := s.scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// ScannedBytes returns the number of input bytes fully decoded so far.
func (s *Source) ScannedBytes() int64 {
	return s.scanner.FullyScannedBytes()
}

// Close stops the scanner workers.
func (s *Source) Close() error {
	return s.scanner.Close()
}

// Convert maps an osm object onto the model.
func Convert(o osm.Object) (model.Entity, bool) {
	switch v := o.(type) {
	case *osm.Node:
		return FromNode(v), true
	case *osm.Way:
		return FromWay(v), true
	case *osm.Relation:
		return FromRelation(v), true
	default:
		return nil, false
	}
}

func FromNode(n *osm.Node) *model.Node {
	return &model.Node{
		ID:   model.ID(n.ID),
		Tags: fromTags(n.Tags),
		Info: &model.Info{
			Version:   int32(n.Version),
			UID:       model.UID(n.UserID),
			Timestamp: n.Timestamp,
			Changeset: int64(n.ChangesetID),
			User:      n.User,
			Visible:   n.Visible,
		},
		Lat: model.Degrees(n.Lat),
		Lon: model.Degrees(n.Lon),
	}
}

func FromWay(w *osm.Way) *model.Way {
	refs := make([]model.ID, len(w.Nodes))
	for i, wn := range w.Nodes {
		refs[i] = model.ID(wn.ID)
	}

	return &model.Way{
		ID:   model.ID(w.ID),
		Tags: fromTags(w.Tags),
		Info: &model.Info{
			Version:   int32(w.Version),
			UID:       model.UID(w.UserID),
			Timestamp: w.Timestamp,
			Changeset: int64(w.ChangesetID),
			User:      w.User,
			Visible:   w.Visible,
		},
		NodeIDs: refs,
	}
}

func FromRelation(r *osm.Relation) *model.Relation {
	members := make([]model.Member, len(r.Members))
	for i, m := range r.Members {
		members[i] = model.Member{
			ID:   model.ID(m.Ref),
			Type: fromType(m.Type),
			Role: m.Role,
		}
	}

	return &model.Relation{
		ID:   model.ID(r.ID),
		Tags: fromTags(r.Tags),
		Info: &model.Info{
			Version:   int32(r.Version),
			UID:       model.UID(r.UserID),
			Timestamp: r.Timestamp,
			Changeset: int64(r.ChangesetID),
			User:      r.User,
			Visible:   r.Visible,
		},
		Members: members,
	}
}

func fromTags(tags osm.Tags) model.Tags {
	if len(tags) == 0 {
		return nil
	}

	out := make(model.Tags, len(tags))
	for i, t := range tags {
		out[i] = model.Tag{Key: t.Key, Value: t.Value}
	}

	return out
}

// fromType maps unknown member types to RELATION so they never take part in
// ring assembly.
func fromType(t osm.Type) model.EntityType {
	switch t {
	case osm.TypeNode:
		return model.NODE
	case osm.TypeWay:
		return model.WAY
	default:
		return model.RELATION
	}
}
