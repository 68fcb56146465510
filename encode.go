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

// Package georender converts OpenStreetMap entities into the georender
// binary feature format used for tile rendering.
package georender

import (
	"errors"
	"fmt"

	"github.com/rclancey/earcut"

	"m4o.io/georender/feature"
	"m4o.io/georender/internal/classify"
	"m4o.io/georender/internal/isarea"
	"m4o.io/georender/internal/ring"
	"m4o.io/georender/model"
)

// NodePositions resolves a node id to its (lon, lat) position.
type NodePositions = ring.NodePositions

// WayNodes resolves a way id to its node ids.
type WayNodes = ring.WayNodes

// PositionMap is a NodePositions backed by a map.
type PositionMap = ring.PositionMap

// WayMap is a WayNodes backed by a map.
type WayMap = ring.WayMap

// ElementEncoder turns single entities into feature records. An empty
// result with a nil error means the entity produces no feature.
type ElementEncoder struct {
	classifier *classify.Classifier
}

// NewElementEncoder creates an ElementEncoder classifying with c, or with
// the embedded registry when c is nil.
func NewElementEncoder(c *classify.Classifier) *ElementEncoder {
	if c == nil {
		c = classify.Default()
	}

	return &ElementEncoder{classifier: c}
}

var defaultElementEncoder = NewElementEncoder(nil)

// EncodeNode encodes a node with the embedded registry.
func EncodeNode(n *model.Node) ([]byte, error) {
	return defaultElementEncoder.Node(n)
}

// EncodeWay encodes a way with the embedded registry.
func EncodeWay(w *model.Way, positions NodePositions) ([]byte, error) {
	return defaultElementEncoder.Way(w, positions)
}

// EncodeRelation encodes a relation with the embedded registry.
func EncodeRelation(r *model.Relation, positions NodePositions, ways WayNodes) ([]byte, error) {
	return defaultElementEncoder.Relation(r, positions, ways)
}

func (e *ElementEncoder) header(id model.ID, tags model.Tags) feature.Header {
	typ, labels := e.classifier.Classify(tags)

	return feature.Header{ID: uint64(id), FeatureType: typ, Labels: labels}
}

// Node encodes a tagged node as a Point. Untagged nodes only serve as way
// vertices and produce nothing.
func (e *ElementEncoder) Node(n *model.Node) ([]byte, error) {
	if len(n.Tags) == 0 {
		return nil, nil
	}

	p := &feature.Point{
		Header:   e.header(n.ID, n.Tags),
		Position: n.Position(),
	}

	return feature.Encode(p), nil
}

// Way encodes a closed area-like way as a triangulated Area, any other way
// of two or more nodes as a Line.
func (e *ElementEncoder) Way(w *model.Way, positions NodePositions) ([]byte, error) {
	if isarea.Way(w.Tags, w.NodeIDs) {
		refs := w.NodeIDs[:len(w.NodeIDs)-1]

		flat, err := resolve(refs, positions)
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", w.ID, err)
		}

		cells, err := earcut.Earcut(widen(flat), nil, 2)
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", w.ID, err)
		}

		a := &feature.Area{
			Header:    e.header(w.ID, w.Tags),
			Positions: flat,
			Cells:     cells,
		}

		return feature.Encode(a), nil
	}

	if len(w.NodeIDs) < 2 {
		return nil, nil
	}

	flat, err := resolve(w.NodeIDs, positions)
	if err != nil {
		return nil, fmt.Errorf("way %d: %w", w.ID, err)
	}

	l := &feature.Line{
		Header:    e.header(w.ID, w.Tags),
		Positions: flat,
	}

	return feature.Encode(l), nil
}

// Relation encodes a multipolygon or boundary relation as an Area holding
// every ring group of the relation.
func (e *ElementEncoder) Relation(r *model.Relation, positions NodePositions, ways WayNodes) ([]byte, error) {
	if !isarea.Relation(r.Tags) || len(r.Members) == 0 {
		return nil, nil
	}

	g, err := ring.Assemble(ring.FromModel(r.Members), ways, positions)
	if err != nil {
		var missing *ring.MissingNodeError
		if errors.As(err, &missing) {
			err = &MissingDependencyError{Kind: NodeDependency, ID: missing.ID}
		}

		return nil, fmt.Errorf("relation %d: %w", r.ID, err)
	}

	if g.Empty() {
		return nil, nil
	}

	a := &feature.Area{
		Header:    e.header(r.ID, r.Tags),
		Positions: g.Positions,
		Cells:     g.Cells,
	}

	return feature.Encode(a), nil
}

// resolve looks up the positions of refs as interleaved lon, lat pairs.
func resolve(refs []model.ID, positions NodePositions) ([]float32, error) {
	flat := make([]float32, 0, 2*len(refs))

	for _, ref := range refs {
		p, ok := positions.Get(ref)
		if !ok {
			return nil, &MissingDependencyError{Kind: NodeDependency, ID: ref}
		}

		flat = append(flat, p[0], p[1])
	}

	return flat, nil
}

func widen(flat []float32) []float64 {
	out := make([]float64, len(flat))
	for i, f := range flat {
		out[i] = float64(f)
	}

	return out
}
