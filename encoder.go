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

package georender

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/destel/rill"

	"m4o.io/georender/feature"
	"m4o.io/georender/internal/blob"
	"m4o.io/georender/internal/kv"
	"m4o.io/georender/model"
)

// Stats summarizes the work of an Encoder.
type Stats struct {
	Nodes     uint64
	Ways      uint64
	Relations uint64

	Points uint64
	Lines  uint64
	Areas  uint64

	// Skipped counts elements dropped for missing dependencies.
	Skipped uint64

	Blobs uint64
	Bytes uint64
}

type counters struct {
	nodes, ways, relations atomic.Uint64
	points, lines, areas   atomic.Uint64
	skipped                atomic.Uint64
	blobs, bytes           atomic.Uint64
}

// Encoder writes OpenStreetMap entities to an output stream as framed blobs
// of feature records, in input order.
//
// Entities must arrive nodes first, then ways, then relations. The order is
// not checked. Intake keeps recording dependencies while workers encode
// earlier batches, so for out-of-order input whether a way sees a node that
// arrives after it is nondeterministic.
type Encoder struct {
	entities chan []model.Entity

	cfg      encoderOptions
	elements *ElementEncoder

	positions *kv.XMap[model.ID, [2]float32]
	ways      *kv.XMap[model.ID, []model.ID]

	counters counters

	errMu sync.Mutex
	err   error

	closed atomic.Bool
	close  sync.Once
	done   chan struct{}
}

// NewEncoder returns a new encoder, configured with options, that writes to
// w.
func NewEncoder(w io.Writer, opts ...EncoderOption) (*Encoder, error) {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.compression > blob.ZSTD {
		return nil, fmt.Errorf("%w: %v", blob.ErrUnknownCompressionType, cfg.compression)
	}

	e := &Encoder{
		entities:  make(chan []model.Entity),
		cfg:       cfg,
		elements:  NewElementEncoder(cfg.classifier),
		positions: kv.NewXMap[model.ID, [2]float32](0),
		ways:      kv.NewXMap[model.ID, []model.ID](0),
		done:      make(chan struct{}),
	}

	n := int(cfg.nCPU)

	received := e.intake(e.entities)
	encoded := rill.OrderedMap(received, n, e.encode)
	records := rill.OrderedFilter(encoded, 1, func(buf []byte) (bool, error) {
		return len(buf) > 0, nil
	})
	batches := rill.Batch(records, cfg.batchSize, -1)
	packed := rill.OrderedMap(batches, n, e.pack)

	go e.write(w, packed)

	return e, nil
}

// Encode writes an entity.
func (e *Encoder) Encode(entity model.Entity) error {
	return e.EncodeBatch([]model.Entity{entity})
}

// EncodeBatch writes an array of entities. It must not be called
// concurrently with Close.
func (e *Encoder) EncodeBatch(entities []model.Entity) error {
	if e.closed.Load() {
		return ErrEncoderClosed
	}

	if err := e.failure(); err != nil {
		return err
	}

	e.entities <- entities

	return nil
}

// Close flushes the pending records and waits for the background pipeline
// to finish, returning the first error it met.
func (e *Encoder) Close() error {
	e.close.Do(func() {
		e.closed.Store(true)
		close(e.entities)
	})

	<-e.done

	return e.failure()
}

// Stats returns a snapshot of the encoder counters.
func (e *Encoder) Stats() Stats {
	c := &e.counters

	return Stats{
		Nodes:     c.nodes.Load(),
		Ways:      c.ways.Load(),
		Relations: c.relations.Load(),
		Points:    c.points.Load(),
		Lines:     c.lines.Load(),
		Areas:     c.areas.Load(),
		Skipped:   c.skipped.Load(),
		Blobs:     c.blobs.Load(),
		Bytes:     c.bytes.Load(),
	}
}

func (e *Encoder) failure() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()

	return e.err
}

func (e *Encoder) fail(err error) {
	e.errMu.Lock()
	defer e.errMu.Unlock()

	if e.err == nil {
		e.err = err
	}
}

// intake records the dependencies of every entity before passing it on, so
// the encoding workers only ever read the tables.
func (e *Encoder) intake(in <-chan []model.Entity) <-chan rill.Try[model.Entity] {
	out := make(chan rill.Try[model.Entity])

	go func() {
		defer close(out)

		for entities := range in {
			for _, entity := range entities {
				e.record(entity)
				out <- rill.Try[model.Entity]{Value: entity}
			}
		}
	}()

	return out
}

func (e *Encoder) record(entity model.Entity) {
	switch v := entity.(type) {
	case *model.Node:
		e.positions.Set(v.ID, v.Position())
		e.counters.nodes.Add(1)
	case *model.Way:
		e.ways.Set(v.ID, v.NodeIDs)
		e.counters.ways.Add(1)
	case *model.Relation:
		e.counters.relations.Add(1)
	}
}

func (e *Encoder) encode(entity model.Entity) ([]byte, error) {
	var buf []byte
	var err error

	switch v := entity.(type) {
	case *model.Node:
		buf, err = e.elements.Node(v)
	case *model.Way:
		buf, err = e.elements.Way(v, e.positions)
	case *model.Relation:
		buf, err = e.elements.Relation(v, e.positions, e.ways)
	default:
		return nil, fmt.Errorf("unsupported entity type %T", entity)
	}

	if err != nil {
		if e.cfg.skipMissing && errors.Is(err, ErrMissingDependency) {
			slog.Warn("skipping element", "id", entity.GetID(), "error", err)
			e.counters.skipped.Add(1)

			return nil, nil
		}

		return nil, err
	}

	if len(buf) > 0 {
		switch feature.Kind(buf[0]) {
		case feature.KindPoint:
			e.counters.points.Add(1)
		case feature.KindLine:
			e.counters.lines.Add(1)
		case feature.KindArea:
			e.counters.areas.Add(1)
		}
	}

	return buf, nil
}

func (e *Encoder) pack(records [][]byte) ([]byte, error) {
	size := 0
	for _, r := range records {
		size += len(r)
	}

	buf := make([]byte, 0, size)
	for _, r := range records {
		buf = append(buf, r...)
	}

	return blob.Pack(blob.Batch{Records: buf, Count: len(records)}, e.cfg.compression)
}

// write saves the packed blobs in order. After the first error the
// remaining blobs are drained so the pipeline can wind down.
func (e *Encoder) write(w io.Writer, packed <-chan rill.Try[[]byte]) {
	defer close(e.done)

	for p := range packed {
		if e.failure() != nil {
			continue
		}

		if p.Error != nil {
			slog.Error("unable to encode batch", "error", p.Error)
			e.fail(p.Error)

			continue
		}

		if err := blob.WriteFrame(w, p.Value); err != nil {
			slog.Error("unable to write blob", "error", err)
			e.fail(err)

			continue
		}

		e.counters.blobs.Add(1)
		e.counters.bytes.Add(uint64(4 + len(p.Value)))
	}
}
