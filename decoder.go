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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/destel/rill"

	"m4o.io/georender/feature"
	"m4o.io/georender/internal/blob"
)

// Decoder reads and decodes a georender feature stream.
type Decoder struct {
	features <-chan rill.Try[[]feature.Feature]
	cancel   context.CancelFunc
}

// NewDecoder returns a new decoder, configured with options, that reads
// from r. Blobs are unpacked and decoded in the background; canceling ctx
// stops the pipeline.
func NewDecoder(ctx context.Context, r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)

	blobs := generateBlobs(ctx, r)
	features := rill.OrderedMap(blobs, int(cfg.nCPU), decodeBlob)

	return &Decoder{features: features, cancel: cancel}, nil
}

// Decode returns the features of the next blob. The end of the input
// stream is reported by an io.EOF error.
func (d *Decoder) Decode() ([]feature.Feature, error) {
	v, ok := <-d.features
	if !ok {
		return nil, io.EOF
	}

	if v.Error != nil {
		d.Close()

		return nil, v.Error
	}

	return v.Value, nil
}

// Close will cancel the background decoding pipeline.
func (d *Decoder) Close() {
	d.cancel()
	rill.DrainNB(d.features)
}

// ReadAll decodes every feature of the stream.
func ReadAll(ctx context.Context, r io.Reader, opts ...DecoderOption) ([]feature.Feature, error) {
	d, err := NewDecoder(ctx, r, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	var all []feature.Feature

	for {
		features, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return all, nil
		} else if err != nil {
			return nil, err
		}

		all = append(all, features...)
	}
}

func generateBlobs(ctx context.Context, r io.Reader) <-chan rill.Try[[]byte] {
	out := make(chan rill.Try[[]byte])

	go func() {
		defer close(out)

		for bb, err := range blob.GenerateBlobReader(ctx, r) {
			select {
			case out <- rill.Try[[]byte]{Value: bb, Error: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func decodeBlob(bb []byte) ([]feature.Feature, error) {
	batch, _, err := blob.Unpack(bb)
	if err != nil {
		return nil, fmt.Errorf("unable to unpack blob: %w", err)
	}

	features, err := feature.DecodeAll(batch.Records, batch.Count)
	if err != nil {
		return nil, fmt.Errorf("unable to decode blob: %w", err)
	}

	return features, nil
}
