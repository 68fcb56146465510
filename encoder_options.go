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
	"runtime"

	"m4o.io/georender/internal/blob"
	"m4o.io/georender/internal/classify"
)

const (
	DefaultBlobCompression = blob.ZLIB

	// DefaultBatchSize is the default number of feature records per blob.
	DefaultBatchSize = 8000
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// encoderOptions provides optional configuration parameters for Encoder construction.
type encoderOptions struct {
	compression blob.Compression
	nCPU        uint16 // the number of CPUs to use for background processing
	batchSize   int
	classifier  *classify.Classifier
	skipMissing bool
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithCompression specifies the compression algorithm to use when encoding
// blobs.  The default is ZLIB.
func WithCompression(compression blob.Compression) EncoderOption {
	return func(o *encoderOptions) {
		o.compression = compression
	}
}

// WithNCpus lets you set the number of CPUs to use for background processing.
func WithNCpus(n uint16) EncoderOption {
	return func(o *encoderOptions) {
		o.nCPU = max(n, 1)
	}
}

// WithBatchSize sets the maximum number of feature records per blob.
func WithBatchSize(n int) EncoderOption {
	return func(o *encoderOptions) {
		o.batchSize = max(n, 1)
	}
}

// WithClassifier replaces the classifier backed by the embedded registry.
func WithClassifier(c *classify.Classifier) EncoderOption {
	return func(o *encoderOptions) {
		o.classifier = c
	}
}

// WithSkipMissing makes the encoder log and count elements with missing
// dependencies instead of failing.
func WithSkipMissing(skip bool) EncoderOption {
	return func(o *encoderOptions) {
		o.skipMissing = skip
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	compression: DefaultBlobCompression,
	nCPU:        DefaultNCpu(),
	batchSize:   DefaultBatchSize,
}
