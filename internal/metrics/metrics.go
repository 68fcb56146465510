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

// Package metrics exposes encoder statistics as prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"m4o.io/georender"
)

const namespace = "georender"

var (
	elementsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "encoder", "elements_total"),
		"OpenStreetMap elements received by the encoder.",
		[]string{"kind"}, nil,
	)
	featuresDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "encoder", "features_total"),
		"Feature records written by the encoder.",
		[]string{"kind"}, nil,
	)
	skippedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "encoder", "skipped_total"),
		"Elements dropped for missing dependencies.",
		nil, nil,
	)
	blobsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "encoder", "blobs_total"),
		"Blobs written by the encoder.",
		nil, nil,
	)
	bytesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "encoder", "written_bytes_total"),
		"Bytes written by the encoder, frame headers included.",
		nil, nil,
	)
)

// Collector reports a snapshot of encoder statistics on every scrape.
type Collector struct {
	stats func() georender.Stats
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector reading its values from stats, usually
// an Encoder's Stats method.
func NewCollector(stats func() georender.Stats) *Collector {
	return &Collector{stats: stats}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- elementsDesc
	ch <- featuresDesc
	ch <- skippedDesc
	ch <- blobsDesc
	ch <- bytesDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()

	counter := func(desc *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}

	counter(elementsDesc, s.Nodes, "node")
	counter(elementsDesc, s.Ways, "way")
	counter(elementsDesc, s.Relations, "relation")
	counter(featuresDesc, s.Points, "point")
	counter(featuresDesc, s.Lines, "line")
	counter(featuresDesc, s.Areas, "area")
	counter(skippedDesc, s.Skipped)
	counter(blobsDesc, s.Blobs)
	counter(bytesDesc, s.Bytes)
}

// Registry returns a registry holding the statistics of a finished run and
// its duration.
func Registry(stats georender.Stats, elapsed time.Duration) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(NewCollector(func() georender.Stats { return stats }))

	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pack",
		Name:      "duration_seconds",
		Help:      "Wall time of the last pack run.",
	})
	duration.Set(elapsed.Seconds())
	reg.MustRegister(duration)

	return reg
}

// WriteTextfile saves the statistics of a finished run in the text format
// read by the node exporter textfile collector.
func WriteTextfile(path string, stats georender.Stats, elapsed time.Duration) error {
	return prometheus.WriteToTextfile(path, Registry(stats, elapsed))
}
