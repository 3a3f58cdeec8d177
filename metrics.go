// Copyright 2011 Google Inc. All Rights Reserved.
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

package fox

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// Metric tracks a single named code path's call count and cumulative time,
// the same role ginja's metrics.go Metric plays for the build executor —
// here scoped to the generator's own parse and evaluate stages instead of
// build-edge execution.
type Metric struct {
	name  string
	count int
	sum   time.Duration
}

// Metrics is the process-wide metric registry, reported with -stats.
type Metrics struct {
	metrics []*Metric
	byName  map[string]*Metric
}

// NewMetrics returns an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{byName: map[string]*Metric{}}
}

// NewMetric registers (or returns the existing) metric for name.
func (m *Metrics) NewMetric(name string) *Metric {
	if existing, ok := m.byName[name]; ok {
		return existing
	}
	metric := &Metric{name: name}
	m.byName[name] = metric
	m.metrics = append(m.metrics, metric)
	return metric
}

// Record starts a scoped measurement for metric, stopped by calling the
// returned func once the measured work completes. Usage:
//
//	defer metrics.Record("parse")()
func (m *Metrics) Record(name string) func() {
	metric := m.NewMetric(name)
	start := time.Now()
	return func() {
		metric.count++
		metric.sum += time.Since(start)
	}
}

// Report prints a per-metric count/average/total summary, in declaration
// order, mirroring ginja's Metrics::Report layout.
func (m *Metrics) Report(w io.Writer) {
	width := 0
	for _, metric := range m.metrics {
		if len(metric.name) > width {
			width = len(metric.name)
		}
	}
	fmt.Fprintf(w, "%-*s\t%-6s\t%-9s\t%s\n", width, "metric", "count", "avg (us)", "total (ms)")
	for _, metric := range m.metrics {
		avgUs := float64(0)
		if metric.count > 0 {
			avgUs = float64(metric.sum.Microseconds()) / float64(metric.count)
		}
		totalMs := float64(metric.sum.Microseconds()) / 1000
		fmt.Fprintf(w, "%-*s\t%-6d\t%-8.1f\t%.1f\n", width, metric.name, metric.count, avgUs, totalMs)
	}
}

// sortedNames returns every registered metric name, sorted, for tests that
// don't want to depend on registration order.
func (m *Metrics) sortedNames() []string {
	names := make([]string, 0, len(m.metrics))
	for _, metric := range m.metrics {
		names = append(names, metric.name)
	}
	sort.Strings(names)
	return names
}
