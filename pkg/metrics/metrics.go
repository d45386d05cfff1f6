/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package metrics exposes the analyzer's Prometheus instrumentation,
// grounded on the teacher's pkg/metrics/registry + pkg/metrics/data
// registration pattern.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the package-level registry analyzer runs register into,
// mirroring pkg/metrics/registry.Registry in the teacher.
var Registry = prometheus.NewRegistry()

var (
	eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lktrace_events_total",
		Help: "Number of decoded trace records, by direction.",
	}, []string{"inout"})

	payloadBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lktrace_payload_bytes_total",
		Help: "Total bytes of payload data decoded.",
	})

	signalFramesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lktrace_signal_frames_total",
		Help: "Number of synthesized signal-delivery frames.",
	})

	flowsFlushedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lktrace_flows_flushed_total",
		Help: "Number of thread flows flushed via exit_group.",
	})

	flowsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lktrace_flows_active",
		Help: "Number of thread flows currently open.",
	})
)

func init() {
	Registry.MustRegister(eventsTotal, payloadBytesTotal, signalFramesTotal, flowsFlushedTotal, flowsActive)
}

// Collector is the instrumentation sink the flow reconstructor reports
// into. Kept as an interface (mirroring the teacher's
// pkg/metrics/collector.Collector pattern) so pkg/flow never imports
// Prometheus directly.
type Collector interface {
	ObserveEvent(inout uint64)
	ObservePayloadBytes(n int)
	ObserveSignalFrame()
	ObserveFlowFlushed()
	SetFlowsActive(n int)
}

// promCollector is the concrete Collector backed by this package's
// registered metrics.
type promCollector struct{}

// Default is the process-wide Collector wired into every analysis run.
var Default Collector = promCollector{}

func (promCollector) ObserveEvent(inout uint64) {
	if inout == 0 {
		eventsTotal.WithLabelValues("in").Inc()
	} else {
		eventsTotal.WithLabelValues("out").Inc()
	}
}

func (promCollector) ObservePayloadBytes(n int) {
	payloadBytesTotal.Add(float64(n))
}

func (promCollector) ObserveSignalFrame() {
	signalFramesTotal.Inc()
}

func (promCollector) ObserveFlowFlushed() {
	flowsFlushedTotal.Inc()
}

func (promCollector) SetFlowsActive(n int) {
	flowsActive.Set(float64(n))
}

// Noop discards all observations; used when metrics collection is not
// wanted (e.g. in unit tests asserting flow semantics in isolation).
var Noop Collector = noopCollector{}

type noopCollector struct{}

func (noopCollector) ObserveEvent(uint64)     {}
func (noopCollector) ObservePayloadBytes(int) {}
func (noopCollector) ObserveSignalFrame()     {}
func (noopCollector) ObserveFlowFlushed()     {}
func (noopCollector) SetFlowsActive(int)      {}
