// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes the client's operator diagnostics as Prometheus
// collectors. Background failures that are never shown to the user
// (push-triggered refreshes, dropped frames, reconnects) are observable here.
//
// All methods are safe to call on a nil *Metrics, which turns them into
// no-ops; components therefore accept an optional *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crossmessenger"

// Gateway request outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeNetwork      = "network"
	OutcomeUnauthorized = "unauthorized"
	OutcomeServerError  = "server_error"
	OutcomeDecode       = "decode"
)

// Refresh triggers.
const (
	TriggerUser     = "user"
	TriggerPush     = "push"
	TriggerPeriodic = "periodic"
	TriggerLinking  = "linking"
)

type Metrics struct {
	registry *prometheus.Registry

	gatewayRequests *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec

	pushState          prometheus.Gauge
	pushReconnects     prometheus.Counter
	pushDroppedFrames  prometheus.Counter
	pushEvents         *prometheus.CounterVec
	pushConnectSkipped *prometheus.CounterVec

	refreshFailures *prometheus.CounterVec
	staleDiscards   prometheus.Counter

	linkingTransitions *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry, pre-populated with
// the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "REST calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "REST call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		pushState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "state",
			Help:      "Push channel state (0 disconnected, 1 connecting, 2 connected, 3 closed, 4 failed).",
		}),
		pushReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "reconnects_scheduled_total",
			Help:      "Reconnection timers scheduled after a disconnect.",
		}),
		pushDroppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "malformed_frames_total",
			Help:      "Inbound frames dropped because they were not valid JSON events.",
		}),
		pushEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "events_total",
			Help:      "Inbound events delivered to the handler by type.",
		}, []string{"type"}),
		pushConnectSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "push",
			Name:      "connect_skipped_total",
			Help:      "Connect calls that did not dial, by reason.",
		}, []string{"reason"}),
		refreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "refresh_failures_total",
			Help:      "Failed pulls by collection and trigger.",
		}, []string{"collection", "trigger"}),
		staleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "stale_messages_discarded_total",
			Help:      "Message pulls discarded because the selection changed.",
		}),
		linkingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "linking",
			Name:      "transitions_total",
			Help:      "Linking workflow transitions by platform and target step.",
		}, []string{"platform", "step"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gatewayRequests,
		m.gatewayDuration,
		m.pushState,
		m.pushReconnects,
		m.pushDroppedFrames,
		m.pushEvents,
		m.pushConnectSkipped,
		m.refreshFailures,
		m.staleDiscards,
		m.linkingTransitions,
	)

	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns the exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveGatewayRequest(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(operation, outcome).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *Metrics) SetPushState(state int) {
	if m == nil {
		return
	}
	m.pushState.Set(float64(state))
}

func (m *Metrics) IncPushReconnect() {
	if m == nil {
		return
	}
	m.pushReconnects.Inc()
}

func (m *Metrics) IncPushMalformed() {
	if m == nil {
		return
	}
	m.pushDroppedFrames.Inc()
}

func (m *Metrics) IncPushEvent(eventType string) {
	if m == nil {
		return
	}
	m.pushEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncPushConnectSkipped(reason string) {
	if m == nil {
		return
	}
	m.pushConnectSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncRefreshFailure(collection, trigger string) {
	if m == nil {
		return
	}
	m.refreshFailures.WithLabelValues(collection, trigger).Inc()
}

func (m *Metrics) IncStaleDiscard() {
	if m == nil {
		return
	}
	m.staleDiscards.Inc()
}

func (m *Metrics) IncLinkingTransition(platform, step string) {
	if m == nil {
		return
	}
	m.linkingTransitions.WithLabelValues(platform, step).Inc()
}
