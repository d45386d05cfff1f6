/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package httpapi exposes the analyzer's Prometheus metrics and a
// small introspection surface over HTTP, grounded on the teacher's
// gorilla/mux route registration in its system-controller HTTP server.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shilei-massclouds/lktrace/pkg/metrics"
)

// FlowSummary is the JSON shape returned by /api/v1/flows: one entry
// per trace file analyzed so far in this process's lifetime.
type FlowSummary struct {
	File          string `json:"file"`
	TasksSeen     int    `json:"tasks_seen"`
	FlowsOpen     int    `json:"flows_open"`
	LastRenderErr string `json:"last_render_error,omitempty"`
}

// Registry tracks FlowSummary entries reported by completed analysis
// runs. Guarded by a mutex per spec.md §5's note that any future shared
// state across concurrent engine instances needs one lock.
type Registry struct {
	mu      sync.Mutex
	entries map[string]FlowSummary
}

// NewRegistry returns an empty flow-summary registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]FlowSummary)}
}

// Report records or overwrites the summary for file.
func (r *Registry) Report(s FlowSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.File] = s
}

func (r *Registry) snapshot() []FlowSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FlowSummary, 0, len(r.entries))
	for _, s := range r.entries {
		out = append(out, s)
	}
	return out
}

// NewRouter builds the mux.Router serving /metrics, /healthz and
// /api/v1/flows.
func NewRouter(reg *Registry) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/flows", flowsHandler(reg)).Methods(http.MethodGet)
	return router
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func flowsHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reg.snapshot())
	}
}
