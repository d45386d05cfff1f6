/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package analyzer is the level dispatcher: it selects the raw, grouped,
// or anonymized pipeline over one trace file and wires in the render
// cache, metrics, and the panic-to-error boundary for structural
// invariant violations. Grounded on original_source/lktrace/src/main.rs's
// level selection and the teacher's snapshotter.Start orchestration
// style (open resource, run, translate failures into logged errors).
package analyzer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shilei-massclouds/lktrace/pkg/cache"
	"github.com/shilei-massclouds/lktrace/pkg/errdefs"
	"github.com/shilei-massclouds/lktrace/pkg/flow"
	"github.com/shilei-massclouds/lktrace/pkg/httpapi"
	"github.com/shilei-massclouds/lktrace/pkg/metrics"
	"github.com/shilei-massclouds/lktrace/pkg/render"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// Options configures one analysis run.
type Options struct {
	Level     int
	Cache     *cache.Cache      // nil disables caching
	Collector metrics.Collector
	Summary   *httpapi.Registry // nil skips summary reporting
}

// Analyze renders path's trace stream to w, per opts.Level:
//   - 0: raw passthrough, one line per decoded record, no pairing.
//   - 1: grouped decoding through the thread-flow reconstructor.
//   - 2: level 1, routed through tid_map anonymization.
//
// Structural invariant violations surfaced as panics from pkg/flow are
// recovered here and returned as errdefs.ErrCorruptStream, matching
// spec.md §7's "partial rendering prior to failure acceptable": whatever
// was written to w before the panic stays written.
func Analyze(w io.Writer, path string, opts Options) error {
	collector := opts.Collector
	if collector == nil {
		collector = metrics.Noop
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open trace file %s", path)
	}
	defer f.Close()

	var key digest.Digest
	if opts.Cache != nil {
		key, err = cache.Digest(f)
		if err != nil {
			return err
		}
		if cached, hit, getErr := opts.Cache.Get(key); getErr != nil {
			logrus.Warnf("render cache lookup failed for %s: %v", path, getErr)
		} else if hit {
			logrus.Debugf("render cache hit for %s", path)
			_, err = w.Write(cached)
			return err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "rewind trace file after digest")
		}
	}

	var buf bytes.Buffer
	tasksSeen, flowsOpen, payloadBytes, runErr := run(&buf, f, opts.Level, collector)
	logrus.Infof("%s: %d tasks, %d flows open, %s of payload data",
		path, tasksSeen, flowsOpen, units.HumanSize(float64(payloadBytes)))
	if opts.Summary != nil {
		summary := httpapi.FlowSummary{File: path, TasksSeen: tasksSeen, FlowsOpen: flowsOpen}
		if runErr != nil {
			summary.LastRenderErr = runErr.Error()
		}
		opts.Summary.Report(summary)
	}
	if runErr != nil {
		// Forward whatever was rendered before the failure, per
		// spec.md §7's "partial rendering prior to failure acceptable".
		_, _ = w.Write(buf.Bytes())
		return runErr
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, buf.Bytes()); err != nil {
			logrus.Warnf("render cache write failed for %s: %v", path, err)
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func run(buf *bytes.Buffer, f *os.File, level int, collector metrics.Collector) (tasksSeen, flowsOpen, payloadBytes int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errdefs.WrapCorrupt(fmt.Errorf("%v", r), "thread-flow reconstruction")
		}
	}()

	r := bufio.NewReader(f)
	bw := bufio.NewWriter(buf)
	defer bw.Flush()

	if level == 0 {
		n, rawErr := runRaw(bw, r)
		return 0, 0, n, rawErr
	}
	tasksSeen, flowsOpen, payloadBytes, err = runGrouped(bw, r, level, collector)
	return tasksSeen, flowsOpen, payloadBytes, err
}

// runRaw is spec.md §1's "trivial print loop": one line per decoded
// record, no pairing, no formatters.
func runRaw(w *bufio.Writer, r *bufio.Reader) (int, error) {
	payloadBytes := 0
	for {
		evt, err := wire.ParseEvent(r, 0)
		if err == io.EOF {
			return payloadBytes, w.Flush()
		}
		if err != nil {
			return payloadBytes, errdefs.WrapCorrupt(err, "raw decode")
		}
		for _, p := range evt.Payloads {
			payloadBytes += len(p.Data)
		}
		dir := "IN"
		if evt.Head.InOut == wire.Out {
			dir = "OUT"
		}
		if _, err := fmt.Fprintf(w, "%s tid=%#x ax7=%#x ax0=%#x epc=%#x\n",
			dir, evt.Head.Sscratch, evt.Head.Ax[7], evt.Head.Ax[0], evt.Head.Epc); err != nil {
			return payloadBytes, err
		}
	}
}

func runGrouped(w *bufio.Writer, r *bufio.Reader, level int, collector metrics.Collector) (int, int, int, error) {
	rec := flow.New(level, collector)
	payloadBytes := 0
	for {
		evt, err := wire.ParseEvent(r, level)
		if err == io.EOF {
			break
		}
		if err != nil {
			return len(rec.TaskSeq()), len(rec.Remaining()), payloadBytes, errdefs.WrapCorrupt(err, "decode")
		}
		for _, p := range evt.Payloads {
			payloadBytes += len(p.Data)
		}
		if flushed, ok := rec.Feed(evt); ok {
			if err := render.Flow(w, flushed.Tid, flushed.Flow, rec.TidMap()); err != nil {
				return len(rec.TaskSeq()), len(rec.Remaining()), payloadBytes, err
			}
		}
	}

	remaining := rec.Remaining()
	for _, rem := range remaining {
		if err := render.Flow(w, rem.Tid, rem.Flow, rec.TidMap()); err != nil {
			return len(rec.TaskSeq()), len(remaining), payloadBytes, err
		}
	}

	return len(rec.TaskSeq()), len(remaining), payloadBytes, render.TaskSequence(w, rec.TaskSeq())
}
