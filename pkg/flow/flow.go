/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package flow is the thread-flow reconstructor: the state machine
// owning per-thread IN/OUT pairing, signal-frame stacking, clone
// handoff across threads, and task-termination flush. Grounded on
// original_source/lktrace/src/level1.rs, with the level-2 anonymization
// path folded in (see DESIGN.md — level2.rs was not present in the
// retrieval pack and is fully reconstructable from event.rs's embedded
// level==2 branches).
package flow

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shilei-massclouds/lktrace/pkg/metrics"
	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/syscalls"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// Flow is one thread's ordered record of completed events, plus the
// stack of events paused by an interrupting signal.
type Flow struct {
	Events      []wire.TraceEvent
	SignalStack []wire.TraceEvent
}

// Flushed is a thread flow ready to render: either one that reached
// exit_group and was removed from the reconstructor's live set (Feed),
// or one still open at end of stream (Remaining).
type Flushed struct {
	Tid   uint64
	Flow  *Flow
}

// Reconstructor owns all of spec.md §3's global tables: events_map,
// task_seq, vfork_req, sighand_set, and (for level 2) tid_map.
type Reconstructor struct {
	level     int
	flows     map[uint64]*Flow
	taskSeq   []uint64
	vforkReq  []wire.TraceEvent
	sighand   map[uint64]struct{}
	tidMap    *TidMap
	collector metrics.Collector
}

// New returns a Reconstructor for the given render level (0 is not
// normally driven through this type — see pkg/analyzer — but is
// accepted for uniformity). collector may be metrics.Noop.
func New(level int, collector metrics.Collector) *Reconstructor {
	if collector == nil {
		collector = metrics.Noop
	}
	return &Reconstructor{
		level:     level,
		flows:     make(map[uint64]*Flow),
		sighand:   make(map[uint64]struct{}),
		tidMap:    NewTidMap(),
		collector: collector,
	}
}

// TidMap exposes the anonymization table so the renderer can mask
// TID-bearing arguments and results at level 2. nil for level != 2
// callers is fine — syscalls.Dispatch only ever invokes Mask when
// evt.Level == 2.
func (r *Reconstructor) TidMap() *TidMap {
	return r.tidMap
}

// TaskSeq returns the TIDs in the order they first appeared.
func (r *Reconstructor) TaskSeq() []uint64 {
	return r.taskSeq
}

// Remaining returns flows still open at end of stream (threads that
// never exited cleanly), keyed by TID, in TaskSeq order.
func (r *Reconstructor) Remaining() []Flushed {
	out := make([]Flushed, 0, len(r.flows))
	for _, tid := range r.taskSeq {
		if f, ok := r.flows[tid]; ok {
			out = append(out, Flushed{Tid: tid, Flow: f})
		}
	}
	return out
}

// Feed processes one decoded event in stream order. When the event
// completes a flow via exit_group, the completed Flow is returned
// (ok=true) so the caller can render it immediately and free it,
// matching spec.md §5's "flushing a flow ... releases its memory
// immediately".
//
// Feed panics on structural invariant violations (spec.md §7): magic/
// headsize mismatches are caught earlier in pkg/wire, but entry/exit
// pairing mismatches, an empty signal stack on rt_sigreturn, or a new
// TID whose first event is neither an entry nor a clone exit are all
// corrupt-stream conditions with no recovery path, exactly as the
// original Rust program's assert!/expect! calls abort it. Callers
// (pkg/analyzer) recover the panic to produce a clean non-zero exit.
func (r *Reconstructor) Feed(evt wire.TraceEvent) (flushed Flushed, ok bool) {
	r.collector.ObserveEvent(evt.Head.InOut)
	r.collector.ObservePayloadBytes(payloadBytes(evt.Payloads))

	tid := evt.Head.Sscratch
	f, exists := r.flows[tid]
	if !exists {
		if evt.Head.InOut != wire.In && evt.Head.Ax[7] != symbols.SysClone {
			panic(fmt.Sprintf("tid %#x: first event must be an entry or a clone exit", tid))
		}
		r.taskSeq = append(r.taskSeq, tid)
		f = &Flow{}
		r.flows[tid] = f
		if evt.Head.InOut == wire.Out {
			if len(r.vforkReq) == 0 {
				panic(fmt.Sprintf("tid %#x: clone exit arrived with no pending clone entry", tid))
			}
			req := r.vforkReq[len(r.vforkReq)-1]
			r.vforkReq = r.vforkReq[:len(r.vforkReq)-1]
			f.Events = append(f.Events, req)
		}
		r.collector.SetFlowsActive(len(r.flows))
	}

	switch evt.Head.InOut {
	case wire.In:
		r.feedEntry(tid, f, evt)
	case wire.Out:
		r.feedExit(tid, f, evt)
	default:
		panic(fmt.Sprintf("tid %#x: inout %d is neither IN nor OUT", tid, evt.Head.InOut))
	}

	if evt.Head.InOut == wire.In && evt.Head.Ax[7] == symbols.SysExitGroup {
		delete(r.flows, tid)
		r.collector.ObserveFlowFlushed()
		r.collector.SetFlowsActive(len(r.flows))
		return Flushed{Tid: tid, Flow: f}, true
	}
	return Flushed{}, false
}

func (r *Reconstructor) feedEntry(tid uint64, f *Flow, evt wire.TraceEvent) {
	if n := len(f.Events); n > 0 {
		last := f.Events[n-1]
		if last.Head.InOut != wire.Out {
			logrus.Warnf("tid %#x: might be killed: syscall %d never returned", tid, last.Head.Ax[7])
		}
	}

	switch evt.Head.Ax[7] {
	case symbols.SysClone:
		r.vforkReq = append(r.vforkReq, evt)
		f.Events = append(f.Events, evt)
	case symbols.SysRtSigreturn:
		if len(f.SignalStack) == 0 {
			panic(fmt.Sprintf("tid %#x: rt_sigreturn on empty signal stack", tid))
		}
		n := len(f.SignalStack)
		frame := f.SignalStack[n-1]
		f.SignalStack = f.SignalStack[:n-1]
		f.Events = append(f.Events, frame)
	default:
		f.Events = append(f.Events, evt)
	}
}

func (r *Reconstructor) feedExit(tid uint64, f *Flow, evt wire.TraceEvent) {
	if len(f.Events) == 0 {
		panic(fmt.Sprintf("tid %#x: exit with no pending entry", tid))
	}
	lastIdx := len(f.Events) - 1
	if evt.Head.Ax[7] != f.Events[lastIdx].Head.Ax[7] {
		panic(fmt.Sprintf("tid %#x: exit syscall %#x does not match pending entry %#x",
			tid, evt.Head.Ax[7], f.Events[lastIdx].Head.Ax[7]))
	}

	if evt.Head.Ax[7] == symbols.SysRtSigaction {
		if sa, _, ok := syscalls.DecodeSigAction(&evt); ok {
			r.sighand[sa.Handler] = struct{}{}
		}
	}

	// Signal-frame detection: this "exit" may actually be the kernel
	// dispatching a registered handler rather than returning from the
	// entered syscall. See spec.md §4.5/§9 — fragile by design, do not
	// silently improve.
	if _, isHandler := r.sighand[evt.Head.Epc]; isHandler {
		if evt.Head.Ax[7] == symbols.SysExecve {
			panic(fmt.Sprintf("tid %#x: execve cannot be signal-interrupted", tid))
		}
		popped := f.Events[lastIdx]
		f.Events = f.Events[:lastIdx]
		popped.Signal = wire.SigStage{Kind: wire.SigExit, Signo: evt.Head.Ax[0]}
		f.SignalStack = append(f.SignalStack, popped)
		r.collector.ObserveSignalFrame()

		sigReq := wire.TraceEvent{Level: evt.Level}
		sigReq.Signal = wire.SigStage{Kind: wire.SigEnter, Signo: evt.Head.Ax[0]}
		sigReq.Head.InOut = wire.Out
		sigReq.Head.Ax[0] = evt.Head.Ax[0]
		f.Events = append(f.Events, sigReq)
		return
	}

	last := &f.Events[lastIdx]
	last.Result = int64(evt.Head.Ax[0])
	last.Payloads = append(last.Payloads, evt.Payloads...)
	last.Head.InOut = wire.Out
}

func payloadBytes(payloads []wire.TracePayload) int {
	n := 0
	for _, p := range payloads {
		n += len(p.Data)
	}
	return n
}
