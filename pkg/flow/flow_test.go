/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

func entryEvt(tid, sysno uint64) wire.TraceEvent {
	e := wire.TraceEvent{Level: 1}
	e.Head.InOut = wire.In
	e.Head.Sscratch = tid
	e.Head.Ax[7] = sysno
	return e
}

func exitEvt(tid, sysno uint64, result int64, epc uint64) wire.TraceEvent {
	e := wire.TraceEvent{Level: 1, Result: result}
	e.Head.InOut = wire.Out
	e.Head.Sscratch = tid
	e.Head.Ax[7] = sysno
	e.Head.Ax[0] = uint64(result)
	e.Head.Epc = epc
	return e
}

// S1: simple IN/OUT pairing, round-trip invariant.
func TestFeedRoundTripPairing(t *testing.T) {
	r := New(1, nil)

	_, ok := r.Feed(entryEvt(0x10, symbols.SysOpenat))
	assert.False(t, ok)
	_, ok = r.Feed(exitEvt(0x10, symbols.SysOpenat, 3, 0))
	assert.False(t, ok)

	_, ok = r.Feed(entryEvt(0x10, symbols.SysClose))
	assert.False(t, ok)
	_, ok = r.Feed(exitEvt(0x10, symbols.SysClose, 0, 0))
	assert.False(t, ok)

	flushed, ok := r.Feed(entryEvt(0x10, symbols.SysExitGroup))
	require.True(t, ok)
	require.Len(t, flushed.Flow.Events, 3)

	assert.Equal(t, int64(3), flushed.Flow.Events[0].Result)
	assert.Equal(t, wire.Out, flushed.Flow.Events[0].Head.InOut)
	assert.Equal(t, int64(0), flushed.Flow.Events[1].Result)
	assert.Equal(t, []uint64{0x10}, r.TaskSeq())
}

// S4: clone handoff — parent's clone entry on tid A, child's clone exit on tid B.
func TestFeedCloneHandoff(t *testing.T) {
	r := New(1, nil)

	_, ok := r.Feed(entryEvt(0xA, symbols.SysClone))
	assert.False(t, ok)

	// Child's very first record is the clone exit.
	_, ok = r.Feed(exitEvt(0xB, symbols.SysClone, 0, 0))
	assert.False(t, ok)

	require.Contains(t, r.flows, uint64(0xB))
	childFlow := r.flows[0xB]
	require.Len(t, childFlow.Events, 1)
	assert.Equal(t, int64(0), childFlow.Events[0].Result)
	assert.Equal(t, wire.Out, childFlow.Events[0].Head.InOut)
	assert.Equal(t, []uint64{0xA, 0xB}, r.TaskSeq())
}

// S5: signal nesting — exit epc matches a registered handler address.
func TestFeedSignalNesting(t *testing.T) {
	r := New(1, nil)

	// Register a handler via a successful rt_sigaction.
	handlerAddr := uint64(0xdead)
	_, ok := r.Feed(entryEvt(0x10, symbols.SysRtSigaction))
	assert.False(t, ok)
	saExit := exitEvt(0x10, symbols.SysRtSigaction, 0, 0)
	saData := make([]byte, 24)
	saData[0] = 0xad
	saData[1] = 0xde
	saExit.Payloads = []wire.TracePayload{{Index: 2, Data: saData}}
	_, ok = r.Feed(saExit)
	assert.False(t, ok)

	// Entry for a read that will be "interrupted".
	_, ok = r.Feed(entryEvt(0x10, symbols.SysRead))
	assert.False(t, ok)

	// The kernel jumps into the handler: epc matches handlerAddr.
	_, ok = r.Feed(exitEvt(0x10, symbols.SysRead, 0, handlerAddr))
	assert.False(t, ok)

	f := r.flows[0x10]
	require.Len(t, f.SignalStack, 1)
	assert.Equal(t, wire.SigExit, f.SignalStack[0].Signal.Kind)

	last := f.Events[len(f.Events)-1]
	assert.Equal(t, wire.SigEnter, last.Signal.Kind)

	// Nested syscall inside the handler.
	_, ok = r.Feed(entryEvt(0x10, symbols.SysGetpid))
	assert.False(t, ok)
	_, ok = r.Feed(exitEvt(0x10, symbols.SysGetpid, 7, 0))
	assert.False(t, ok)

	// rt_sigreturn pops the signal stack, restoring the outer read.
	_, ok = r.Feed(entryEvt(0x10, symbols.SysRtSigreturn))
	assert.False(t, ok)
	require.Empty(t, f.SignalStack)
}

func TestFeedRtSigreturnOnEmptyStackPanics(t *testing.T) {
	r := New(1, nil)
	r.Feed(entryEvt(0x10, symbols.SysOpenat))
	r.Feed(exitEvt(0x10, symbols.SysOpenat, 1, 0))

	assert.Panics(t, func() {
		r.Feed(entryEvt(0x10, symbols.SysRtSigreturn))
	})
}

func TestFeedMismatchedExitPanics(t *testing.T) {
	r := New(1, nil)
	r.Feed(entryEvt(0x10, symbols.SysOpenat))

	assert.Panics(t, func() {
		r.Feed(exitEvt(0x10, symbols.SysClose, 0, 0))
	})
}

func TestFeedNewTidMustBeEntryOrCloneExit(t *testing.T) {
	r := New(1, nil)
	assert.Panics(t, func() {
		r.Feed(exitEvt(0x99, symbols.SysRead, 0, 0))
	})
}
