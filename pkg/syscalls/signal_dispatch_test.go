/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

func TestDoRtSigaction(t *testing.T) {
	data := make([]byte, sigActionSize)
	binary.LittleEndian.PutUint64(data[0:8], 0x1000)

	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysRtSigaction
	evt.Head.Ax[0] = 2
	evt.Payloads = []wire.TracePayload{{Index: 1, Data: data}}

	name, argc, _, args := Dispatch(&evt, nil)
	assert.Equal(t, "rt_sigaction", name)
	assert.Equal(t, 3, argc)
	assert.Equal(t, "SIGINT", args[0])
	assert.Contains(t, args[1], "handler: 0x1000")
}

func TestDoRtSigprocmaskBlockWithSets(t *testing.T) {
	nset := make([]byte, 8)
	binary.LittleEndian.PutUint64(nset, 0x2)
	oset := make([]byte, 8)
	binary.LittleEndian.PutUint64(oset, 0x4)

	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysRtSigprocmask
	evt.Head.Ax[0] = symbols.SigBlock
	evt.Head.Ax[1] = 0x1000
	evt.Head.Ax[2] = 0x2000
	evt.Payloads = []wire.TracePayload{
		{Data: nset},
		{Data: oset},
	}

	name, argc, _, args := Dispatch(&evt, nil)
	assert.Equal(t, "rt_sigprocmask", name)
	assert.Equal(t, 4, argc)
	assert.Equal(t, "SIG_BLOCK", args[0])
	assert.Equal(t, "nset: 0x2", args[1])
	assert.Equal(t, "oset: 0x4", args[2])
}

func TestDoRtSigprocmaskNullSets(t *testing.T) {
	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysRtSigprocmask
	evt.Head.Ax[0] = symbols.SigUnblock

	_, _, _, args := Dispatch(&evt, nil)
	assert.Equal(t, "SIG_UNBLOCK", args[0])
	assert.Equal(t, "nset: NULL", args[1])
	assert.Equal(t, "oset: NULL", args[2])
}

func TestDoRtSigprocmaskBadHowPanics(t *testing.T) {
	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysRtSigprocmask
	evt.Head.Ax[0] = 0xdead

	assert.Panics(t, func() {
		Dispatch(&evt, nil)
	})
}
