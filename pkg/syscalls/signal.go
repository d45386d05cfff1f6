/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"encoding/binary"
	"fmt"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// SigAction is the 24-byte {handler, flags, mask} struct carried by a
// successful rt_sigaction exit (no restorer field on riscv64).
type SigAction struct {
	Handler uint64
	Flags   uintptr
	Mask    uint64
}

const sigActionSize = 24

func (s SigAction) String() string {
	return fmt.Sprintf("{ handler: %#x, flags: %s, mask: %#x }", s.Handler, symbols.SAFlagName(s.Flags), s.Mask)
}

// DecodeSigAction decodes the first payload of an rt_sigaction exit
// event, returning the struct and the argument index it belongs at.
func DecodeSigAction(evt *wire.TraceEvent) (SigAction, int, bool) {
	if len(evt.Payloads) == 0 {
		return SigAction{}, 0, false
	}
	p := evt.Payloads[0]
	if len(p.Data) < sigActionSize {
		return SigAction{}, 0, false
	}
	return SigAction{
		Handler: binary.LittleEndian.Uint64(p.Data[0:8]),
		Flags:   uintptr(binary.LittleEndian.Uint64(p.Data[8:16])),
		Mask:    binary.LittleEndian.Uint64(p.Data[16:24]),
	}, p.Index, true
}

func doRtSigaction(evt *wire.TraceEvent, args *Args) (string, int, string) {
	args[0] = symbols.SigName(evt.Head.Ax[0])
	if sa, index, ok := DecodeSigAction(evt); ok {
		args[index] = sa.String()
	}
	return "rt_sigaction", 3, fmt.Sprintf("%#x", evt.Result)
}

func doRtSigprocmask(evt *wire.TraceEvent, args *Args) (string, int, string) {
	switch evt.Head.Ax[0] {
	case symbols.SigBlock:
		args[0] = "SIG_BLOCK"
	case symbols.SigUnblock:
		args[0] = "SIG_UNBLOCK"
	case symbols.SigSetmask:
		args[0] = "SIG_SETMASK"
	default:
		panic(fmt.Sprintf("bad how: %#x", evt.Head.Ax[0]))
	}

	index := 0
	if evt.Head.Ax[1] != 0 {
		p := evt.Payloads[index]
		index++
		nset := binary.LittleEndian.Uint64(p.Data[:8])
		args[1] = fmt.Sprintf("nset: %#x", nset)
	} else {
		args[1] = "nset: NULL"
	}
	if evt.Head.Ax[2] != 0 {
		p := evt.Payloads[index]
		index++
		oset := binary.LittleEndian.Uint64(p.Data[:8])
		args[2] = fmt.Sprintf("oset: %#x", oset)
	} else {
		args[2] = "oset: NULL"
	}
	if index != len(evt.Payloads) {
		panic(fmt.Sprintf("rt_sigprocmask: consumed %d payloads, event carried %d", index, len(evt.Payloads)))
	}
	return "rt_sigprocmask", 4, fmt.Sprintf("%#x", evt.Result)
}
