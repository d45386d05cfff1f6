/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"fmt"
	"math"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

func doMmap(evt *wire.TraceEvent, args *Args) (string, int, string) {
	if !evt.RawFmt {
		if evt.Head.Ax[0] == 0 {
			args[0] = "NULL"
		}
		args[2] = symbols.ProtName(evt.Head.Ax[2])
		args[3] = symbols.MapName(evt.Head.Ax[3])
		if evt.Head.Ax[4] == math.MaxUint64 {
			args[4] = "-1"
		}
	}
	if evt.Result <= 0 {
		return "mmap", 6, "MAP_FAILED"
	}
	return "mmap", 6, fmt.Sprintf("%#x", evt.Result)
}

func doMprotect(evt *wire.TraceEvent, args *Args) (string, int, string) {
	if evt.Head.Ax[0] == 0 {
		args[0] = "NULL"
	}
	args[2] = symbols.ProtName(evt.Head.Ax[2])
	if evt.Result <= 0 {
		return "mprotect", 3, symbols.ErrnoName(evt.Result)
	}
	return "mprotect", 3, fmt.Sprintf("%#x", evt.Result)
}
