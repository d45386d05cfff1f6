/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// parseHexArg recovers the raw register value from an already-rendered
// "0x.." argument slot, for syscalls that need to re-mask an argument
// after it was initially seeded as plain hex.
func parseHexArg(s string) int64 {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		panic(fmt.Sprintf("not a hex argument: %q", s))
	}
	return int64(v)
}

func doSetTidAddress(evt *wire.TraceEvent, mask Masker) (string, int, string) {
	result := fmt.Sprintf("%#x", evt.Result)
	if evt.Level == 2 {
		result = mask.Mask(evt.Result)
	}
	return "set_tid_address", 1, result
}

func doKill(evt *wire.TraceEvent, args *Args, mask Masker) (string, int, string) {
	if evt.Level == 2 {
		args[0] = mask.Mask(parseHexArg(args[0]))
	}
	return "kill", 2, fmt.Sprintf("%#x", evt.Result)
}

func doGetpid(evt *wire.TraceEvent, mask Masker) (string, int, string) {
	result := fmt.Sprintf("%#x", evt.Result)
	if evt.Level == 2 {
		result = mask.Mask(evt.Result)
	}
	return "getpid", 0, result
}

func doGetppid(evt *wire.TraceEvent, mask Masker) (string, int, string) {
	result := fmt.Sprintf("%#x", evt.Result)
	if evt.Level == 2 {
		result = mask.Mask(evt.Result)
	}
	return "getppid", 0, result
}

func doWait4(evt *wire.TraceEvent, args *Args, mask Masker) (string, int, string) {
	result := fmt.Sprintf("%#x", evt.Result)
	if evt.Level == 2 {
		args[0] = mask.Mask(parseHexArg(args[0]))
		result = mask.Mask(evt.Result)
	}
	return "wait4", 4, result
}

func doClone(evt *wire.TraceEvent, mask Masker) (string, int, string) {
	result := fmt.Sprintf("%#x", evt.Result)
	if evt.Result != 0 && evt.Level == 2 {
		result = mask.Mask(evt.Result)
	}
	return "clone", 5, result
}
