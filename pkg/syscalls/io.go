/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"fmt"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

func doWrite(evt *wire.TraceEvent, args *Args) (string, int, string) {
	fd := int64(evt.Head.Ax[0])
	args[0] = fmt.Sprintf("%d", fd)
	if fd == 1 || fd == 2 {
		if len(evt.Payloads) == 1 {
			p := evt.Payloads[0]
			args[p.Index] = cString(p.Data)
		}
	}
	return "write", 3, fmt.Sprintf("%#x", evt.Result)
}

func doRead(evt *wire.TraceEvent, args *Args) (string, int, string) {
	fd := int64(evt.Head.Ax[0])
	args[0] = fmt.Sprintf("%d", fd)
	if fd == 0 {
		if len(evt.Payloads) == 1 {
			p := evt.Payloads[0]
			args[p.Index] = cString(p.Data)
		}
	}
	return "read", 3, fmt.Sprintf("%#x", evt.Result)
}
