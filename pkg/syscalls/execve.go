/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"fmt"
	"strings"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// doExecve groups payload streams by declared argument index: index 0
// is the program path, index 1 accumulates into argv, index 2 into envp.
func doExecve(evt *wire.TraceEvent, args *Args) (string, int, string) {
	var argv, envp []string
	for _, p := range evt.Payloads {
		switch p.Index {
		case 0:
			args[0] = cString(p.Data)
		case 1:
			argv = append(argv, cString(p.Data))
		case 2:
			envp = append(envp, cString(p.Data))
		}
	}
	args[1] = fmt.Sprintf("{%s}", strings.Join(argv, ", "))
	args[2] = fmt.Sprintf("{%s}", strings.Join(envp, ", "))
	return "execve", 3, fmt.Sprintf("%#x", evt.Result)
}
