/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

const (
	utsFieldLen   = 65
	utsFieldCount = 6
	utsnameSize   = utsFieldLen * utsFieldCount
)

func doUname(evt *wire.TraceEvent, args *Args) (string, int, string) {
	if len(evt.Payloads) == 0 {
		return doCommon(evt, "uname", 1)
	}
	p := evt.Payloads[0]
	if len(p.Data) < utsnameSize {
		return doCommon(evt, "uname", 1)
	}

	names := make([]string, 0, utsFieldCount)
	for i := 0; i < utsFieldCount; i++ {
		if evt.Level == 2 && i == 3 {
			names = append(names, "%timestamp%")
			continue
		}
		field := p.Data[i*utsFieldLen : (i+1)*utsFieldLen]
		names = append(names, fmt.Sprintf("%q", cStringRaw(field)))
	}
	args[p.Index] = fmt.Sprintf("{%s}", strings.Join(names, ", "))
	return doCommon(evt, "uname", 1)
}

// cStringRaw decodes a NUL-terminated field without quoting, for
// uname's fixed-width ASCII fields.
func cStringRaw(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}
