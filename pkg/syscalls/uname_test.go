/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

func buildUtsname(fields [utsFieldCount]string) []byte {
	b := make([]byte, utsnameSize)
	for i, f := range fields {
		copy(b[i*utsFieldLen:], f)
	}
	return b
}

func TestDoUnameFull(t *testing.T) {
	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysUname
	evt.Payloads = []wire.TracePayload{{Index: 0, Data: buildUtsname([utsFieldCount]string{
		"Linux", "host", "6.1.0", "#1 SMP Mon Jan 1", "riscv64", "",
	})}}

	name, argc, _, args := Dispatch(&evt, nil)
	assert.Equal(t, "uname", name)
	assert.Equal(t, 1, argc)
	assert.Contains(t, args[0], `"Linux"`)
	assert.Contains(t, args[0], `"riscv64"`)
	assert.Contains(t, args[0], `"#1 SMP Mon Jan 1"`)
}

func TestDoUnameAnonymizedSuppressesVersion(t *testing.T) {
	evt := wire.TraceEvent{Result: 0, Level: 2}
	evt.Head.Ax[7] = symbols.SysUname
	evt.Payloads = []wire.TracePayload{{Index: 0, Data: buildUtsname([utsFieldCount]string{
		"Linux", "host", "6.1.0", "#1 SMP Mon Jan 1", "riscv64", "",
	})}}

	_, _, _, args := Dispatch(&evt, nil)
	assert.Contains(t, args[0], "%timestamp%")
	assert.NotContains(t, args[0], "#1 SMP Mon Jan 1")
}

func TestDoUnameShortPayloadFallsBackToCommon(t *testing.T) {
	evt := wire.TraceEvent{Result: 0}
	evt.Head.Ax[7] = symbols.SysUname
	evt.Payloads = []wire.TracePayload{{Index: 0, Data: []byte("short")}}

	name, argc, result, _ := Dispatch(&evt, nil)
	assert.Equal(t, "uname", name)
	assert.Equal(t, 1, argc)
	assert.Equal(t, "OK", result)
}
