/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrnoName(t *testing.T) {
	assert.Equal(t, "OK", ErrnoName(0))
	assert.Equal(t, "ENOENT", ErrnoName(-2))
	assert.Equal(t, "EINVAL", ErrnoName(-22))
	assert.Equal(t, "Unknown errno", ErrnoName(-9999))
}

func TestSigName(t *testing.T) {
	assert.Equal(t, "SIGKILL", SigName(9))
	assert.Equal(t, "SIGRTMIN+1", SigName(35))
	assert.Equal(t, "SIGRTMAX-1", SigName(63))
	assert.Equal(t, "SIGUNKNOWN", SigName(0))
}

func TestProtName(t *testing.T) {
	assert.Equal(t, "PROT_NONE", ProtName(0))
	assert.Equal(t, "PROT_READ|PROT_WRITE", ProtName(ProtRead|ProtWrite))
	assert.Equal(t, "PROT_EXEC", ProtName(ProtExec))
}

func TestMapName(t *testing.T) {
	assert.Equal(t, "MAP_PRIVATE|MAP_ANONYMOUS", MapName(MapPrivate|MapAnonymous))
	assert.Equal(t, "MAP_SHARED", MapName(MapShared))
	assert.Equal(t, "MAP_UNKNOWN", MapName(0))
}

func TestSAFlagName(t *testing.T) {
	assert.Equal(t, "0x0", SAFlagName(0))
	assert.Contains(t, SAFlagName(SARestart), "SA_RESTART")
}
