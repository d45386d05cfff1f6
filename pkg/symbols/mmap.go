/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package symbols

import "strings"

// mmap prot bits.
const (
	ProtRead       uint64 = 0x1
	ProtWrite      uint64 = 0x2
	ProtExec       uint64 = 0x4
	ProtSem        uint64 = 0x8
	ProtNone       uint64 = 0x0
	ProtGrowsdown  uint64 = 0x01000000
	ProtGrowsup    uint64 = 0x02000000
)

// mmap/MAP_* bits.
const (
	MapShared         uint64 = 0x01
	MapPrivate        uint64 = 0x02
	MapSharedValidate uint64 = 0x03
	MapFixed          uint64 = 0x10
	MapAnonymous      uint64 = 0x20
	MapGrowsdown      uint64 = 0x0100
	MapDenywrite      uint64 = 0x0800
	MapExecutable     uint64 = 0x1000
	MapLocked         uint64 = 0x2000
	MapNoreserve      uint64 = 0x4000
)

// ProtName OR-decodes an mmap/mprotect protection bitmask.
func ProtName(prot uint64) string {
	if prot == ProtNone {
		return "PROT_NONE"
	}
	var names []string
	if prot&ProtRead != 0 {
		names = append(names, "PROT_READ")
	}
	if prot&ProtWrite != 0 {
		names = append(names, "PROT_WRITE")
	}
	if prot&ProtExec != 0 {
		names = append(names, "PROT_EXEC")
	}
	if prot&ProtSem != 0 {
		names = append(names, "PROT_SEM")
	}
	if prot&ProtGrowsdown != 0 {
		names = append(names, "PROT_GROWSDOWN")
	}
	if prot&ProtGrowsup != 0 {
		names = append(names, "PROT_GROWSUP")
	}
	return joinPipe(names)
}

// MapName decodes an mmap flags bitmask: the low two bits select the
// sharing mode, remaining bits OR-decode independently.
func MapName(flags uint64) string {
	var names []string
	switch flags & 3 {
	case MapSharedValidate:
		names = append(names, "MAP_SHARED_VALIDATE")
	case MapShared:
		names = append(names, "MAP_SHARED")
	case MapPrivate:
		names = append(names, "MAP_PRIVATE")
	default:
		names = append(names, "MAP_UNKNOWN")
	}
	if flags&MapFixed != 0 {
		names = append(names, "MAP_FIXED")
	}
	if flags&MapAnonymous != 0 {
		names = append(names, "MAP_ANONYMOUS")
	}
	if flags&MapGrowsdown != 0 {
		names = append(names, "MAP_GROWSDOWN")
	}
	if flags&MapDenywrite != 0 {
		names = append(names, "MAP_DENYWRITE")
	}
	if flags&MapExecutable != 0 {
		names = append(names, "MAP_EXECUTABLE")
	}
	if flags&MapLocked != 0 {
		names = append(names, "MAP_LOCKED")
	}
	if flags&MapNoreserve != 0 {
		names = append(names, "MAP_NORESERVE")
	}
	return joinPipe(names)
}

func joinPipe(names []string) string {
	return strings.Join(names, "|")
}
