/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package symbols holds the textual lookup tables (errno, signal,
// mmap prot/flags, syscall numbers) with no behavioral complexity of
// their own — out of scope per spec.md §1, kept here only because the
// per-syscall formatters in pkg/syscalls depend on them.
package symbols

import "github.com/sirupsen/logrus"

// Linux errno values this tracer's syscall set can produce.
const (
	EPERM   = 1
	ENOENT  = 2
	ECHILD  = 10
	ENOTDIR = 20
	EISDIR  = 21
	EINVAL  = 22
	ENOTTY  = 25
)

// ErrnoName renders result (a syscall return value, <= 0 on failure) as
// its canonical errno short name, or a debug-logged "Unknown errno".
func ErrnoName(result int64) string {
	err := int32(result)
	switch -err {
	case 0:
		return "OK"
	case EPERM:
		return "EPERM"
	case ENOENT:
		return "ENOENT"
	case ECHILD:
		return "ECHILD"
	case ENOTDIR:
		return "ENOTDIR"
	case EISDIR:
		return "EISDIR"
	case EINVAL:
		return "EINVAL"
	case ENOTTY:
		return "ENOTTY"
	default:
		logrus.Debugf("unknown errno: %d", -err)
		return "Unknown errno"
	}
}
