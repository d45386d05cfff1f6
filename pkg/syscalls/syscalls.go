/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package syscalls renders a completed TraceEvent's seven argument slots
// and computes its canonical (name, argc, result) triple, one small
// decoder per distinct syscall. Grounded on the `do_*` methods of
// original_source/lktrace/src/event.rs.
package syscalls

import (
	"fmt"

	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// Masker anonymizes a raw TID-bearing value for level-2 rendering. The
// flow reconstructor's TidMap implements this; a nil Masker means the
// caller is not running level 2 and masking must not be invoked.
type Masker interface {
	Mask(raw int64) string
}

// Args holds the seven mutable argument-slot strings, pre-seeded with
// hex renderings of ax[0..6].
type Args [7]string

func hexArgs(evt *wire.TraceEvent) Args {
	var a Args
	for i := 0; i < 7; i++ {
		a[i] = fmt.Sprintf("%#x", evt.Head.Ax[i])
	}
	return a
}

// Dispatch computes the display name, visible argument count, and
// rendered result for evt, mutating arg slots in place as the specific
// syscall formatter requires. An unrecognized syscall number renders as
// sys_<n> with all seven hex arguments, per spec.md §4.3/§9.
func Dispatch(evt *wire.TraceEvent, mask Masker) (name string, argc int, result string, args Args) {
	args = hexArgs(evt)
	switch evt.Head.Ax[7] {
	case symbols.SysIoctl:
		name, argc, result = doCommon(evt, "ioctl", 3)
	case symbols.SysFcntl:
		name, argc, result = doCommon(evt, "fcntl", 3)
	case symbols.SysDup3:
		name, argc, result = doCommon(evt, "dup3", 3)
	case symbols.SysFaccessat:
		name, argc, result = doFaccessat(evt, &args)
	case symbols.SysMkdirat:
		name, argc, result = doCommon(evt, "mkdirat", 3)
	case symbols.SysGetcwd:
		name, argc, result = doGetcwd(evt, &args)
	case symbols.SysChdir:
		name, argc, result = doChdir(evt, &args)
	case symbols.SysFchmodat:
		name, argc, result = doCommon(evt, "fchmodat", 4)
	case symbols.SysFchownat:
		name, argc, result = doCommon(evt, "fchownat", 5)
	case symbols.SysOpenat:
		name, argc, result = doOpenat(evt, &args)
	case symbols.SysClose:
		name, argc, result = doCommon(evt, "close", 1)
	case symbols.SysLseek:
		name, argc, result = doCommon(evt, "lseek", 3)
	case symbols.SysSendfile:
		name, argc, result = doCommon(evt, "sendfile", 4)
	case symbols.SysRead:
		name, argc, result = doRead(evt, &args)
	case symbols.SysWrite:
		name, argc, result = doWrite(evt, &args)
	case symbols.SysWritev:
		name, argc, result = doCommon(evt, "writev", 3)
	case symbols.SysUnlinkat:
		name, argc, result = doUnlinkat(evt, &args)
	case symbols.SysFstatat:
		name, argc, result = doFstatat(evt, &args)
	case symbols.SysExitGroup:
		name, argc, result = doCommon(evt, "exit_group", 1)
	case symbols.SysSetTidAddress:
		name, argc, result = doSetTidAddress(evt, mask)
	case symbols.SysSetRobustList:
		name, argc, result = doCommon(evt, "set_robust_list", 2)
	case symbols.SysClockGettime:
		name, argc, result = doCommon(evt, "clock_gettime", 2)
	case symbols.SysUname:
		name, argc, result = doUname(evt, &args)
	case symbols.SysBrk:
		name, argc, result = doBrk(evt)
	case symbols.SysMount:
		name, argc, result = doCommon(evt, "mount", 5)
	case symbols.SysMsync:
		name, argc, result = doCommon(evt, "msync", 3)
	case symbols.SysMmap:
		name, argc, result = doMmap(evt, &args)
	case symbols.SysMunmap:
		name, argc, result = doCommon(evt, "munmap", 2)
	case symbols.SysMprotect:
		name, argc, result = doMprotect(evt, &args)
	case symbols.SysPrlimit64:
		name, argc, result = doCommon(evt, "prlimit64", 4)
	case symbols.SysGetrandom:
		name, argc, result = doCommon(evt, "getrandom", 3)
	case symbols.SysKill:
		name, argc, result = doKill(evt, &args, mask)
	case symbols.SysRtSigaction:
		name, argc, result = doRtSigaction(evt, &args)
	case symbols.SysRtSigprocmask:
		name, argc, result = doRtSigprocmask(evt, &args)
	case symbols.SysClone:
		name, argc, result = doClone(evt, mask)
	case symbols.SysExecve:
		name, argc, result = doExecve(evt, &args)
	case symbols.SysGettid:
		name, argc, result = doCommon(evt, "gettid", 0)
	case symbols.SysGetgid:
		name, argc, result = doCommon(evt, "getgid", 0)
	case symbols.SysGetegid:
		name, argc, result = doCommon(evt, "getegid", 0)
	case symbols.SysGetpid:
		name, argc, result = doGetpid(evt, mask)
	case symbols.SysGetppid:
		name, argc, result = doGetppid(evt, mask)
	case symbols.SysGetuid:
		name, argc, result = doCommon(evt, "getuid", 0)
	case symbols.SysGeteuid:
		name, argc, result = doCommon(evt, "geteuid", 0)
	case symbols.SysTgkill:
		name, argc, result = doCommon(evt, "tgkill", 3)
	case symbols.SysWait4:
		name, argc, result = doWait4(evt, &args, mask)
	case symbols.SysGetdents64:
		name, argc, result = doCommon(evt, "getdents64", 3)
	default:
		name, argc, result = fmt.Sprintf("sys_%d", evt.Head.Ax[7]), 7, fmt.Sprintf("%#x", evt.Result)
	}
	return name, argc, result, args
}

// doCommon is the default formatter: unchanged name/argc, result shown
// as an errno name on failure (result <= 0) or hex on success.
func doCommon(evt *wire.TraceEvent, name string, argc int) (string, int, string) {
	return name, argc, resultOrErrno(evt)
}

func resultOrErrno(evt *wire.TraceEvent) string {
	if evt.Result <= 0 {
		return symbols.ErrnoName(evt.Result)
	}
	return fmt.Sprintf("%#x", evt.Result)
}

func doBrk(evt *wire.TraceEvent) (string, int, string) {
	return "brk", 1, fmt.Sprintf("%#x", evt.Result)
}
