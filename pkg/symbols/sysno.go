/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Linux generic syscall numbers, as used by the traced RISC-V kernel.
package symbols

const (
	SysGetcwd         uint64 = 0x11
	SysDup3           uint64 = 0x18
	SysFcntl          uint64 = 0x19
	SysIoctl          uint64 = 0x1d
	SysMkdirat        uint64 = 0x22
	SysUnlinkat       uint64 = 0x23
	SysMount          uint64 = 0x28
	SysFaccessat      uint64 = 0x30
	SysChdir          uint64 = 0x31
	SysFchmodat       uint64 = 0x35
	SysFchownat       uint64 = 0x36
	SysOpenat         uint64 = 0x38
	SysClose          uint64 = 0x39
	SysGetdents64     uint64 = 0x3d
	SysLseek          uint64 = 0x3e
	SysRead           uint64 = 0x3f
	SysWrite          uint64 = 0x40
	SysWritev         uint64 = 0x42
	SysSendfile       uint64 = 0x47
	SysFstatat        uint64 = 0x4f
	SysExitGroup      uint64 = 0x5e
	SysSetTidAddress  uint64 = 0x60
	SysSetRobustList  uint64 = 0x63
	SysClockGettime   uint64 = 0x71
	SysKill           uint64 = 0x81
	SysTgkill         uint64 = 0x83
	SysRtSigaction    uint64 = 0x86
	SysRtSigprocmask  uint64 = 0x87
	SysRtSigreturn    uint64 = 0x8b
	SysUname          uint64 = 0xa0
	SysGetpid         uint64 = 0xac
	SysGetppid        uint64 = 0xad
	SysGetuid         uint64 = 0xae
	SysGeteuid        uint64 = 0xaf
	SysGetgid         uint64 = 0xb0
	SysGetegid        uint64 = 0xb1
	SysGettid         uint64 = 0xb2
	SysBrk            uint64 = 0xd6
	SysMunmap         uint64 = 0xd7
	SysClone          uint64 = 0xdc
	SysExecve         uint64 = 0xdd
	SysMmap           uint64 = 0xde
	SysMprotect       uint64 = 0xe2
	SysMsync          uint64 = 0xe3
	SysWait4          uint64 = 0x104
	SysPrlimit64      uint64 = 0x105
	SysGetrandom      uint64 = 0x116
)

// MaxSyscallNbr bounds the syscall numbers this tracer's kernel build can emit.
const MaxSyscallNbr uint64 = 451
