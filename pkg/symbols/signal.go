/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package symbols

// Signal mask operations for rt_sigprocmask.
const (
	SigBlock   uint64 = 0
	SigUnblock uint64 = 1
	SigSetmask uint64 = 2
)

// SigAction flags (no restorer field in sigaction on riscv64).
const (
	SARestorer uintptr = 0x4000000
	SARestart  uintptr = 0x10000000
)

var signalNames = map[uint64]string{
	1: "SIGHUP", 2: "SIGINT", 3: "SIGQUIT", 4: "SIGILL", 5: "SIGTRAP",
	6: "SIGABRT", 7: "SIGBUS", 8: "SIGFPE", 9: "SIGKILL", 10: "SIGUSR1",
	11: "SIGSEGV", 12: "SIGUSR2", 13: "SIGPIPE", 14: "SIGALRM", 15: "SIGTERM",
	16: "SIGSTKFLT", 17: "SIGCHLD", 18: "SIGCONT", 19: "SIGSTOP", 20: "SIGTSTP",
	21: "SIGTTIN", 22: "SIGTTOU", 23: "SIGURG", 24: "SIGXCPU", 25: "SIGXFSZ",
	26: "SIGVTALRM", 27: "SIGPROF", 28: "SIGWINCH", 29: "SIGIO", 30: "SIGPWR",
	31: "SIGSYS",
	34: "SIGRTMIN", 35: "SIGRTMIN+1", 36: "SIGRTMIN+2", 37: "SIGRTMIN+3",
	38: "SIGRTMIN+4", 39: "SIGRTMIN+5", 40: "SIGRTMIN+6", 41: "SIGRTMIN+7",
	42: "SIGRTMIN+8", 43: "SIGRTMIN+9", 44: "SIGRTMIN+10", 45: "SIGRTMIN+11",
	46: "SIGRTMIN+12", 47: "SIGRTMIN+13", 48: "SIGRTMIN+14", 49: "SIGRTMIN+15",
	50: "SIGRTMAX-14", 51: "SIGRTMAX-13", 52: "SIGRTMAX-12", 53: "SIGRTMAX-11",
	54: "SIGRTMAX-10", 55: "SIGRTMAX-9", 56: "SIGRTMAX-8", 57: "SIGRTMAX-7",
	58: "SIGRTMAX-6", 59: "SIGRTMAX-5", 60: "SIGRTMAX-4", 61: "SIGRTMAX-3",
	62: "SIGRTMAX-2", 63: "SIGRTMAX-1", 64: "SIGRTMAX",
}

// SigName maps 1..64 to its canonical name, including the SIGRTMIN+k /
// SIGRTMAX-k ranges. Unknown signal numbers render as "SIGUNKNOWN".
func SigName(signo uint64) string {
	if name, ok := signalNames[signo]; ok {
		return name
	}
	return "SIGUNKNOWN"
}

// SAFlagName OR-decodes the sigaction flags this tracer cares about.
func SAFlagName(flags uintptr) string {
	var names []string
	if flags&SARestart != 0 {
		names = append(names, "SA_RESTART")
	}
	if flags&SARestorer != 0 {
		names = append(names, "SA_RESTORER")
	}
	if len(names) == 0 {
		return "0x0"
	}
	return joinPipe(names)
}
