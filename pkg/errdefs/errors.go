/*
 * Copyright (c) 2020. Ant Group. All rights reserved.
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package errdefs gives sentinel/predicate pairs to structural invariant
// violations (ErrCorruptStream) and to the unknown-syscall anomaly
// (ErrUnknownSyscall), so callers decide exit codes and rendering
// behavior without string-matching error text. I/O failures have no
// sentinel here; they surface as the wrapped underlying error.
package errdefs

import (
	"github.com/pkg/errors"
)

var (
	// ErrCorruptStream marks a structural invariant violation: magic
	// mismatch, headsize mismatch, inconsistent entry/exit pairing, or
	// any other condition the reconstructor cannot recover from. The
	// stream is considered corrupted; partial rendering prior to the
	// failure is acceptable.
	ErrCorruptStream = errors.New("corrupt trace stream")

	// ErrUnknownSyscall tags the tolerated "unrecognized syscall number"
	// anomaly, kept distinct from ErrCorruptStream because it never
	// aborts analysis.
	ErrUnknownSyscall = errors.New("unknown syscall number")
)

// IsCorruptStream returns true if err (or its cause) is ErrCorruptStream.
func IsCorruptStream(err error) bool {
	return errors.Is(err, ErrCorruptStream)
}

// IsUnknownSyscall returns true if err (or its cause) is ErrUnknownSyscall.
func IsUnknownSyscall(err error) bool {
	return errors.Is(err, ErrUnknownSyscall)
}

// WrapCorrupt wraps err (typically surfaced from a recovered panic in
// pkg/flow) as ErrCorruptStream, preserving the original message as
// context.
func WrapCorrupt(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrCorruptStream, "%s: %s", msg, err)
}
