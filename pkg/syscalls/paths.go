/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

const parseStrErr = "[!parse_str_err!]"

// cString decodes a NUL-terminated byte buffer as a quoted string, or
// the parse-error marker when it is not valid UTF-8.
func cString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	if !utf8.Valid(data) {
		return parseStrErr
	}
	return fmt.Sprintf("%q", string(data))
}

// firstPayloadString locates the first payload, which carries a
// NUL-terminated string at its declared argument index, and rewrites
// that arg slot in place.
func firstPayloadString(evt *wire.TraceEvent, args *Args) {
	if len(evt.Payloads) == 0 {
		return
	}
	p := evt.Payloads[0]
	args[p.Index] = cString(p.Data)
}

func rewriteAtFDCWD(args *Args, slot int, reg uint64) {
	if reg == wire.AtFDCWD {
		args[slot] = "AT_FDCWD"
	}
}

func doOpenat(evt *wire.TraceEvent, args *Args) (string, int, string) {
	rewriteAtFDCWD(args, 0, evt.Head.Ax[0])
	firstPayloadString(evt, args)
	return doCommon(evt, "openat", 4)
}

func doGetcwd(evt *wire.TraceEvent, args *Args) (string, int, string) {
	firstPayloadString(evt, args)
	return doCommon(evt, "getcwd", 2)
}

func doChdir(evt *wire.TraceEvent, args *Args) (string, int, string) {
	firstPayloadString(evt, args)
	return doCommon(evt, "chdir", 1)
}

func doFaccessat(evt *wire.TraceEvent, args *Args) (string, int, string) {
	rewriteAtFDCWD(args, 0, evt.Head.Ax[0])
	firstPayloadString(evt, args)
	// faccessat has 3 args (no flags); faccessat2 has 4 with flags.
	return doCommon(evt, "faccessat", 3)
}

func doUnlinkat(evt *wire.TraceEvent, args *Args) (string, int, string) {
	rewriteAtFDCWD(args, 0, evt.Head.Ax[0])
	firstPayloadString(evt, args)
	return doCommon(evt, "unlinkat", 3)
}
