/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package render turns reconstructed flows into the newline-delimited
// text format described by spec.md §6, grounded on the `fmt`/`display`
// methods of original_source/lktrace/src/event.rs.
package render

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shilei-massclouds/lktrace/pkg/flow"
	"github.com/shilei-massclouds/lktrace/pkg/symbols"
	"github.com/shilei-massclouds/lktrace/pkg/syscalls"
	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// Event renders a single TraceEvent to its one-line form:
// `name(args...) -> result, usp: <hex>`. A Signal-Enter stage instead
// returns only its `Signal[sig] enter..` marker, matching the original's
// early return. A Signal-Exit stage prefixes its `Signal[sig] exit..`
// marker and then falls through to render the resumed syscall's line,
// matching the original's writeln-then-continue.
func Event(evt wire.TraceEvent, mask syscalls.Masker) string {
	if evt.Signal.Kind == wire.SigEnter {
		return fmt.Sprintf("Signal[%s] enter..", symbols.SigName(evt.Signal.Signo))
	}

	name, argc, result, args := syscalls.Dispatch(&evt, mask)
	line := fmt.Sprintf("%s(%s) -> %s, usp: %#x", name, joinArgs(args, argc), result, evt.Head.Usp)
	if evt.Signal.Kind == wire.SigExit {
		return fmt.Sprintf("Signal[%s] exit..\n%s", symbols.SigName(evt.Signal.Signo), line)
	}
	return line
}

func joinArgs(args syscalls.Args, argc int) string {
	if argc > len(args) {
		argc = len(args)
	}
	return strings.Join(args[:argc], ", ")
}

// Flow writes one completed thread flow's block: the `Task[<hex tid>]`
// header, one indexed line per event, and a trailing blank line.
func Flow(w *bufio.Writer, tid uint64, f *flow.Flow, mask syscalls.Masker) error {
	if _, err := fmt.Fprintf(w, "Task[%#x] ========>\n", tid); err != nil {
		return err
	}
	for i, evt := range f.Events {
		if _, err := fmt.Fprintf(w, "[%d]: %s\n", i, Event(evt, mask)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// TaskSequence writes the final `Task sequence:` block listing every
// TID in the order it first appeared, one hex value per line.
func TaskSequence(w *bufio.Writer, seq []uint64) error {
	if _, err := fmt.Fprintln(w, "Task sequence:"); err != nil {
		return err
	}
	for _, tid := range seq {
		if _, err := fmt.Fprintf(w, "%#x\n", tid); err != nil {
			return err
		}
	}
	return w.Flush()
}
