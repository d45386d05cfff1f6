/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package analyzer

import (
	"bytes"
	"io"

	"golang.org/x/sync/errgroup"
)

// Batch analyzes multiple trace files concurrently (one goroutine per
// file, matching SPEC_FULL.md §6: engine instances never share
// events_map/tid_map/sighand_set). Output is serialized back into the
// input file order before being written to w, so stdout stays
// deterministic regardless of which file's reconstruction finishes
// first.
func Batch(w io.Writer, paths []string, opts Options) error {
	renders := make([][]byte, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			var buf bytes.Buffer
			errs[i] = Analyze(&buf, path, opts)
			renders[i] = buf.Bytes()
			return nil
		})
	}
	_ = g.Wait()

	var firstErr error
	for i, render := range renders {
		if len(render) > 0 {
			if _, err := w.Write(render); err != nil {
				return err
			}
		}
		if errs[i] != nil && firstErr == nil {
			firstErr = errs[i]
		}
	}
	return firstErr
}
