/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromCollectorObservations(t *testing.T) {
	assert.NotPanics(t, func() {
		Default.ObserveEvent(0)
		Default.ObserveEvent(1)
		Default.ObservePayloadBytes(128)
		Default.ObserveSignalFrame()
		Default.ObserveFlowFlushed()
		Default.SetFlowsActive(3)
	})
}

func TestNoopCollectorObservations(t *testing.T) {
	assert.NotPanics(t, func() {
		Noop.ObserveEvent(0)
		Noop.ObservePayloadBytes(1)
		Noop.ObserveSignalFrame()
		Noop.ObserveFlowFlushed()
		Noop.SetFlowsActive(0)
	})
}
