/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeHead(h TraceHead) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func baseHead() TraceHead {
	return TraceHead{
		Magic:     LKMagic,
		HeadSize:  headSize,
		TotalSize: headSize,
		InOut:     In,
		Cause:     UserEcall,
		Sscratch:  0x10,
	}
}

func TestParseEventNoPayload(t *testing.T) {
	h := baseHead()
	h.Ax[7] = 0x39 // close
	r := bufio.NewReader(bytes.NewReader(encodeHead(h)))

	evt, err := ParseEvent(r, 1)
	require.NoError(t, err)
	assert.Equal(t, LKMagic, evt.Head.Magic)
	assert.Equal(t, uint64(0x10), evt.Head.Sscratch)
	assert.Empty(t, evt.Payloads)
	assert.Equal(t, SigEmpty, evt.Signal.Kind)
}

func TestParseEventWithPayload(t *testing.T) {
	h := baseHead()
	data := []byte("/etc/passwd\x00")
	ph := PayloadHead{Magic: LKMagic, Index: 1, Size: uint32(len(data))}
	h.TotalSize = headSize + payloadHeadSize + uint32(len(data))

	var buf bytes.Buffer
	buf.Write(encodeHead(h))
	_ = binary.Write(&buf, binary.LittleEndian, ph)
	buf.Write(data)

	r := bufio.NewReader(&buf)
	evt, err := ParseEvent(r, 1)
	require.NoError(t, err)
	require.Len(t, evt.Payloads, 1)
	assert.Equal(t, 1, evt.Payloads[0].Index)
	assert.Equal(t, data, evt.Payloads[0].Data)
}

func TestParseEventBadMagic(t *testing.T) {
	h := baseHead()
	h.Magic = 0x1234
	r := bufio.NewReader(bytes.NewReader(encodeHead(h)))

	_, err := ParseEvent(r, 1)
	require.Error(t, err)
}

func TestParseEventBadCause(t *testing.T) {
	h := baseHead()
	h.Cause = 0
	r := bufio.NewReader(bytes.NewReader(encodeHead(h)))

	_, err := ParseEvent(r, 1)
	require.Error(t, err)
}

func TestParseEventShortRead(t *testing.T) {
	h := baseHead()
	raw := encodeHead(h)
	r := bufio.NewReader(bytes.NewReader(raw[:10]))

	_, err := ParseEvent(r, 1)
	require.Error(t, err)
}
