/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package wire decodes the raw little-endian record stream produced by the
// ecall-tracing kernel build into TraceEvent values.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// LKMagic is the sentinel at the start of every TraceHead.
const LKMagic uint16 = 0xABCD

// UserEcall is the only trap cause this analyzer accepts.
const UserEcall uint64 = 8

// AtFDCWD is the well-known directory-fd sentinel (-100 as u64).
const AtFDCWD uint64 = ^uint64(100) + 1

// Direction of a boundary crossing.
const (
	In  uint64 = 0
	Out uint64 = 1
)

// TraceHead is the fixed-layout record header, bit-for-bit matching the
// producer's struct (spec.md §3/§6). Field order must not change: it is
// decoded in place with encoding/binary, not by name.
type TraceHead struct {
	Magic     uint16
	HeadSize  uint16
	TotalSize uint32
	InOut     uint64
	Cause     uint64
	Epc       uint64
	Ax        [8]uint64
	Usp       uint64
	Stack     [8]uint64
	OrigA0    uint64
	Satp      uint64
	Tp        uint64
	Sscratch  uint64
}

// headSize is the encoded size of TraceHead: the 8-byte magic/headsize/
// totalsize prefix plus 24 uint64 fields (InOut, Cause, Epc, Ax[8], Usp,
// Stack[8], OrigA0, Satp, Tp, Sscratch) = 8 + 24*8 = 200 bytes.
const headSize = 8 + 24*8

// PayloadHead precedes each variable-length payload chunk.
type PayloadHead struct {
	Magic uint16
	Index uint16
	Size  uint32
}

const payloadHeadSize = 8

// TracePayload is a decoded kernel-buffer chunk associated with one
// argument slot of one boundary crossing.
type TracePayload struct {
	InOut uint64
	Index int
	Data  []byte
}

// SigKind tags the synthesized signal-frame stage of a TraceEvent.
type SigKind int

const (
	SigEmpty SigKind = iota
	SigEnter
	SigExit
)

// SigStage is the (possibly absent) signal-frame annotation on an event.
type SigStage struct {
	Kind  SigKind
	Signo uint64
}

// TraceEvent is one fully decoded record: head, exit result, payloads
// accumulated from entry and exit, and the signal stage synthesized by
// the flow reconstructor (always SigEmpty immediately after ParseEvent).
type TraceEvent struct {
	Head     TraceHead
	Result   int64
	Payloads []TracePayload
	Signal   SigStage
	Level    int
	RawFmt   bool
}

// ParseEvent reads one record from r: a TraceHead followed by zero or
// more (PayloadHead, bytes) tuples totaling TotalSize-HeadSize bytes.
// It advances r by exactly Head.TotalSize bytes on success.
func ParseEvent(r *bufio.Reader, level int) (TraceEvent, error) {
	var head TraceHead
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		if err == io.EOF {
			return TraceEvent{}, io.EOF
		}
		return TraceEvent{}, errors.Wrap(err, "read trace head")
	}
	if head.Magic != LKMagic {
		return TraceEvent{}, errors.Errorf("corrupt stream: bad magic %#x", head.Magic)
	}
	if int(head.HeadSize) != headSize {
		return TraceEvent{}, errors.Errorf("corrupt stream: headsize %d != %d", head.HeadSize, headSize)
	}
	if head.TotalSize < uint32(head.HeadSize) {
		return TraceEvent{}, errors.Errorf("corrupt stream: totalsize %d < headsize %d", head.TotalSize, head.HeadSize)
	}
	if head.Cause != UserEcall {
		return TraceEvent{}, errors.Errorf("corrupt stream: cause %d != user ecall", head.Cause)
	}

	var payloads []TracePayload
	if remaining := int(head.TotalSize) - int(head.HeadSize); remaining > 0 {
		var err error
		payloads, err = ParsePayloads(r, head.InOut, remaining)
		if err != nil {
			return TraceEvent{}, err
		}
	}

	return TraceEvent{
		Head:     head,
		Result:   0,
		Payloads: payloads,
		Signal:   SigStage{Kind: SigEmpty},
		Level:    level,
	}, nil
}

// ParsePayloads repeatedly decodes a PayloadHead followed by its data
// until remaining bytes are exhausted. Every decoded payload records the
// inout of the enclosing event.
func ParsePayloads(r *bufio.Reader, inout uint64, remaining int) ([]TracePayload, error) {
	var out []TracePayload
	for remaining > 0 {
		if remaining < payloadHeadSize {
			return nil, errors.Errorf("corrupt stream: %d bytes left, too few for a payload head", remaining)
		}
		var ph PayloadHead
		if err := binary.Read(r, binary.LittleEndian, &ph); err != nil {
			return nil, errors.Wrap(err, "read payload head")
		}
		data := make([]byte, ph.Size)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.Wrap(err, "read payload body")
		}
		out = append(out, TracePayload{
			InOut: inout,
			Index: int(ph.Index),
			Data:  data,
		})
		remaining -= payloadHeadSize + int(ph.Size)
	}
	return out, nil
}
