/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package syscalls

import (
	"encoding/binary"
	"fmt"

	"github.com/shilei-massclouds/lktrace/pkg/wire"
)

// kstat holds the fields of the kernel's stat payload (spec.md §6). The
// payload is kstatSize (116) bytes; the fields below span 120 bytes, so
// the upper four bytes of ctimeNs are not carried by the payload.
type kstat struct {
	dev, ino           uint64
	mode, nlink        uint32
	uid, gid           uint32
	rdev               uint64
	_pad0              uint64
	size               uint64
	blksize            uint32
	_pad1              uint32
	blocks             uint64
	atimeSec, atimeNs  int64
	mtimeSec, mtimeNs  int64
	ctimeSec, ctimeNs  int64
}

const kstatSize = 116

func decodeKStat(data []byte) kstat {
	var k kstat
	// Zero-fill up to the 120 bytes the fields span, so a kstatSize
	// payload decodes without reading past its end.
	buf := make([]byte, 120)
	copy(buf, data)
	r := bytesReader{buf}
	k.dev = r.u64()
	k.ino = r.u64()
	k.mode = r.u32()
	k.nlink = r.u32()
	k.uid = r.u32()
	k.gid = r.u32()
	k.rdev = r.u64()
	r.u64() // pad
	k.size = r.u64()
	k.blksize = r.u32()
	r.u32() // pad
	k.blocks = r.u64()
	k.atimeSec = r.i64()
	k.atimeNs = r.i64()
	k.mtimeSec = r.i64()
	k.mtimeNs = r.i64()
	k.ctimeSec = r.i64()
	k.ctimeNs = r.i64()
	return k
}

// bytesReader is a tiny little-endian cursor over a fixed byte buffer,
// matching the teacher's manual binary.LittleEndian decode idiom
// (pkg/layout/layout.go) rather than pulling in a struct-tag codec.
type bytesReader struct {
	b []byte
}

func (r *bytesReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.b[:4])
	r.b = r.b[4:]
	return v
}

func (r *bytesReader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.b[:8])
	r.b = r.b[8:]
	return v
}

func (r *bytesReader) i64() int64 {
	return int64(r.u64())
}

func doFstatat(evt *wire.TraceEvent, args *Args) (string, int, string) {
	rewriteAtFDCWD(args, 0, evt.Head.Ax[0])
	firstPayloadString(evt, args)
	if evt.Result == 0 {
		for _, p := range evt.Payloads {
			if p.Index == 2 && len(p.Data) >= kstatSize {
				args[2] = renderKStat(decodeKStat(p.Data), evt.Level == 2)
			}
		}
	}
	return doCommon(evt, "fstatat", 4)
}

func renderKStat(k kstat, anonymize bool) string {
	if !anonymize {
		return fmt.Sprintf(
			"{dev=%#x, ino=%d, mode=%#o, nlink=%d, rdev=%d, size=%d, blksize=%d, blocks=%d}",
			k.dev, k.ino, k.mode, k.nlink, k.rdev, k.size, k.blksize, k.blocks,
		)
	}
	return fmt.Sprintf(
		"{dev, ino, mode=%#o, nlink=%d, rdev=%d, size=%d, blksize, blocks=%d}",
		k.mode, k.nlink, k.rdev, k.size, k.blocks,
	)
}
