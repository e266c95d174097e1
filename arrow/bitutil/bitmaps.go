// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bitutil

import (
	"encoding/binary"

	"github.com/a2un/arrow/arrow/internal/debug"
	"github.com/a2un/arrow/arrow/memory"
)

// BitmapReader is a simple bitmap reader for a byte slice.
type BitmapReader struct {
	bitmap []byte
	pos    int
	len    int

	current    byte
	byteOffset int
	bitOffset  int
}

// NewBitmapReader creates and returns a new bitmap reader for the given bitmap
func NewBitmapReader(bitmap []byte, offset, length int) *BitmapReader {
	curbyte := byte(0)
	if length > 0 && bitmap != nil {
		curbyte = bitmap[offset/8]
	}
	return &BitmapReader{
		bitmap:     bitmap,
		byteOffset: offset / 8,
		bitOffset:  offset % 8,
		current:    curbyte,
		len:        length,
	}
}

// Set returns true if the current bit is set
func (b *BitmapReader) Set() bool {
	return (b.current & (1 << b.bitOffset)) != 0
}

// NotSet returns true if the current bit is not set
func (b *BitmapReader) NotSet() bool {
	return (b.current & (1 << b.bitOffset)) == 0
}

// Next advances the reader to the next bit in the bitmap.
func (b *BitmapReader) Next() {
	b.bitOffset++
	b.pos++
	if b.bitOffset == 8 {
		b.bitOffset = 0
		b.byteOffset++
		if b.pos < b.len {
			b.current = b.bitmap[b.byteOffset]
		}
	}
}

// Pos returns the current bit position in the bitmap that the reader is looking at
func (b *BitmapReader) Pos() int { return b.pos }

// Len returns the total number of bits in the bitmap
func (b *BitmapReader) Len() int { return b.len }

// BitmapWriter is a simple writer for writing bitmaps to byte slices
type BitmapWriter struct {
	buf    []byte
	pos    int
	length int

	curByte    uint8
	bitMask    uint8
	byteOffset int
}

// NewBitmapWriter returns a sequential bitwise writer that preserves surrounding
// bit values as it writes.
func NewBitmapWriter(bitmap []byte, start, length int) *BitmapWriter {
	ret := &BitmapWriter{
		buf:        bitmap,
		length:     length,
		byteOffset: start / 8,
		bitMask:    BitMask[start%8],
	}
	if length > 0 {
		ret.curByte = bitmap[ret.byteOffset]
	}
	return ret
}

func (b *BitmapWriter) Pos() int { return b.pos }
func (b *BitmapWriter) Set()     { b.curByte |= b.bitMask }
func (b *BitmapWriter) Clear()   { b.curByte &= ^b.bitMask }

// Next increments the writer to the next bit for writing.
func (b *BitmapWriter) Next() {
	b.bitMask = b.bitMask << 1
	b.pos++
	if b.bitMask == 0 {
		b.bitMask = 0x01
		b.buf[b.byteOffset] = b.curByte
		b.byteOffset++
		if b.pos < b.length {
			b.curByte = b.buf[b.byteOffset]
		}
	}
}

// AppendBools writes a series of booleans to the bitmapwriter and returns
// the number of bits that were written.
func (b *BitmapWriter) AppendBools(in []bool) int {
	space := min(b.length-b.pos, len(in))
	if space == 0 {
		return 0
	}

	for _, v := range in[:space] {
		if v {
			b.Set()
		} else {
			b.Clear()
		}
		b.Next()
	}
	return space
}

// Finish flushes the final byte out to the byteslice in case it was not already
// on a byte aligned boundary.
func (b *BitmapWriter) Finish() {
	if b.length > 0 && (b.bitMask != 0x01 || b.pos < b.length) {
		b.buf[b.byteOffset] = b.curByte
	}
}

type bitOp struct {
	opWord func(uint64, uint64) uint64
	opByte func(byte, byte) byte
	opBool func(bool, bool) bool
}

var (
	bitAndOp = bitOp{
		opWord: func(l, r uint64) uint64 { return l & r },
		opByte: func(l, r byte) byte { return l & r },
		opBool: func(l, r bool) bool { return l && r },
	}
	bitOrOp = bitOp{
		opWord: func(l, r uint64) uint64 { return l | r },
		opByte: func(l, r byte) byte { return l | r },
		opBool: func(l, r bool) bool { return l || r },
	}
)

// alignedBitmapOp combines whole bytes. All three offsets are multiples of 8,
// so the trailing bits of the last output byte are overwritten as well.
func alignedBitmapOp(op bitOp, left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64) {
	debug.Assert(IsMultipleOf8(lOffset) && IsMultipleOf8(rOffset) && IsMultipleOf8(outOffset),
		"aligned bitmap op called with unaligned offsets")

	nbytes := BytesForBits(length)
	left = left[lOffset/8 : lOffset/8+nbytes]
	right = right[rOffset/8 : rOffset/8+nbytes]
	out = out[outOffset/8 : outOffset/8+nbytes]

	for len(out) >= uint64SizeBytes {
		binary.LittleEndian.PutUint64(out, op.opWord(
			binary.LittleEndian.Uint64(left), binary.LittleEndian.Uint64(right)))
		left, right, out = left[uint64SizeBytes:], right[uint64SizeBytes:], out[uint64SizeBytes:]
	}
	for i := range out {
		out[i] = op.opByte(left[i], right[i])
	}
}

func unalignedBitmapOp(op bitOp, left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64) {
	var (
		lrdr = NewBitmapReader(left, int(lOffset), int(length))
		rrdr = NewBitmapReader(right, int(rOffset), int(length))
		wr   = NewBitmapWriter(out, int(outOffset), int(length))
	)
	for i := int64(0); i < length; i++ {
		if op.opBool(lrdr.Set(), rrdr.Set()) {
			wr.Set()
		} else {
			wr.Clear()
		}
		lrdr.Next()
		rrdr.Next()
		wr.Next()
	}
	wr.Finish()
}

func bitmapOp(op bitOp, left, right []byte, lOffset, rOffset int64, out []byte, outOffset, length int64) {
	if IsMultipleOf8(lOffset) && IsMultipleOf8(rOffset) && IsMultipleOf8(outOffset) {
		alignedBitmapOp(op, left, right, lOffset, rOffset, out, outOffset, length)
		return
	}
	unalignedBitmapOp(op, left, right, lOffset, rOffset, out, outOffset, length)
}

func bitmapOpAlloc(mem memory.Allocator, op bitOp, left, right []byte, lOffset, rOffset int64, length, outOffset int64) *memory.Buffer {
	bits := length + outOffset
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(int(BytesForBits(bits)))
	bitmapOp(op, left, right, lOffset, rOffset, buf.Bytes(), outOffset, length)
	return buf
}

// BitmapAnd writes left AND right into out for length bits, reading left
// from bit lOffset, right from bit rOffset and writing from bit outOffset.
// When all offsets are multiples of 8 whole bytes are combined at once.
func BitmapAnd(left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64) {
	bitmapOp(bitAndOp, left, right, lOffset, rOffset, out, outOffset, length)
}

// BitmapOr is like BitmapAnd, using OR.
func BitmapOr(left, right []byte, lOffset, rOffset int64, out []byte, outOffset int64, length int64) {
	bitmapOp(bitOrOp, left, right, lOffset, rOffset, out, outOffset, length)
}

// BitmapAndAlloc allocates a new buffer from mem and writes left AND right
// into it starting at bit outOffset.
func BitmapAndAlloc(mem memory.Allocator, left, right []byte, lOffset, rOffset int64, length, outOffset int64) *memory.Buffer {
	return bitmapOpAlloc(mem, bitAndOp, left, right, lOffset, rOffset, length, outOffset)
}

// BitmapOrAlloc is like BitmapAndAlloc, using OR.
func BitmapOrAlloc(mem memory.Allocator, left, right []byte, lOffset, rOffset int64, length, outOffset int64) *memory.Buffer {
	return bitmapOpAlloc(mem, bitOrOp, left, right, lOffset, rOffset, length, outOffset)
}

// BitmapEquals compares length bits of left starting at lOffset with length
// bits of right starting at rOffset.
func BitmapEquals(left, right []byte, lOffset, rOffset int64, length int64) bool {
	if IsMultipleOf8(lOffset) && IsMultipleOf8(rOffset) {
		nbytes := length / 8
		l, r := left[lOffset/8:], right[rOffset/8:]
		for i := int64(0); i < nbytes; i++ {
			if l[i] != r[i] {
				return false
			}
		}
		if tail := length % 8; tail != 0 {
			mask := byte(1<<tail) - 1
			return (l[nbytes]^r[nbytes])&mask == 0
		}
		return true
	}

	lrdr := NewBitmapReader(left, int(lOffset), int(length))
	rrdr := NewBitmapReader(right, int(rOffset), int(length))
	for i := int64(0); i < length; i++ {
		if lrdr.Set() != rrdr.Set() {
			return false
		}
		lrdr.Next()
		rrdr.Next()
	}
	return true
}

// SetBitsTo sets length bits of bits starting at startOffset to areSet.
func SetBitsTo(bits []byte, startOffset, length int64, areSet bool) {
	if length == 0 {
		return
	}

	var fill byte
	if areSet {
		fill = 0xFF
	}
	for length > 0 && !IsMultipleOf8(startOffset) {
		SetBitTo(bits, int(startOffset), areSet)
		startOffset++
		length--
	}
	nbytes := length / 8
	memory.Set(bits[startOffset/8:startOffset/8+nbytes], fill)
	for i := startOffset + nbytes*8; i < startOffset+length; i++ {
		SetBitTo(bits, int(i), areSet)
	}
}
