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

package kernels

import (
	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/memory"
)

type execBufBuilder struct {
	mem    memory.Allocator
	buffer *memory.Buffer
	data   []byte
	sz     int
}

func (bldr *execBufBuilder) reserve(additional int) {
	if bldr.buffer == nil {
		bldr.buffer = memory.NewResizableBuffer(bldr.mem)
	}

	mincap := bldr.sz + additional
	if mincap <= cap(bldr.data) {
		return
	}
	bldr.buffer.ResizeNoShrink(mincap)
	bldr.data = bldr.buffer.Buf()
}

func (bldr *execBufBuilder) unsafeAppend(data []byte) {
	copy(bldr.data[bldr.sz:], data)
	bldr.sz += len(data)
}

// finish hands over the built buffer. The allocation keeps
// memory.SIMDPadding zeroed bytes past the last value.
func (bldr *execBufBuilder) finish() (buf *memory.Buffer) {
	if bldr.buffer == nil {
		bldr.buffer = memory.NewResizableBuffer(bldr.mem)
	}

	bldr.buffer.Reserve(memory.PaddedSize(bldr.sz))
	bldr.buffer.ResizeNoShrink(bldr.sz)
	memory.Set(bldr.buffer.Buf()[bldr.sz:], 0)
	memory.AssertBuffer("execBufBuilder.finish", bldr.buffer)

	buf = bldr.buffer
	bldr.buffer, bldr.data, bldr.sz = nil, nil, 0
	return
}

func (bldr *execBufBuilder) release() {
	if bldr.buffer != nil {
		bldr.buffer.Release()
		bldr.buffer, bldr.data, bldr.sz = nil, nil, 0
	}
}

// bufferBuilder accumulates fixed-width values into a memory.Buffer.
type bufferBuilder[T arrow.NumericType] struct {
	execBufBuilder
}

func newBufferBuilder[T arrow.NumericType](mem memory.Allocator) *bufferBuilder[T] {
	return &bufferBuilder[T]{
		execBufBuilder: execBufBuilder{
			mem: mem,
		},
	}
}

func (b *bufferBuilder[T]) reserve(additional int) {
	b.execBufBuilder.reserve(additional * arrow.SizeOf[T]())
}

func (b *bufferBuilder[T]) unsafeAppend(value T) {
	arrow.CastFromBytesTo[T](b.data[b.sz:])[0] = value
	b.sz += arrow.SizeOf[T]()
}

func (b *bufferBuilder[T]) unsafeAppendSlice(values []T) {
	b.execBufBuilder.unsafeAppend(arrow.GetBytes(values))
}

func (b *bufferBuilder[T]) len() int { return b.sz / arrow.SizeOf[T]() }

type validityBuilder struct {
	mem    memory.Allocator
	buffer *memory.Buffer

	data       []byte
	bitLength  int
	falseCount int
}

func (v *validityBuilder) Reserve(n int64) {
	if v.buffer == nil {
		v.buffer = memory.NewResizableBuffer(v.mem)
	}

	v.buffer.Reserve(int(bitutil.BytesForBits(int64(v.bitLength) + n)))
	v.data = v.buffer.Buf()
}

func (v *validityBuilder) UnsafeAppend(val bool) {
	bitutil.SetBitTo(v.data, v.bitLength, val)
	if !val {
		v.falseCount++
	}
	v.bitLength++
}

// Finish returns the bitmap built so far, or nil if every appended bit was
// set. The null count is reset along with the length.
func (v *validityBuilder) Finish() (buf *memory.Buffer, nulls int) {
	nulls = v.falseCount
	if v.buffer != nil && nulls == 0 {
		v.buffer.Release()
		v.buffer = nil
	}
	if v.buffer != nil {
		v.buffer.Resize(int(bitutil.BytesForBits(int64(v.bitLength))))
		memory.AssertBuffer("validityBuilder.Finish", v.buffer)
	}

	v.bitLength, v.falseCount = 0, 0
	buf, v.buffer, v.data = v.buffer, nil, nil
	return
}
