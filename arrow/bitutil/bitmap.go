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
	"errors"
	"fmt"

	"github.com/a2un/arrow/arrow/internal/debug"
	"github.com/a2un/arrow/arrow/memory"
)

// ErrUnaligned is returned when a Bitmap is requested at a bit offset that
// is not a multiple of 8.
var ErrUnaligned = errors.New("bitutil: bitmap offset is not byte-aligned")

// Bitmap is a read-only, byte-aligned view over a validity bitmap: bit i of
// the view describes logical slot i. A Bitmap never starts in the middle of
// a byte, so slicing and combining Bitmaps never needs to shift bits.
//
// A Bitmap holds a reference to its buffer and must be released.
type Bitmap struct {
	buf *memory.Buffer
}

// NewBitmap returns a view over the whole of buf, retaining it.
func NewBitmap(buf *memory.Buffer) *Bitmap {
	buf.Retain()
	return &Bitmap{buf: buf}
}

// NewBitmapBytes wraps b without copying. The caller keeps ownership of b.
func NewBitmapBytes(b []byte) *Bitmap {
	return &Bitmap{buf: memory.NewBufferBytes(b)}
}

// NewAlignedBitmap returns a view of buf starting at bit bitOffset. It fails
// with ErrUnaligned if bitOffset is not a multiple of 8.
func NewAlignedBitmap(buf *memory.Buffer, bitOffset int64) (*Bitmap, error) {
	if !IsMultipleOf8(bitOffset) {
		return nil, fmt.Errorf("%w: bit offset %d", ErrUnaligned, bitOffset)
	}

	byteOffset := int(bitOffset / 8)
	return &Bitmap{buf: memory.SliceBuffer(buf, byteOffset, buf.Len()-byteOffset)}, nil
}

func (b *Bitmap) Retain()  { b.buf.Retain() }
func (b *Bitmap) Release() { b.buf.Release() }

// Buffer returns the buffer backing the view.
func (b *Bitmap) Buffer() *memory.Buffer { return b.buf }

// Bytes returns the bitmap bytes, starting at the view's first byte.
func (b *Bitmap) Bytes() []byte { return b.buf.Bytes() }

// Len returns the length of the view in bytes.
func (b *Bitmap) Len() int { return b.buf.Len() }

// IsSet returns whether bit i of the view is set.
func (b *Bitmap) IsSet(i int) bool { return BitIsSet(b.buf.Bytes(), i) }

// SliceBytes returns a zero-copy view starting offset bytes into b.
func (b *Bitmap) SliceBytes(offset int) *Bitmap {
	return &Bitmap{buf: memory.SliceBuffer(b.buf, offset, b.buf.Len()-offset)}
}

// And returns a newly allocated bitmap holding the first nbytes of b AND other.
// nbytes must not exceed the length of either view.
func (b *Bitmap) And(mem memory.Allocator, other *Bitmap, nbytes int) *Bitmap {
	debug.Assert(nbytes <= b.Len() && nbytes <= other.Len(), "bitmap and: nbytes out of range")
	return &Bitmap{buf: BitmapAndAlloc(mem, b.Bytes(), other.Bytes(), 0, 0, int64(nbytes)*8, 0)}
}

// Or returns a newly allocated bitmap holding the first nbytes of b OR other.
// nbytes must not exceed the length of either view.
func (b *Bitmap) Or(mem memory.Allocator, other *Bitmap, nbytes int) *Bitmap {
	debug.Assert(nbytes <= b.Len() && nbytes <= other.Len(), "bitmap or: nbytes out of range")
	return &Bitmap{buf: BitmapOrAlloc(mem, b.Bytes(), other.Bytes(), 0, 0, int64(nbytes)*8, 0)}
}

// Equals reports whether the first nbits of b and other match.
func (b *Bitmap) Equals(other *Bitmap, nbits int64) bool {
	return BitmapEquals(b.Bytes(), other.Bytes(), 0, 0, nbits)
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("%08b", b.Bytes())
}
