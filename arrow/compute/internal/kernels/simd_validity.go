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
	"fmt"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/array"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/compute/internal/simd"
	"github.com/a2un/arrow/arrow/internal/debug"
)

// IsValidMask returns the validity of the width lanes starting at slot i of
// an array of the given length. Lane j is set when slot i+j is before length
// and, if bitmap is not nil, its bit is set in bitmap.
func IsValidMask(bitmap *bitutil.Bitmap, i, width, length int) simd.Mask {
	mask := simd.AllLanes(width)
	if bitmap != nil {
		for j := i; j < min(length, i+width); j++ {
			if !bitmap.IsSet(j) {
				mask = mask.Clear(j - i)
			}
		}
	}

	// lanes past the end hold padding, whatever the bitmap says
	for j := max(length, i); j < i+width; j++ {
		mask = mask.Clear(j - i)
	}
	return mask
}

// LoadSetInvalid loads lanes.Width() values starting at slot i and replaces
// every lane that IsValidMask reports invalid with fill. The length of the
// array is values.Len(), and bitmap is usually the output validity of the
// kernel rather than the validity of values.
func LoadSetInvalid[T arrow.NumericType](lanes simd.Lanes[T], values simd.Padded[T], bitmap *bitutil.Bitmap, i int, fill T) simd.Vec[T] {
	width := lanes.Width()
	loaded := lanes.Load(values.Window(i, width))
	mask := IsValidMask(bitmap, i, width, values.Len())
	return lanes.MaskedSelect(mask, loaded, lanes.Broadcast(fill))
}

// MaskedLaneReader walks a numeric array one register at a time, yielding
// each lane group with its invalid lanes set to a fill value.
//
// The reader does not own bitmap; it must stay alive while reading.
type MaskedLaneReader[T arrow.NumericType] struct {
	lanes  simd.Lanes[T]
	values simd.Padded[T]
	bitmap *bitutil.Bitmap
	fill   T
	pos    int
}

// NewMaskedLaneReader returns a reader over the values of arr. Values
// without lanes.Width() slots of padding, such as arrays built over
// foreign memory, are copied once into a padded slice.
func NewMaskedLaneReader[T arrow.NumericType](lanes simd.Lanes[T], arr *array.Numeric[T], bitmap *bitutil.Bitmap, fill T) *MaskedLaneReader[T] {
	values, err := simd.NewPadded(arr.Values(), lanes.Width())
	if err != nil {
		debug.Log(func() string {
			return fmt.Sprintf("masked lane reader: copying %s values: %v", arr.DataType(), err)
		})
		values = simd.CopyPadded(arr.Values(), lanes.Width())
	}

	return &MaskedLaneReader[T]{
		lanes:  lanes,
		values: values,
		bitmap: bitmap,
		fill:   fill,
	}
}

// Pos returns the slot at which the next lane group starts.
func (r *MaskedLaneReader[T]) Pos() int { return r.pos }

// Next returns the next lane group, or false once every slot has been read.
func (r *MaskedLaneReader[T]) Next() (simd.Vec[T], bool) {
	if r.pos >= r.values.Len() {
		return simd.Vec[T]{}, false
	}

	v := LoadSetInvalid(r.lanes, r.values, r.bitmap, r.pos, r.fill)
	r.pos += r.lanes.Width()
	return v, true
}
