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

package simd

import (
	"fmt"

	"github.com/a2un/arrow/arrow"
)

// Padded is a slice of values that may be read up to width elements past
// its length. Loading a full register at any index below Len never leaves
// the underlying allocation; lanes past Len hold unspecified values.
type Padded[T arrow.NumericType] struct {
	values []T
	width  int
}

// NewPadded wraps values without copying. It fails with arrow.ErrInvalid
// unless cap(values) >= len(values)+width.
//
// Arrays produced by array.NumericBuilder satisfy this for any register
// width reported by For.
func NewPadded[T arrow.NumericType](values []T, width int) (Padded[T], error) {
	if cap(values)-len(values) < width {
		return Padded[T]{}, fmt.Errorf("%w: simd: %d values with capacity %d cannot be read %d lanes past the end",
			arrow.ErrInvalid, len(values), cap(values), width)
	}
	return Padded[T]{values: values, width: width}, nil
}

// CopyPadded copies values into a new slice with room for width extra
// elements. The padding is zeroed.
func CopyPadded[T arrow.NumericType](values []T, width int) Padded[T] {
	out := make([]T, len(values), len(values)+width)
	copy(out, values)
	return Padded[T]{values: out, width: width}
}

// Len returns the number of values, not counting the padding.
func (p Padded[T]) Len() int { return len(p.values) }

// Width returns the padding width p was checked against.
func (p Padded[T]) Width() int { return p.width }

// Values returns the wrapped values.
func (p Padded[T]) Values() []T { return p.values }

// Window returns the w values starting at i, reaching into the padding
// when i+w > Len. It panics if w exceeds the padding width or i > Len.
func (p Padded[T]) Window(i, w int) []T {
	if w > p.width || i > len(p.values) {
		panic(fmt.Errorf("%w: simd: window [%d, %d) outside padded range of %d+%d values",
			arrow.ErrIndex, i, i+w, len(p.values), p.width))
	}
	return p.values[i : i+w : i+w]
}
