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
	"github.com/a2un/arrow/arrow/internal/debug"
)

// Lanes is the lane-wise instruction set for one element type.
type Lanes[T arrow.NumericType] interface {
	// Width is the number of T in one register.
	Width() int
	// Load reads Width values from the start of src.
	Load(src []T) Vec[T]
	// MaskedSelect takes lane j from a if m has lane j set and from b
	// otherwise.
	MaskedSelect(m Mask, a, b Vec[T]) Vec[T]
	// Broadcast returns a Vec with every lane set to v.
	Broadcast(v T) Vec[T]
}

type lanes[T arrow.NumericType] struct {
	width int
}

func (l lanes[T]) Width() int { return l.width }

func (l lanes[T]) Load(src []T) Vec[T] {
	debug.Assert(len(src) >= l.width, "simd: load past the end of src")
	v := Vec[T]{width: l.width}
	copy(v.lanes[:l.width], src[:l.width])
	return v
}

func (l lanes[T]) MaskedSelect(m Mask, a, b Vec[T]) Vec[T] {
	v := Vec[T]{width: l.width}
	for j := 0; j < l.width; j++ {
		if m.Lane(j) {
			v.lanes[j] = a.lanes[j]
		} else {
			v.lanes[j] = b.lanes[j]
		}
	}
	return v
}

func (l lanes[T]) Broadcast(x T) Vec[T] {
	v := Vec[T]{width: l.width}
	for j := 0; j < l.width; j++ {
		v.lanes[j] = x
	}
	return v
}

var registerBits = detectRegisterBits()

// RegisterBits returns the detected vector register size in bits.
func RegisterBits() int { return registerBits }

// For returns the native Lanes for T: as many lanes as fit in one register.
func For[T arrow.NumericType]() Lanes[T] {
	return lanes[T]{width: registerBits / (8 * arrow.SizeOf[T]())}
}

// WithWidth returns Lanes for T with a fixed number of lanes, for callers
// that must match a particular kernel. It panics unless 0 < width <= MaxWidth.
func WithWidth[T arrow.NumericType](width int) Lanes[T] {
	if width <= 0 || width > MaxWidth {
		panic(fmt.Errorf("%w: simd: lane width %d out of range (0, %d]", arrow.ErrInvalid, width, MaxWidth))
	}
	return lanes[T]{width: width}
}

var (
	Int8    = For[int8]()
	Int16   = For[int16]()
	Int32   = For[int32]()
	Int64   = For[int64]()
	Uint8   = For[uint8]()
	Uint16  = For[uint16]()
	Uint32  = For[uint32]()
	Uint64  = For[uint64]()
	Float32 = For[float32]()
	Float64 = For[float64]()
)

func init() {
	debug.Log(func() string {
		return fmt.Sprintf("simd: %d-bit registers, %d float64 lanes", registerBits, Float64.Width())
	})
}
