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

package arrow

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// IntType is a type constraint for raw values represented as signed
// integer types by Arrow. The raw int type is excluded because its size
// changes based on the architecture.
type IntType interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UintType is a type constraint for raw values represented as unsigned
// integer types by Arrow. uint and uintptr are excluded for the same reason
// as in IntType.
type UintType interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FloatType is a type constraint for raw floating point values.
type FloatType interface {
	constraints.Float
}

// NumericType covers every native value type with a fixed-width numeric
// Arrow type.
type NumericType interface {
	IntType | UintType | FloatType
}

// CastFromBytesTo reinterprets the slice b to a slice of type T. The
// capacity of the result covers the full capacity of b, so padding past the
// logical end of a buffer stays reachable.
//
// NOTE: len(b) must be a multiple of T's size.
func CastFromBytesTo[T NumericType](b []byte) []T {
	if cap(b) == 0 {
		return nil
	}
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	size := int(unsafe.Sizeof(*ptr))
	return unsafe.Slice(ptr, cap(b)/size)[:len(b)/size]
}

// GetBytes reinterprets a slice of T as its raw little-endian bytes.
func GetBytes[T NumericType](in []T) []byte {
	if len(in) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(in))), len(in)*int(unsafe.Sizeof(z)))
}

// SizeOf returns the number of bytes a single T occupies.
func SizeOf[T NumericType]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// GetDataType returns the Arrow data type for the native type T.
func GetDataType[T NumericType]() FixedWidthDataType {
	var z T
	switch any(z).(type) {
	case int8:
		return PrimitiveTypes.Int8
	case int16:
		return PrimitiveTypes.Int16
	case int32:
		return PrimitiveTypes.Int32
	case int64:
		return PrimitiveTypes.Int64
	case uint8:
		return PrimitiveTypes.Uint8
	case uint16:
		return PrimitiveTypes.Uint16
	case uint32:
		return PrimitiveTypes.Uint32
	case uint64:
		return PrimitiveTypes.Uint64
	case float32:
		return PrimitiveTypes.Float32
	case float64:
		return PrimitiveTypes.Float64
	}
	panic(fmt.Errorf("%w: no arrow data type for %T", ErrNotImplemented, z))
}
