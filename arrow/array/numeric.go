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

package array

import (
	"fmt"
	"math"
	"strings"

	"github.com/a2un/arrow/arrow"
	"github.com/goccy/go-json"
)

// Numeric represents an immutable sequence of fixed-width numeric values.
//
// The slice returned by Values keeps the capacity of the underlying buffer,
// so arrays built by NumericBuilder expose memory.SIMDPadding bytes past
// their last value.
type Numeric[T arrow.NumericType] struct {
	array
	values []T
}

type (
	Int8    = Numeric[int8]
	Int16   = Numeric[int16]
	Int32   = Numeric[int32]
	Int64   = Numeric[int64]
	Uint8   = Numeric[uint8]
	Uint16  = Numeric[uint16]
	Uint32  = Numeric[uint32]
	Uint64  = Numeric[uint64]
	Float32 = Numeric[float32]
	Float64 = Numeric[float64]
)

// NewNumericData returns a new Numeric array value, from data.
func NewNumericData[T arrow.NumericType](data arrow.ArrayData) *Numeric[T] {
	a := &Numeric[T]{}
	a.refCount.Store(1)
	a.setData(data.(*Data))
	return a
}

// Reset resets the array for re-use.
func (a *Numeric[T]) Reset(data *Data) {
	a.setData(data)
}

// Value returns the value at the specified index.
func (a *Numeric[T]) Value(i int) T { return a.values[i] }

// Values returns the values, starting at the array's offset.
func (a *Numeric[T]) Values() []T { return a.values }

func (a *Numeric[T]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i, v := range a.values {
		if i > 0 {
			o.WriteString(" ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString(NullValueStr)
		default:
			fmt.Fprintf(o, "%v", v)
		}
	}
	o.WriteString("]")
	return o.String()
}

func (a *Numeric[T]) setData(data *Data) {
	a.array.setData(data)
	vals := data.buffers[1]
	if vals != nil {
		a.values = arrow.CastFromBytesTo[T](vals.Bytes())
		beg := a.array.data.offset
		end := beg + a.array.data.length
		a.values = a.values[beg:end]
	}
}

func (a *Numeric[T]) GetOneForMarshal(i int) any {
	if a.IsNull(i) {
		return nil
	}

	switch v := any(a.values[i]).(type) {
	case float32:
		return marshalFloat(float64(v))
	case float64:
		return marshalFloat(v)
	default:
		return v
	}
}

func marshalFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return f
}

func (a *Numeric[T]) MarshalJSON() ([]byte, error) {
	vals := make([]any, a.Len())
	for i := range vals {
		vals[i] = a.GetOneForMarshal(i)
	}
	return json.Marshal(vals)
}

func arrayEqualNumeric[T arrow.NumericType](left, right *Numeric[T]) bool {
	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) {
			continue
		}
		if left.Value(i) != right.Value(i) {
			return false
		}
	}
	return true
}

var (
	_ arrow.Array = (*Int8)(nil)
	_ arrow.Array = (*Int16)(nil)
	_ arrow.Array = (*Int32)(nil)
	_ arrow.Array = (*Int64)(nil)
	_ arrow.Array = (*Uint8)(nil)
	_ arrow.Array = (*Uint16)(nil)
	_ arrow.Array = (*Uint32)(nil)
	_ arrow.Array = (*Uint64)(nil)
	_ arrow.Array = (*Float32)(nil)
	_ arrow.Array = (*Float64)(nil)
)
