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
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/internal/debug"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// NumericBuilder builds a Numeric array. The values buffer is always sized
// with memory.PaddedSize, so the arrays it produces can be read a full SIMD
// register past their last value.
type NumericBuilder[T arrow.NumericType] struct {
	builder

	dtype   arrow.FixedWidthDataType
	data    *memory.Buffer
	rawData []T
}

type (
	Int8Builder    = NumericBuilder[int8]
	Int16Builder   = NumericBuilder[int16]
	Int32Builder   = NumericBuilder[int32]
	Int64Builder   = NumericBuilder[int64]
	Uint8Builder   = NumericBuilder[uint8]
	Uint16Builder  = NumericBuilder[uint16]
	Uint32Builder  = NumericBuilder[uint32]
	Uint64Builder  = NumericBuilder[uint64]
	Float32Builder = NumericBuilder[float32]
	Float64Builder = NumericBuilder[float64]
)

func NewNumericBuilder[T arrow.NumericType](mem memory.Allocator) *NumericBuilder[T] {
	b := &NumericBuilder[T]{dtype: arrow.GetDataType[T]()}
	b.mem = mem
	b.refCount.Store(1)
	return b
}

func (b *NumericBuilder[T]) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *NumericBuilder[T]) Release() {
	debug.Assert(b.refCount.Load() > 0, "too many releases")

	if b.refCount.Add(-1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.data != nil {
			b.data.Release()
			b.data = nil
			b.rawData = nil
		}
	}
}

func (b *NumericBuilder[T]) Append(v T) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

func (b *NumericBuilder[T]) UnsafeAppend(v T) {
	bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	b.rawData[b.length] = v
	b.length++
}

func (b *NumericBuilder[T]) AppendNull() {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(false)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *NumericBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	copy(b.rawData[b.length:], v)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the i-th value appended so far.
func (b *NumericBuilder[T]) Value(i int) T { return b.rawData[i] }

func (b *NumericBuilder[T]) init(capacity int) {
	b.builder.init(capacity)

	b.data = memory.NewResizableBuffer(b.mem)
	b.data.Resize(memory.PaddedSize(capacity * arrow.SizeOf[T]()))
	b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *NumericBuilder[T]) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *NumericBuilder[T]) Resize(n int) {
	nBuilder := n
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(nBuilder, b.init)
		b.data.Resize(memory.PaddedSize(n * arrow.SizeOf[T]()))
		b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
	}
}

// NewArray creates a Numeric array from the memory buffers used by the builder
// and resets the builder so it can be used to build a new array.
func (b *NumericBuilder[T]) NewArray() arrow.Array {
	return b.NewNumericArray()
}

// NewNumericArray is like NewArray but returns the concrete array type.
func (b *NumericBuilder[T]) NewNumericArray() (a *Numeric[T]) {
	data := b.newData()
	a = NewNumericData[T](data)
	data.Release()
	return
}

func (b *NumericBuilder[T]) newData() (data *Data) {
	if b.data == nil {
		b.data = memory.NewPaddedBuffer(b.mem, 0)
	}

	// the allocation is kept as is so the padding past the last value
	// stays addressable
	b.data.ResizeNoShrink(b.length * arrow.SizeOf[T]())
	data = NewData(b.dtype, b.length, []*memory.Buffer{b.validity(), b.data}, nil, b.nulls, 0)
	b.reset()

	b.data.Release()
	b.data = nil
	b.rawData = nil

	return
}

func parseNumber[T arrow.NumericType](s string) (T, error) {
	dt := arrow.GetDataType[T]()
	switch dt.ID() {
	case arrow.FLOAT32, arrow.FLOAT64:
		v, err := strconv.ParseFloat(s, dt.BitWidth())
		return T(v), err
	case arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		v, err := strconv.ParseUint(s, 10, dt.BitWidth())
		return T(v), err
	default:
		v, err := strconv.ParseInt(s, 10, dt.BitWidth())
		return T(v), err
	}
}

func (b *NumericBuilder[T]) unmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	var s string
	switch v := t.(type) {
	case nil:
		b.AppendNull()
		return nil
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		s = v
	default:
		return &json.UnmarshalTypeError{
			Value:  fmt.Sprint(t),
			Type:   reflect.TypeOf(T(0)),
			Offset: dec.InputOffset(),
		}
	}

	val, err := parseNumber[T](s)
	if err != nil {
		return xerrors.Errorf("arrow/array: cannot parse %q as %s: %w", s, b.dtype.Name(), err)
	}
	b.Append(val)
	return nil
}

func (b *NumericBuilder[T]) unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.unmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *NumericBuilder[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("numeric builder must unpack from json array, found %s", delim)
	}

	return b.unmarshal(dec)
}

var (
	_ Builder = (*Int8Builder)(nil)
	_ Builder = (*Int16Builder)(nil)
	_ Builder = (*Int32Builder)(nil)
	_ Builder = (*Int64Builder)(nil)
	_ Builder = (*Uint8Builder)(nil)
	_ Builder = (*Uint16Builder)(nil)
	_ Builder = (*Uint32Builder)(nil)
	_ Builder = (*Uint64Builder)(nil)
	_ Builder = (*Float32Builder)(nil)
	_ Builder = (*Float64Builder)(nil)
)
