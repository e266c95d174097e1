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
	"strings"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/internal/debug"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/goccy/go-json"
)

// List is a variable-length list array with int32 offsets. Slot i holds the
// elements ListValues()[Offsets()[i]:Offsets()[i+1]].
type List struct {
	array
	values  arrow.Array
	offsets []int32
}

// NewListData returns a new List array value, from data.
func NewListData(data arrow.ArrayData) *List {
	a := &List{}
	a.refCount.Store(1)
	a.setData(data.(*Data))
	return a
}

func (a *List) setData(data *Data) {
	debug.Assert(len(data.buffers) >= 2, "list data should have 2 buffers")
	debug.Assert(len(data.childData) == 1, "list data should have exactly one child")
	a.array.setData(data)
	if buf := data.buffers[1]; buf != nil && buf.Len() > 0 {
		all := arrow.CastFromBytesTo[int32](buf.Bytes())
		a.offsets = all[data.offset : data.offset+data.length+1]
	}
	a.values = MakeFromData(data.childData[0])
}

// ListValues returns the child array holding the elements of every list.
// The child is not sliced: offsets index into it directly.
func (a *List) ListValues() arrow.Array { return a.values }

// Offsets returns the len+1 offsets of the list, starting at the array's
// own offset. They index into ListValues.
func (a *List) Offsets() []int32 { return a.offsets }

// ValueOffsets returns the [start, end) range of list i in ListValues.
func (a *List) ValueOffsets(i int) (start, end int64) {
	debug.Assert(i >= 0 && i < a.Len(), "index out of range")
	return int64(a.offsets[i]), int64(a.offsets[i+1])
}

// value returns list i as a new slice of the child. The caller releases it.
func (a *List) value(i int) arrow.Array {
	start, end := a.ValueOffsets(i)
	return NewSlice(a.values, start, end)
}

func (a *List) String() string {
	var o strings.Builder
	o.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteByte(' ')
		}
		if a.IsNull(i) {
			o.WriteString(NullValueStr)
			continue
		}
		v := a.value(i)
		fmt.Fprint(&o, v)
		v.Release()
	}
	o.WriteByte(']')
	return o.String()
}

func (a *List) MarshalJSON() ([]byte, error) {
	vals := make([]any, a.Len())
	for i := range vals {
		if a.IsNull(i) {
			continue
		}
		v := a.value(i)
		raw, err := json.Marshal(v)
		v.Release()
		if err != nil {
			return nil, err
		}
		vals[i] = json.RawMessage(raw)
	}
	return writeJSONArray(vals)
}

func (a *List) Retain() {
	a.array.Retain()
	a.values.Retain()
}

func (a *List) Release() {
	a.array.Release()
	a.values.Release()
}

// listValueEqual reports whether list i of left and right hold equal
// elements. The validity of slot i is checked by the caller.
func listValueEqual(left, right *List, i int) bool {
	l, r := left.value(i), right.value(i)
	defer l.Release()
	defer r.Release()
	return Equal(l, r)
}

func arrayEqualList(left, right *List) bool {
	for i := 0; i < left.Len(); i++ {
		if left.IsValid(i) && !listValueEqual(left, right, i) {
			return false
		}
	}
	return true
}

// ListBuilder builds a List. Each Append opens a new list; the elements
// appended to ValueBuilder until the next Append belong to it.
type ListBuilder struct {
	builder

	dtype   *arrow.ListType
	values  Builder
	offsets *Int32Builder
}

// NewListBuilder returns a builder of lists whose elements are of type etype.
func NewListBuilder(mem memory.Allocator, etype arrow.DataType) *ListBuilder {
	return NewListBuilderWithType(mem, arrow.ListOf(etype))
}

// NewListBuilderWithType is like NewListBuilder but keeps the nullability
// of dtype's element.
func NewListBuilderWithType(mem memory.Allocator, dtype *arrow.ListType) *ListBuilder {
	b := &ListBuilder{
		dtype:   dtype,
		values:  NewBuilder(mem, dtype.Elem()),
		offsets: NewNumericBuilder[int32](mem),
	}
	b.mem = mem
	b.refCount.Store(1)
	return b
}

func (b *ListBuilder) Type() arrow.DataType { return b.dtype }

func (b *ListBuilder) ValueBuilder() Builder { return b.values }

func (b *ListBuilder) Release() {
	debug.Assert(b.refCount.Load() > 0, "too many releases")
	if b.refCount.Add(-1) != 0 {
		return
	}
	if b.nullBitmap != nil {
		b.nullBitmap.Release()
		b.nullBitmap = nil
	}
	b.values.Release()
	b.offsets.Release()
}

func (b *ListBuilder) appendList(valid bool) {
	b.Reserve(1)
	b.unsafeAppendBoolToBitmap(valid)
	b.offsets.Append(int32(b.values.Len()))
}

func (b *ListBuilder) Append(valid bool) { b.appendList(valid) }
func (b *ListBuilder) AppendNull()       { b.appendList(false) }

// AppendValues appends len(valid) lists whose start offsets are given by
// offsets. The matching elements are appended to ValueBuilder separately.
func (b *ListBuilder) AppendValues(offsets []int32, valid []bool) {
	b.Reserve(len(valid))
	b.offsets.AppendValues(offsets, nil)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(valid))
}

func (b *ListBuilder) Reserve(n int) {
	b.builder.reserve(n, b.resizeBitmap)
	b.offsets.Reserve(n)
}

func (b *ListBuilder) Resize(n int) {
	b.resizeBitmap(n)
	b.offsets.Resize(n)
}

func (b *ListBuilder) resizeBitmap(n int) {
	n = max(n, minBuilderCapacity)
	if b.capacity == 0 {
		b.builder.init(n)
		b.offsets.init(n + 1)
		return
	}
	b.builder.resize(n, b.builder.init)
}

func (b *ListBuilder) NewArray() arrow.Array { return b.NewListArray() }

// NewListArray finishes the builder into a List and resets it for reuse.
func (b *ListBuilder) NewListArray() *List {
	if b.offsets.Len() != b.length+1 {
		b.offsets.Append(int32(b.values.Len()))
	}

	values := b.values.NewArray()
	defer values.Release()
	offsets := b.offsets.NewNumericArray()
	defer offsets.Release()

	data := NewData(b.dtype, b.length,
		[]*memory.Buffer{b.validity(), offsets.Data().Buffers()[1]},
		[]arrow.ArrayData{values.Data()}, b.nulls, 0)
	defer data.Release()
	b.reset()

	return NewListData(data)
}

func (b *ListBuilder) unmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if t == nil {
		b.AppendNull()
		return nil
	}
	if t != json.Delim('[') {
		return &json.UnmarshalTypeError{
			Value:  fmt.Sprint(t),
			Type:   reflect.TypeOf([]any{}),
			Offset: dec.InputOffset(),
			Struct: b.dtype.String(),
		}
	}

	b.Append(true)
	if err := b.values.unmarshal(dec); err != nil {
		return err
	}
	_, err = dec.Token() // ']'
	return err
}

func (b *ListBuilder) unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.unmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *ListBuilder) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("list builder must unpack from json array, found %s", t)
	}
	return b.unmarshal(dec)
}

var (
	_ arrow.Array = (*List)(nil)
	_ Builder     = (*ListBuilder)(nil)
)
