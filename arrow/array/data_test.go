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
	"testing"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/stretchr/testify/assert"
)

func TestDataReset(t *testing.T) {
	var (
		buffers1 = make([]*memory.Buffer, 0, 3)
		buffers2 = make([]*memory.Buffer, 0, 3)
	)
	for i := 0; i < cap(buffers1); i++ {
		buffers1 = append(buffers1, memory.NewBufferBytes([]byte("some-bytes1")))
		buffers2 = append(buffers2, memory.NewBufferBytes([]byte("some-bytes2")))
	}

	data := NewData(arrow.PrimitiveTypes.Int32, 10, buffers1, nil, 0, 0)
	data.Reset(arrow.PrimitiveTypes.Int64, 5, buffers2, nil, 1, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, buffers2, data.Buffers())
		assert.Equal(t, arrow.PrimitiveTypes.Int64, data.DataType())
		assert.Equal(t, 1, data.NullN())
		assert.Equal(t, 2, data.Offset())
		assert.Equal(t, 5, data.Len())

		// Make sure it works when resetting the data with its own buffers (new buffers are retained
		// before old ones are released.)
		data.Reset(arrow.PrimitiveTypes.Int64, 5, data.Buffers(), nil, 1, 2)
	}
}

func TestSliceData(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := NewNumericBuilder[int32](mem)
	defer bldr.Release()
	bldr.AppendValues([]int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, []bool{true, false, true, true, false, true, true, true, true, false})

	arr := bldr.NewNumericArray()
	defer arr.Release()
	assert.Equal(t, 3, arr.NullN())

	tests := []struct {
		i, j  int64
		nulls int
		vals  []int32
	}{
		{0, 10, 3, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{1, 5, 2, []int32{2, 3, 4, 5}},
		{5, 9, 0, []int32{6, 7, 8, 9}},
		{9, 9, 0, []int32{}},
	}
	for _, tt := range tests {
		data := NewSliceData(arr.Data(), tt.i, tt.j)
		assert.Equal(t, int(tt.i), data.Offset())
		assert.Equal(t, int(tt.j-tt.i), data.Len())
		assert.Equal(t, tt.nulls, data.NullN())

		slice := NewNumericData[int32](data)
		assert.Equal(t, tt.vals, slice.Values())
		slice.Release()
		data.Release()
	}

	assert.Panics(t, func() { NewSliceData(arr.Data(), 5, 11) })
	assert.Panics(t, func() { NewSliceData(arr.Data(), 5, 4) })
}

func TestDataChildrenRetained(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	child := NewNumericBuilder[int64](mem)
	defer child.Release()
	child.AppendValues([]int64{1, 2, 3}, nil)
	values := child.NewNumericArray()

	offsets := memory.NewBufferBytes(arrow.GetBytes([]int32{0, 1, 3}))
	data := NewData(arrow.ListOf(arrow.PrimitiveTypes.Int64), 2, []*memory.Buffer{nil, offsets}, []arrow.ArrayData{values.Data()}, 0, 0)
	// the list data keeps the child alive
	values.Release()

	list := NewListData(data)
	data.Release()
	defer list.Release()

	assert.Equal(t, "[[1] [2 3]]", list.String())
}
