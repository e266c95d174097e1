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

package array_test

import (
	"testing"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/array"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFloat64Builder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[float64](mem)
	defer ab.Release()

	ab.Append(1)
	ab.Append(2)
	ab.Append(3)
	ab.AppendNull()
	ab.Append(5)
	ab.Append(6)
	ab.AppendNull()
	ab.Append(8)
	ab.Append(9)
	ab.Append(10)

	// check state of builder before NewNumericArray
	assert.Equal(t, 10, ab.Len(), "unexpected Len()")
	assert.Equal(t, 2, ab.NullN(), "unexpected NullN()")
	assert.Equal(t, 9.0, ab.Value(8))

	a := ab.NewNumericArray()

	// check state of builder after NewNumericArray
	assert.Zero(t, ab.Len(), "unexpected ArrayBuilder.Len(), NewNumericArray did not reset state")
	assert.Zero(t, ab.Cap(), "unexpected ArrayBuilder.Cap(), NewNumericArray did not reset state")
	assert.Zero(t, ab.NullN(), "unexpected ArrayBuilder.NullN(), NewNumericArray did not reset state")

	// check state of array
	assert.Equal(t, 2, a.NullN(), "unexpected null count")
	assert.Equal(t, []float64{1, 2, 3, 0, 5, 6, 0, 8, 9, 10}, a.Values(), "unexpected Values")
	assert.Equal(t, []byte{0xb7}, a.NullBitmapBytes()[:1]) // 4 bytes due to minBuilderCapacity
	assert.Len(t, a.Values(), 10, "unexpected length of Values")

	a.Release()

	ab.Append(7)
	ab.Append(8)

	a = ab.NewNumericArray()

	assert.Equal(t, 0, a.NullN())
	assert.Equal(t, []float64{7, 8}, a.Values())
	assert.Len(t, a.Values(), 2)

	a.Release()
}

func TestNumericBuilder_AppendValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[uint32](mem)
	defer ab.Release()

	exp := []uint32{0, 1, 2, 3}
	ab.AppendValues(exp, nil)
	ab.AppendValues(exp, []bool{true, false, true, false})
	assert.Panics(t, func() { ab.AppendValues(exp, []bool{true}) })

	a := ab.NewNumericArray()
	defer a.Release()

	assert.Equal(t, arrow.PrimitiveTypes.Uint32, a.DataType())
	assert.Equal(t, 8, a.Len())
	assert.Equal(t, 2, a.NullN())
	assert.Equal(t, []uint32{0, 1, 2, 3, 0, 1, 2, 3}, a.Values())
	assert.Equal(t, "[0 1 2 3 0 (null) 2 (null)]", a.String())
}

func TestNumericBuilder_Empty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int8](mem)
	defer ab.Release()

	want := []int8{1, 2, 3, 4}

	ab.AppendValues([]int8{}, nil)
	a := ab.NewNumericArray()
	assert.Zero(t, a.Len())
	// even an empty array is padded
	assert.GreaterOrEqual(t, cap(a.Values()), memory.SIMDPadding)
	a.Release()

	ab.AppendValues(nil, nil)
	a = ab.NewNumericArray()
	assert.Zero(t, a.Len())
	a.Release()

	ab.AppendValues(want, nil)
	a = ab.NewNumericArray()
	assert.Equal(t, want, a.Values())
	a.Release()

	ab.AppendValues([]int8{}, nil)
	ab.AppendValues(want, nil)
	a = ab.NewNumericArray()
	assert.Equal(t, want, a.Values())
	a.Release()
}

func TestNumericBuilder_Resize(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int16](mem)
	defer ab.Release()

	assert.Equal(t, 0, ab.Cap())
	assert.Equal(t, 0, ab.Len())

	ab.Reserve(63)
	assert.Equal(t, 64, ab.Cap())
	assert.Equal(t, 0, ab.Len())

	for i := 0; i < 63; i++ {
		ab.Append(0)
	}
	assert.Equal(t, 64, ab.Cap())
	assert.Equal(t, 63, ab.Len())

	ab.Resize(5)
	assert.Equal(t, 5, ab.Len())

	ab.Resize(32)
	assert.Equal(t, 5, ab.Len())
}

func TestNumericBuilder_UnmarshalJSON(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int64](mem)
	defer ab.Release()

	require.NoError(t, ab.UnmarshalJSON([]byte(`[1, null, 9223372036854775807, -4]`)))
	a := ab.NewNumericArray()
	defer a.Release()

	assert.Equal(t, []int64{1, 0, 9223372036854775807, -4}, a.Values())
	assert.True(t, a.IsNull(1))

	assert.Error(t, ab.UnmarshalJSON([]byte(`[1.5]`)))
	assert.Error(t, ab.UnmarshalJSON([]byte(`{"a": 1}`)))
	assert.Error(t, ab.UnmarshalJSON([]byte(`[true]`)))

	// clear out what the failed attempts appended
	ab.NewArray().Release()
}

func TestNewBuilder(t *testing.T) {
	mem := memory.NewGoAllocator()
	types := []arrow.DataType{
		arrow.PrimitiveTypes.Int8, arrow.PrimitiveTypes.Int16, arrow.PrimitiveTypes.Int32, arrow.PrimitiveTypes.Int64,
		arrow.PrimitiveTypes.Uint8, arrow.PrimitiveTypes.Uint16, arrow.PrimitiveTypes.Uint32, arrow.PrimitiveTypes.Uint64,
		arrow.PrimitiveTypes.Float32, arrow.PrimitiveTypes.Float64,
		arrow.ListOf(arrow.PrimitiveTypes.Int32),
	}
	for _, dt := range types {
		b := array.NewBuilder(mem, dt)
		assert.True(t, arrow.TypeEqual(dt, b.Type()), dt.Name())
		b.Release()
	}
}

func TestNumericBuilder_NoNullsOmitsBitmap(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilder[int64](mem)
	defer ab.Release()

	ab.AppendValues([]int64{1, 2, 3}, nil)
	a := ab.NewNumericArray()
	assert.Nil(t, a.Data().Buffers()[0])
	assert.Nil(t, a.NullBitmapBytes())
	assert.Zero(t, a.NullN())
	a.Release()

	ab.Append(1)
	ab.AppendNull()
	a = ab.NewNumericArray()
	defer a.Release()
	require.NotNil(t, a.Data().Buffers()[0])
	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(1))
}
