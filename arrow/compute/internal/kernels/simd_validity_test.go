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

package kernels_test

import (
	"testing"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/array"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/compute/internal/kernels"
	"github.com/a2un/arrow/arrow/compute/internal/simd"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

func TestIsValidMaskMultiplesOfThree(t *testing.T) {
	const (
		width  = 16
		length = 10
	)

	// bits past length are set too, they must be ignored
	bitmap := make([]byte, 2)
	for i := 0; i < width; i += 3 {
		bitutil.SetBit(bitmap, i)
	}

	mask := kernels.IsValidMask(bitutil.NewBitmapBytes(bitmap), 0, width, length)
	for j := 0; j < width; j++ {
		assert.Equalf(t, j%3 == 0 && j < length, mask.Lane(j), "lane %d", j)
	}
	assert.Equal(t, 4, mask.Count())
}

func TestIsValidMask(t *testing.T) {
	allSet := bitutil.NewBitmapBytes([]byte{0xFF, 0xFF, 0xFF})

	tests := []struct {
		name                 string
		bitmap               *bitutil.Bitmap
		start, width, length int
		want                 simd.Mask
	}{
		{"no bitmap", nil, 0, 8, 5, 0b00011111},
		{"no bitmap full", nil, 0, 4, 4, 0b1111},
		{"all set tail", allSet, 8, 8, 12, 0b00001111},
		{"past end", allSet, 16, 8, 10, 0},
		{"second group", bitutil.NewBitmapBytes([]byte{0x00, 0b10100101}), 8, 8, 16, 0b10100101},
		{"wide", nil, 0, 64, 100, ^simd.Mask(0)},
		{"wide tail", nil, 64, 64, 100, simd.AllLanes(36)},
		{"single lane", bitutil.NewBitmapBytes([]byte{0b10}), 1, 1, 2, 0b1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernels.IsValidMask(tt.bitmap, tt.start, tt.width, tt.length)
			assert.Equalf(t, tt.want, got, "want %b, got %b", tt.want, got)
		})
	}
}

func TestLoadSetInvalid(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr := fromJSON[*array.Int64](t, mem, arrow.PrimitiveTypes.Int64, `[null, 15, 5, 0]`)
	defer arr.Release()

	lanes := simd.WithWidth[int64](8)
	values, err := simd.NewPadded(arr.Values(), lanes.Width())
	require.NoError(t, err)

	// only slots 1 and 3 are valid in the bitmap handed in
	bitmap := bitutil.NewBitmapBytes([]byte{0b00001010})
	v := kernels.LoadSetInvalid(lanes, values, bitmap, 0, 1)
	assert.Equal(t, []int64{1, 15, 1, 0, 1, 1, 1, 1}, v.Values())

	v = kernels.LoadSetInvalid(lanes, values, nil, 2, -1)
	assert.Equal(t, []int64{5, 0, -1, -1, -1, -1, -1, -1}, v.Values())
}

func TestLoadSetInvalidNativeWidths(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr := fromJSON[*array.Float32](t, mem, arrow.PrimitiveTypes.Float32, `[1, 2, null, 4, 5, 6, 7, 8, 9]`)
	defer arr.Release()

	bitmap, err := bitutil.NewAlignedBitmap(arr.Data().Buffers()[0], int64(arr.Data().Offset()))
	require.NoError(t, err)
	defer bitmap.Release()

	lanes := simd.Float32
	values, err := simd.NewPadded(arr.Values(), lanes.Width())
	require.NoError(t, err)

	for i := 0; i < arr.Len(); i += lanes.Width() {
		v := kernels.LoadSetInvalid(lanes, values, bitmap, i, 0)
		for j := 0; j < lanes.Width(); j++ {
			if i+j < arr.Len() && arr.IsValid(i+j) {
				assert.Equal(t, arr.Value(i+j), v.Lane(j))
			} else {
				assert.Zero(t, v.Lane(j))
			}
		}
	}
}

func TestMaskedLaneReader(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr := fromJSON[*array.Float64](t, mem, arrow.PrimitiveTypes.Float64,
		`[0.5, null, 1.5, 2, null, null, 3.25, 4, 8, null, 16]`)
	defer arr.Release()

	bitmap, err := bitutil.NewAlignedBitmap(arr.Data().Buffers()[0], 0)
	require.NoError(t, err)
	defer bitmap.Release()

	rdr := kernels.NewMaskedLaneReader(simd.WithWidth[float64](4), arr, bitmap, 0)
	var (
		groups int
		sum    float64
	)
	for v, ok := rdr.Next(); ok; v, ok = rdr.Next() {
		sum += floats.Sum(v.Values())
		groups++
	}

	assert.Equal(t, 3, groups)
	assert.Equal(t, 12, rdr.Pos())
	assert.Equal(t, 35.25, sum)

	_, ok := rdr.Next()
	assert.False(t, ok)
}

func TestMaskedLaneReaderForeignMemory(t *testing.T) {
	raw := []float64{1, 2, 3, 4, 5}
	data := array.NewData(arrow.PrimitiveTypes.Float64, len(raw),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.GetBytes(raw))}, nil, 0, 0)
	defer data.Release()
	arr := array.NewNumericData[float64](data)
	defer arr.Release()

	// no room past the end, so the reader works on a padded copy
	_, err := simd.NewPadded(arr.Values(), 2)
	require.ErrorIs(t, err, arrow.ErrInvalid)

	rdr := kernels.NewMaskedLaneReader(simd.WithWidth[float64](2), arr, nil, -1)
	var got []float64
	for v, ok := rdr.Next(); ok; v, ok = rdr.Next() {
		got = append(got, v.Values()...)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, -1}, got)
}

func TestLoadSetInvalidConcurrentGroups(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewNumericBuilder[float64](mem)
	defer bldr.Release()
	var want float64
	for i := 0; i < 1000; i++ {
		if i%7 == 0 {
			bldr.AppendNull()
			continue
		}
		bldr.Append(float64(i))
		want += float64(i)
	}
	arr := bldr.NewNumericArray()
	defer arr.Release()

	bitmap, err := bitutil.NewAlignedBitmap(arr.Data().Buffers()[0], 0)
	require.NoError(t, err)
	defer bitmap.Release()

	lanes := simd.WithWidth[float64](8)
	values, err := simd.NewPadded(arr.Values(), lanes.Width())
	require.NoError(t, err)

	ngroups := (arr.Len() + lanes.Width() - 1) / lanes.Width()
	partial := make([]float64, ngroups)

	var g errgroup.Group
	for k := 0; k < ngroups; k++ {
		k := k
		g.Go(func() error {
			v := kernels.LoadSetInvalid(lanes, values, bitmap, k*lanes.Width(), 0)
			partial[k] = floats.Sum(v.Values())
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, want, floats.Sum(partial))
}
