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

	"github.com/JohnCGriffin/overflow"
	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/array"
	"github.com/a2un/arrow/arrow/internal/debug"
	"github.com/a2un/arrow/arrow/memory"
)

// IndexType is the set of native types a take index array may hold.
type IndexType interface {
	arrow.IntType | arrow.UintType
}

// TakeOptions controls a take. With BoundsCheck unset, every non-null index
// must already be in range.
type TakeOptions struct {
	BoundsCheck bool
}

// TypeName returns the name the options are known by.
func (TakeOptions) TypeName() string { return "TakeOptions" }

// checkIndexBounds fails with arrow.ErrIndex if any non-null index is
// outside [0, upperLimit).
func checkIndexBounds[I IndexType](indices *array.Numeric[I], upperLimit uint64) error {
	values := indices.Values()
	if indices.NullN() == 0 {
		for _, v := range values {
			if v < 0 || uint64(v) >= upperLimit {
				return fmt.Errorf("%w: index %d out of bounds for length %d", arrow.ErrIndex, v, upperLimit)
			}
		}
		return nil
	}

	for i, v := range values {
		if indices.IsValid(i) && (v < 0 || uint64(v) >= upperLimit) {
			return fmt.Errorf("%w: index %d out of bounds for length %d", arrow.ErrIndex, v, upperLimit)
		}
	}
	return nil
}

// TakeListValueIndices computes what taking indices from list does to the
// list's child values. It returns the positions in list.ListValues() of
// every child value in the output, in output order, along with the
// len(indices)+1 offsets of the output list into those positions.
//
// A null index produces an empty output list. The returned Uint32 array
// has no nulls and must be released by the caller.
//
// If boundsCheck is false, every non-null index must be in [0, list.Len()).
func TakeListValueIndices[I IndexType](mem memory.Allocator, list *array.List, indices *array.Numeric[I], boundsCheck bool) (*array.Uint32, []int32, error) {
	if boundsCheck {
		if err := checkIndexBounds(indices, uint64(list.Len())); err != nil {
			return nil, nil, err
		}
	}

	var (
		offsets      = list.Offsets()
		indexValues  = indices.Values()
		indexNulls   = indices.NullN() > 0
		childIndices = newBufferBuilder[uint32](mem)
		newOffsets   = make([]int32, 1, len(indexValues)+1)
		offset       int32
	)

	// presize with a rough estimate of the selected child length
	if list.Len() > 0 {
		meanListLen := float64(offsets[list.Len()]-offsets[0]) / float64(list.Len())
		childIndices.reserve(int(meanListLen * float64(len(indexValues))))
	}

	for k, v := range indexValues {
		if indexNulls && indices.IsNull(k) {
			newOffsets = append(newOffsets, offset)
			continue
		}

		debug.Assert(v >= 0 && uint64(v) < uint64(list.Len()), "list take: index out of bounds")
		start, end := offsets[int64(v)], offsets[int64(v)+1]

		var ok bool
		if offset, ok = overflow.Add32(offset, end-start); !ok {
			childIndices.release()
			return nil, nil, fmt.Errorf("%w: list take: output exceeds %s offsets",
				arrow.ErrInvalid, arrow.PrimitiveTypes.Int32)
		}

		childIndices.reserve(int(end - start))
		for j := start; j < end; j++ {
			childIndices.unsafeAppend(uint32(j))
		}
		newOffsets = append(newOffsets, offset)
	}

	n := childIndices.len()
	buf := childIndices.finish()
	defer buf.Release()

	data := array.NewData(arrow.PrimitiveTypes.Uint32, n, []*memory.Buffer{nil, buf}, nil, 0, 0)
	defer data.Release()
	return array.NewNumericData[uint32](data), newOffsets, nil
}

// takeNumeric gathers values at each index. Every non-null index must be
// within the bounds of values.
func takeNumeric[T arrow.NumericType, I IndexType](mem memory.Allocator, values *array.Numeric[T], indices *array.Numeric[I]) *array.Numeric[T] {
	var (
		valueData   = values.Values()
		indexData   = indices.Values()
		outData     = newBufferBuilder[T](mem)
		validity    = validityBuilder{mem: mem}
		mayHaveNull = values.NullN() > 0 || indices.NullN() > 0
		zero        T
	)

	outData.reserve(len(indexData))
	if !mayHaveNull {
		for _, idx := range indexData {
			outData.unsafeAppend(valueData[int64(idx)])
		}
	} else {
		validity.Reserve(int64(len(indexData)))
		for k, idx := range indexData {
			if indices.IsValid(k) && values.IsValid(int(idx)) {
				validity.UnsafeAppend(true)
				outData.unsafeAppend(valueData[int64(idx)])
			} else {
				validity.UnsafeAppend(false)
				outData.unsafeAppend(zero)
			}
		}
	}

	n := outData.len()
	valueBuf := outData.finish()
	defer valueBuf.Release()
	nullBuf, nulls := validity.Finish()
	if nullBuf != nil {
		defer nullBuf.Release()
	}

	data := array.NewData(values.DataType(), n, []*memory.Buffer{nullBuf, valueBuf}, nil, nulls, 0)
	defer data.Release()
	return array.NewNumericData[T](data)
}

// takeChild gathers the child values of a list at positions produced by
// TakeListValueIndices.
func takeChild(mem memory.Allocator, values arrow.Array, indices *array.Uint32) (arrow.Array, error) {
	switch values := values.(type) {
	case *array.Int8:
		return takeNumeric(mem, values, indices), nil
	case *array.Int16:
		return takeNumeric(mem, values, indices), nil
	case *array.Int32:
		return takeNumeric(mem, values, indices), nil
	case *array.Int64:
		return takeNumeric(mem, values, indices), nil
	case *array.Uint8:
		return takeNumeric(mem, values, indices), nil
	case *array.Uint16:
		return takeNumeric(mem, values, indices), nil
	case *array.Uint32:
		return takeNumeric(mem, values, indices), nil
	case *array.Uint64:
		return takeNumeric(mem, values, indices), nil
	case *array.Float32:
		return takeNumeric(mem, values, indices), nil
	case *array.Float64:
		return takeNumeric(mem, values, indices), nil
	case *array.List:
		out, err := TakeList(mem, values, indices, TakeOptions{BoundsCheck: false})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: take of list child type %s", arrow.ErrNotImplemented, values.DataType())
}

// TakeList returns the list of list[indices[k]] for each k. An output slot
// is null when its index is null or when the selected list is null.
func TakeList[I IndexType](mem memory.Allocator, list *array.List, indices *array.Numeric[I], opts TakeOptions) (*array.List, error) {
	childIndices, offsets, err := TakeListValueIndices(mem, list, indices, opts.BoundsCheck)
	if err != nil {
		return nil, err
	}
	defer childIndices.Release()

	child, err := takeChild(mem, list.ListValues(), childIndices)
	if err != nil {
		return nil, err
	}
	defer child.Release()

	var nullBuf *memory.Buffer
	nulls := 0
	if list.NullN() > 0 || indices.NullN() > 0 {
		validity := validityBuilder{mem: mem}
		validity.Reserve(int64(indices.Len()))
		for k, idx := range indices.Values() {
			validity.UnsafeAppend(indices.IsValid(k) && list.IsValid(int(idx)))
		}
		nullBuf, nulls = validity.Finish()
		if nullBuf != nil {
			defer nullBuf.Release()
		}
	}

	offsetData := newBufferBuilder[int32](mem)
	offsetData.reserve(len(offsets))
	offsetData.unsafeAppendSlice(offsets)
	offsetBuf := offsetData.finish()
	defer offsetBuf.Release()

	data := array.NewData(list.DataType(), indices.Len(), []*memory.Buffer{nullBuf, offsetBuf},
		[]arrow.ArrayData{child.Data()}, nulls, 0)
	defer data.Release()
	return array.NewListData(data), nil
}
