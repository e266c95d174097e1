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

package compute

import (
	"context"
	"fmt"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/array"
	"github.com/a2un/arrow/arrow/compute/internal/kernels"
)

// TakeOptions are the options accepted by the list take functions.
type TakeOptions = kernels.TakeOptions

// DefaultTakeOptions checks every index against the bounds of the values
// being taken from.
func DefaultTakeOptions() *TakeOptions { return &TakeOptions{BoundsCheck: true} }

func unsupportedIndices(values, indices arrow.Array) error {
	return fmt.Errorf("%w: unsupported types for take operation: values=%s, indices=%s",
		arrow.ErrNotImplemented, values.DataType(), indices.DataType())
}

// TakeListValueIndices returns, for taking indices from list, the positions
// of the selected child values in list.ListValues() and the offsets of the
// output lists into them. Indices may be any integer array; a null index
// selects an empty list.
//
// With opts.BoundsCheck set, an index outside [0, list.Len()) fails with
// arrow.ErrIndex. Without it, out of range indices are undefined behavior.
func TakeListValueIndices(ctx context.Context, list *array.List, indices arrow.Array, opts TakeOptions) (*array.Uint32, []int32, error) {
	mem := GetAllocator(ctx)
	switch idx := indices.(type) {
	case *array.Int8:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Int16:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Int32:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Int64:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Uint8:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Uint16:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Uint32:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	case *array.Uint64:
		return kernels.TakeListValueIndices(mem, list, idx, opts.BoundsCheck)
	}
	return nil, nil, unsupportedIndices(list, indices)
}

// TakeList returns a list array whose element k is list element
// indices[k]. Element k is null when indices[k] is null or when the list
// element it selects is null. The child values of the list must be numeric
// or themselves lists.
func TakeList(ctx context.Context, list *array.List, indices arrow.Array, opts TakeOptions) (*array.List, error) {
	mem := GetAllocator(ctx)
	switch idx := indices.(type) {
	case *array.Int8:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Int16:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Int32:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Int64:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Uint8:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Uint16:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Uint32:
		return kernels.TakeList(mem, list, idx, opts)
	case *array.Uint64:
		return kernels.TakeList(mem, list, idx, opts)
	}
	return nil, unsupportedIndices(list, indices)
}

// TakeListArray is TakeList with DefaultTakeOptions, for callers holding
// a generic arrow.Array.
func TakeListArray(ctx context.Context, values, indices arrow.Array) (arrow.Array, error) {
	list, ok := values.(*array.List)
	if !ok {
		return nil, unsupportedIndices(values, indices)
	}

	out, err := TakeList(ctx, list, indices, *DefaultTakeOptions())
	if err != nil {
		return nil, err
	}
	return out, nil
}
