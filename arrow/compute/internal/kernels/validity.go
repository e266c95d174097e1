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

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/memory"
)

type bitmapOp int8

const (
	bitmapAnd bitmapOp = iota
	bitmapOr
)

// optionBitmap returns the validity bitmap of data as a byte-aligned view
// starting at data's first slot, or nil if data has no validity bitmap. The
// view must cover lenInBits bits.
func optionBitmap(data arrow.ArrayData, lenInBits int64) (*bitutil.Bitmap, error) {
	bufs := data.Buffers()
	if len(bufs) == 0 || bufs[0] == nil {
		return nil, nil
	}

	bm, err := bitutil.NewAlignedBitmap(bufs[0], int64(data.Offset()))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot combine validity of %s array: %w",
			arrow.ErrInvalid, data.DataType(), err)
	}
	if need := bitutil.BytesForBits(lenInBits); int64(bm.Len()) < need {
		bm.Release()
		return nil, fmt.Errorf("%w: validity bitmap of %s array has %d bytes, %d bits need %d",
			arrow.ErrInvalid, data.DataType(), bm.Len(), lenInBits, need)
	}
	return bm, nil
}

func combineOptionBitmap(mem memory.Allocator, op bitmapOp, left, right arrow.ArrayData, lenInBits int64) (*bitutil.Bitmap, error) {
	lbm, err := optionBitmap(left, lenInBits)
	if err != nil {
		return nil, err
	}

	rbm, err := optionBitmap(right, lenInBits)
	if err != nil {
		if lbm != nil {
			lbm.Release()
		}
		return nil, err
	}

	switch {
	case lbm == nil:
		return rbm, nil
	case rbm == nil:
		return lbm, nil
	}

	defer lbm.Release()
	defer rbm.Release()

	nbytes := int(bitutil.BytesForBits(lenInBits))
	if op == bitmapAnd {
		return lbm.And(mem, rbm, nbytes), nil
	}
	return lbm.Or(mem, rbm, nbytes), nil
}

// CombineOptionBitmap returns the validity bitmap of the result of a binary
// operation on left and right, where a slot is valid only when it is valid
// in both inputs.
//
// If neither input has a validity bitmap the result is nil. If only one does,
// the result is a zero-copy view of that bitmap starting at the input's
// offset. Otherwise a new bitmap of ceil(lenInBits/8) bytes is allocated
// from mem holding the bitwise AND of both.
//
// An input whose bitmap starts at an offset that is not a multiple of 8
// results in an error matching both arrow.ErrInvalid and
// bitutil.ErrUnaligned. A bitmap holding fewer than lenInBits bits from the
// input's offset results in arrow.ErrInvalid. The caller must release a
// non-nil result.
func CombineOptionBitmap(mem memory.Allocator, left, right arrow.ArrayData, lenInBits int64) (*bitutil.Bitmap, error) {
	return combineOptionBitmap(mem, bitmapAnd, left, right, lenInBits)
}

// CompareOptionBitmap is like CombineOptionBitmap, but a slot of the result
// is valid when it is valid in either input (bitwise OR).
func CompareOptionBitmap(mem memory.Allocator, left, right arrow.ArrayData, lenInBits int64) (*bitutil.Bitmap, error) {
	return combineOptionBitmap(mem, bitmapOr, left, right, lenInBits)
}
