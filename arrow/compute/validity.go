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

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/a2un/arrow/arrow/compute/internal/kernels"
)

// CombineValidity returns the validity bitmap for the first length slots
// of a binary operation on left and right in which a slot is valid only if
// it is valid in both inputs. A nil bitmap means every slot is valid.
//
// The validity bitmaps of both arrays must start on a byte boundary, that
// is both offsets must be multiples of 8 when the array has nulls. If not,
// the returned error matches arrow.ErrInvalid and bitutil.ErrUnaligned.
func CombineValidity(ctx context.Context, left, right arrow.Array, length int64) (*bitutil.Bitmap, error) {
	return kernels.CombineOptionBitmap(GetAllocator(ctx), left.Data(), right.Data(), length)
}

// CompareValidity is like CombineValidity, but a slot is valid if it is
// valid in either input.
func CompareValidity(ctx context.Context, left, right arrow.Array, length int64) (*bitutil.Bitmap, error) {
	return kernels.CompareOptionBitmap(GetAllocator(ctx), left.Data(), right.Data(), length)
}
