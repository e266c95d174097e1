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

	"github.com/a2un/arrow/arrow"
)

// Equal reports whether the two provided arrays are equal: same type,
// length and validity, and equal values in every valid slot.
func Equal(left, right arrow.Array) bool {
	switch {
	case !baseArrayEqual(left, right):
		return false
	case left.Len() == 0:
		return true
	case left.NullN() == left.Len():
		return true
	}

	// at this point, we know both arrays have same type, same length, same number of nulls
	// and nulls at the same place.
	// compare the values.

	switch l := left.(type) {
	case *Int8:
		return arrayEqualNumeric(l, right.(*Int8))
	case *Int16:
		return arrayEqualNumeric(l, right.(*Int16))
	case *Int32:
		return arrayEqualNumeric(l, right.(*Int32))
	case *Int64:
		return arrayEqualNumeric(l, right.(*Int64))
	case *Uint8:
		return arrayEqualNumeric(l, right.(*Uint8))
	case *Uint16:
		return arrayEqualNumeric(l, right.(*Uint16))
	case *Uint32:
		return arrayEqualNumeric(l, right.(*Uint32))
	case *Uint64:
		return arrayEqualNumeric(l, right.(*Uint64))
	case *Float32:
		return arrayEqualNumeric(l, right.(*Float32))
	case *Float64:
		return arrayEqualNumeric(l, right.(*Float64))
	case *List:
		return arrayEqualList(l, right.(*List))
	default:
		panic(fmt.Errorf("arrow/array: unknown array type %T", l))
	}
}

func baseArrayEqual(left, right arrow.Array) bool {
	switch {
	case left.Len() != right.Len():
		return false
	case left.NullN() != right.NullN():
		return false
	case !arrow.TypeEqual(left.DataType(), right.DataType()):
		return false
	case !validityBitmapEqual(left, right):
		return false
	}
	return true
}

func validityBitmapEqual(left, right arrow.Array) bool {
	n := left.Len()
	if n != right.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if left.IsNull(i) != right.IsNull(i) {
			return false
		}
	}
	return true
}
