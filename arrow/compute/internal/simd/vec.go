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

package simd

import (
	"fmt"

	"github.com/a2un/arrow/arrow"
)

// Vec is the contents of one vector register: Width lanes of T.
type Vec[T arrow.NumericType] struct {
	lanes [MaxWidth]T
	width int
}

// Width returns the number of lanes in v.
func (v Vec[T]) Width() int { return v.width }

// Lane returns the value in lane j.
func (v Vec[T]) Lane(j int) T { return v.lanes[j] }

// Values returns a copy of the lanes of v.
func (v Vec[T]) Values() []T {
	out := make([]T, v.width)
	copy(out, v.lanes[:v.width])
	return out
}

// Store writes the lanes of v to the start of dst and returns the number of
// values written, which is less than Width if dst is shorter.
func (v Vec[T]) Store(dst []T) int {
	return copy(dst, v.lanes[:v.width])
}

func (v Vec[T]) String() string {
	return fmt.Sprint(v.lanes[:v.width])
}
