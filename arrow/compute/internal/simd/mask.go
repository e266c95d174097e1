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

import "math/bits"

// MaxWidth is the largest number of lanes a Vec can hold.
const MaxWidth = 64

// Mask holds one bit per lane. Lane 0 is the least significant bit.
type Mask uint64

// AllLanes returns a Mask with the first width lanes set.
func AllLanes(width int) Mask {
	if width >= MaxWidth {
		return ^Mask(0)
	}
	return Mask(1)<<width - 1
}

// Lane reports whether lane j is set.
func (m Mask) Lane(j int) bool { return m&(1<<j) != 0 }

// Set returns m with lane j set.
func (m Mask) Set(j int) Mask { return m | 1<<j }

// Clear returns m with lane j cleared.
func (m Mask) Clear(j int) Mask { return m &^ (1 << j) }

// Count returns the number of set lanes.
func (m Mask) Count() int { return bits.OnesCount64(uint64(m)) }

// Lanes returns the state of the first width lanes as bools.
func (m Mask) Lanes(width int) []bool {
	out := make([]bool, width)
	for j := range out {
		out[j] = m.Lane(j)
	}
	return out
}
