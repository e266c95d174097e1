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

package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRounding(t *testing.T) {
	tests := []struct {
		v, round   int
		up         int
		isMultiple bool
	}{
		{16, 64, 64, false},
		{60, 64, 64, false},
		{64, 64, 64, true},
		{122, 64, 128, false},
		{13, 8, 16, false},
		{512, 256, 512, true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d/%d", test.v, test.round), func(t *testing.T) {
			assert.Equal(t, test.up, roundToPowerOf2(test.v, test.round))
			assert.Equal(t, test.isMultiple, isMultipleOfPowerOf2(test.v, test.round))
			if test.round == 64 {
				assert.Equal(t, test.up, roundUpToMultipleOf64(test.v))
			}
		})
	}
}

func TestPaddedSize(t *testing.T) {
	tests := []struct {
		n, exp int
	}{
		{0, 64},
		{1, 128},
		{64, 128},
		{65, 192},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("n%d", test.n), func(t *testing.T) {
			got := PaddedSize(test.n)
			assert.Equal(t, test.exp, got)
			assert.True(t, isMultipleOfPowerOf2(got, alignment))
			assert.GreaterOrEqual(t, got-test.n, SIMDPadding)
		})
	}
}

func TestGoAllocatorAlignment(t *testing.T) {
	a := NewGoAllocator()
	for _, sz := range []int{1, 33, 64, 65, PaddedSize(100), 4097} {
		buf := a.Allocate(sz)
		assert.Len(t, buf, sz)
		assert.Zero(t, addressOf(buf)&(alignment-1), "size %d", sz)

		for i := range buf {
			buf[i] = byte(i)
		}
		grown := a.Reallocate(sz*2, buf)
		assert.Len(t, grown, sz*2)
		assert.Equal(t, buf, grown[:sz])
		assert.Zero(t, addressOf(grown)&(alignment-1))

		shrunk := a.Reallocate(sz/2, grown)
		assert.Equal(t, buf[:sz/2], shrunk)
	}
}
