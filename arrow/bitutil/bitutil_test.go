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

package bitutil_test

import (
	"testing"

	"github.com/a2un/arrow/arrow/bitutil"
	"github.com/stretchr/testify/assert"
)

var (
	pattern     = []byte{0xa1, 0xc2}
	patternBits = []bool{true, false, false, false, false, true, false, true, false, true, false, false, false, false, true, true}
)

func TestRounding(t *testing.T) {
	tests := []struct {
		name     string
		in       int64
		ceilByte int64
		nbytes   int64
	}{
		{"zero", 0, 0, 0},
		{"one", 1, 8, 1},
		{"five", 5, 8, 1},
		{"eight", 8, 8, 1},
		{"nine", 9, 16, 2},
		{"sixteen", 16, 16, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.ceilByte, bitutil.CeilByte64(test.in))
			assert.Equal(t, int(test.ceilByte), bitutil.CeilByte(int(test.in)))
			assert.Equal(t, test.nbytes, bitutil.BytesForBits(test.in))
		})
	}

	assert.True(t, bitutil.IsMultipleOf8(0))
	assert.True(t, bitutil.IsMultipleOf8(24))
	assert.False(t, bitutil.IsMultipleOf8(3))
	assert.True(t, bitutil.IsMultipleOf64(128))
	assert.False(t, bitutil.IsMultipleOf64(72))
	assert.Equal(t, 8, bitutil.NextPowerOf2(5))
	assert.Equal(t, 16, bitutil.NextPowerOf2(8))
}

func TestBitIsSet(t *testing.T) {
	for i, exp := range patternBits {
		assert.Equal(t, exp, bitutil.BitIsSet(pattern, i), "bit %d", i)
		assert.Equal(t, !exp, bitutil.BitIsNotSet(pattern, i), "bit %d", i)
	}
}

func TestSetAndClearBit(t *testing.T) {
	set := make([]byte, 2)
	cleared := []byte{0xff, 0xff}
	to := []byte{0x5a, 0x5a}
	for i, v := range patternBits {
		if v {
			bitutil.SetBit(set, i)
		} else {
			bitutil.ClearBit(cleared, i)
		}
		bitutil.SetBitTo(to, i, v)
	}

	assert.Equal(t, pattern, set)
	assert.Equal(t, pattern, cleared)
	assert.Equal(t, pattern, to)
}

func TestCountSetBitsSmall(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		offset int
		n      int
		exp    int
	}{
		{"empty", nil, 0, 0, 0},
		{"three", []byte{0b00000011}, 0, 3, 2},
		{"eleven", []byte{0b11000011, 0b00000010}, 0, 11, 5},
		{"offset", []byte{0b11000011, 0b00000010}, 1, 10, 4},
		{"all", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0, 72, 72},
		{"none", make([]byte, 9), 3, 69, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, bitutil.CountSetBits(test.buf, test.offset, test.n))
		})
	}
}

var intval int

func benchmarkCountSetBitsN(b *testing.B, n int) {
	buf := make([]byte, n/8+1)
	for i := range buf {
		buf[i] = 0x01
	}
	b.ResetTimer()
	var res int
	for i := 0; i < b.N; i++ {
		res = bitutil.CountSetBits(buf, 0, n)
	}
	intval = res
}

func BenchmarkCountSetBits_32(b *testing.B)   { benchmarkCountSetBitsN(b, 32) }
func BenchmarkCountSetBits_1024(b *testing.B) { benchmarkCountSetBitsN(b, 1024) }
