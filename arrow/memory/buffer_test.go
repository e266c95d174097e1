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

package memory_test

import (
	"testing"

	"github.com/a2un/arrow/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResizableBuffer(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)
	buf.Retain() // refCount == 2

	exp := 10
	buf.Resize(exp)
	assert.NotNil(t, buf.Bytes())
	assert.Equal(t, exp, len(buf.Bytes()))
	assert.Equal(t, exp, buf.Len())
	assert.Equal(t, 64, buf.Cap())

	buf.Release() // refCount == 1
	assert.NotNil(t, buf.Bytes())

	buf.Release() // refCount == 0
	assert.Nil(t, buf.Bytes())
	assert.Zero(t, buf.Len())
}

func TestBufferReset(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)

	newBytes := []byte("some-new-bytes")
	buf.Reset(newBytes)
	assert.Equal(t, newBytes, buf.Bytes())
	assert.Equal(t, len(newBytes), buf.Len())
}

func TestBufferSlice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)
	buf.Resize(1024)
	assert.Equal(t, 1024, mem.CurrentAlloc())

	slice := memory.SliceBuffer(buf, 512, 256)
	buf.Release()
	assert.Equal(t, 1024, mem.CurrentAlloc())
	assert.Same(t, buf, slice.Parent())
	assert.Equal(t, 256, slice.Len())
	slice.Release()
}

func TestBufferShrink(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)
	defer buf.Release()

	buf.Resize(200)
	assert.Equal(t, 256, buf.Cap())
	buf.ResizeNoShrink(10)
	assert.Equal(t, 256, buf.Cap())
	assert.Equal(t, 10, buf.Len())
	buf.Resize(10)
	assert.Equal(t, 64, buf.Cap())
	buf.Resize(0)
	assert.Zero(t, buf.Cap())
}

func TestNewPaddedBuffer(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	for _, n := range []int{0, 1, 32, 63, 64, 65, 1000} {
		buf := memory.NewPaddedBuffer(mem, n)
		require.Equal(t, n, buf.Len())
		bytes := buf.Bytes()
		assert.GreaterOrEqual(t, cap(bytes)-len(bytes), memory.SIMDPadding)
		assert.Equal(t, memory.PaddedSize(n), buf.Cap())
		for _, b := range bytes[:cap(bytes)] {
			assert.Zero(t, b)
		}
		buf.Release()
	}
}

func TestBufferBytesNotRefCounted(t *testing.T) {
	buf := memory.NewBufferBytes([]byte{1, 2, 3})
	buf.Retain()
	buf.Release()
	buf.Release()
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())

	slice := memory.SliceBuffer(buf, 1, 2)
	assert.Equal(t, []byte{2, 3}, slice.Bytes())
	slice.Release()
	assert.Nil(t, slice.Bytes())
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())
}
