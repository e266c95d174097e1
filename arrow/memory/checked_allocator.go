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
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// CheckedAllocator wraps another Allocator and records every live
// allocation together with the caller that made it, so tests can assert that
// everything a kernel allocated was released.
type CheckedAllocator struct {
	mem Allocator
	sz  atomic.Int64

	allocs sync.Map
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

func (a *CheckedAllocator) CurrentAlloc() int { return int(a.sz.Load()) }

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

// record remembers b as allocated by the caller skip frames up.
func (a *CheckedAllocator) record(b []byte, skip int) {
	if len(b) == 0 {
		return
	}
	if pc, _, l, ok := runtime.Caller(skip); ok {
		a.allocs.Store(addressOf(b), &dalloc{pc: pc, line: l, sz: len(b)})
	}
}

func (a *CheckedAllocator) forget(b []byte) {
	if len(b) != 0 {
		a.allocs.Delete(addressOf(b))
	}
}

func (a *CheckedAllocator) Allocate(size int) []byte {
	a.sz.Add(int64(size))
	out := a.mem.Allocate(size)
	a.record(out, allocFrames)
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	a.sz.Add(int64(size - len(b)))
	a.forget(b)
	out := a.mem.Reallocate(size, b)
	a.record(out, reallocFrames)
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	a.sz.Add(-int64(len(b)))
	a.forget(b)
	a.mem.Free(b)
}

// Allocations normally happen inside Buffer rather than in the kernel that
// asked for memory, so the recorded caller skips the frames of Buffer's
// Reserve/Resize machinery. ARROW_CHECKED_ALLOC_FRAMES and
// ARROW_CHECKED_REALLOC_FRAMES override how many frames are skipped.
var (
	allocFrames   = framesFromEnv("ARROW_CHECKED_ALLOC_FRAMES", 4)
	reallocFrames = framesFromEnv("ARROW_CHECKED_REALLOC_FRAMES", 3)
)

func framesFromEnv(name string, def int) int {
	if val, ok := os.LookupEnv(name); ok {
		if f, err := strconv.Atoi(val); err == nil {
			return f
		}
	}
	return def
}

type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// AssertSize reports every outstanding allocation as a leak and fails t if
// the total allocated size differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	a.allocs.Range(func(_, value any) bool {
		info := value.(*dalloc)
		f := runtime.FuncForPC(info.pc)
		t.Errorf("LEAK of %d bytes FROM %s line %d\n", info.sz, f.Name(), info.line)
		return true
	})

	if got := a.CurrentAlloc(); got != sz {
		t.Errorf("invalid memory size exp=%d, got=%d", sz, got)
	}
}

// CheckedAllocatorScope checks that the allocations made between its
// creation and CheckSize were all released.
type CheckedAllocatorScope struct {
	alloc *CheckedAllocator
	sz    int
}

func NewCheckedAllocatorScope(alloc *CheckedAllocator) *CheckedAllocatorScope {
	return &CheckedAllocatorScope{alloc: alloc, sz: alloc.CurrentAlloc()}
}

func (c *CheckedAllocatorScope) CheckSize(t TestingT) {
	if sz := c.alloc.CurrentAlloc(); c.sz != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", c.sz, sz)
	}
}

var (
	_ Allocator = (*CheckedAllocator)(nil)
)
