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

// Package compute provides the array kernels that other compute functions
// are built from: combining the validity bitmaps of two arrays, selecting
// ("taking") elements out of list arrays, and, in the internal simd and
// kernels packages, the masked lane loads used by vectorized numeric
// kernels.
//
// Memory for results is allocated from the allocator carried by the
// context passed to each function (see WithAllocator), defaulting to
// memory.DefaultAllocator. Every array or bitmap returned must be
// released by the caller.
//
// Everything in this package should be considered Experimental for now.
package compute
