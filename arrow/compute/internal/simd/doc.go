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

// Package simd models fixed-width vector registers for the numeric compute
// kernels. A Lanes[T] value knows how many T fit in one register on the
// running CPU and provides the handful of lane-wise operations the kernels
// need: loading a register's worth of values, selecting between two vectors
// under a Mask, and broadcasting a scalar.
//
// Register width is detected once at package initialization:
//
//	amd64: 512 bits with AVX-512F, 256 bits with AVX2, 128 bits otherwise
//	arm64: 128 bits with ASIMD (NEON), which ARM_ENABLE_EXT can toggle
//	other: 128 bits
//
// Building with the noasm tag skips detection and always uses 128 bits.
// Build with the debug tag to log the detected width.
package simd
