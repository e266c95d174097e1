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

//go:build !noasm

package simd

import (
	"os"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

func detectRegisterBits() int {
	// Added ability to enable extension via environment:
	// ARM_ENABLE_EXT=NEON go test
	if ext, ok := os.LookupEnv("ARM_ENABLE_EXT"); ok {
		for _, x := range strings.Split(ext, ",") {
			switch x {
			case "NEON":
				cpuid.CPU.Enable(cpuid.ASIMD)
			default:
				cpuid.CPU.Disable(cpuid.ASIMD)
			}
		}
	}

	if cpuid.CPU.Has(cpuid.ASIMD) {
		return 128
	}
	// without NEON the kernels still run lane by lane over a 64-bit register
	return 64
}
