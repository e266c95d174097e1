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

/*
Package arrow provides the type system and array interfaces shared by the
columnar compute kernels of this module.

The kernels live under arrow/compute and operate on arrays built with
arrow/array, which store their values in reference-counted buffers from
arrow/memory. Validity (null) bitmaps are packed LSB-first; arrow/bitutil
provides the bit-level primitives for them.

# Supported types

	- Int8, Int16, Int32, Int64
	- Uint8, Uint16, Uint32, Uint64
	- Float32, Float64
	- List, with any of the above as its element type

Every array is reference counted: call Retain when sharing it and Release when
done with it. Results returned by compute functions are owned by the caller.
*/
package arrow
