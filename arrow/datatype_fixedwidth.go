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

package arrow

type (
	Int8Type    struct{}
	Int16Type   struct{}
	Int32Type   struct{}
	Int64Type   struct{}
	Uint8Type   struct{}
	Uint16Type  struct{}
	Uint32Type  struct{}
	Uint64Type  struct{}
	Float32Type struct{}
	Float64Type struct{}
)

func (t *Int8Type) ID() Type       { return INT8 }
func (t *Int8Type) Name() string   { return "int8" }
func (t *Int8Type) String() string { return "int8" }
func (t *Int8Type) BitWidth() int  { return 8 }
func (t *Int8Type) Bytes() int     { return 1 }

func (t *Int16Type) ID() Type       { return INT16 }
func (t *Int16Type) Name() string   { return "int16" }
func (t *Int16Type) String() string { return "int16" }
func (t *Int16Type) BitWidth() int  { return 16 }
func (t *Int16Type) Bytes() int     { return 2 }

func (t *Int32Type) ID() Type       { return INT32 }
func (t *Int32Type) Name() string   { return "int32" }
func (t *Int32Type) String() string { return "int32" }
func (t *Int32Type) BitWidth() int  { return 32 }
func (t *Int32Type) Bytes() int     { return 4 }

func (t *Int64Type) ID() Type       { return INT64 }
func (t *Int64Type) Name() string   { return "int64" }
func (t *Int64Type) String() string { return "int64" }
func (t *Int64Type) BitWidth() int  { return 64 }
func (t *Int64Type) Bytes() int     { return 8 }

func (t *Uint8Type) ID() Type       { return UINT8 }
func (t *Uint8Type) Name() string   { return "uint8" }
func (t *Uint8Type) String() string { return "uint8" }
func (t *Uint8Type) BitWidth() int  { return 8 }
func (t *Uint8Type) Bytes() int     { return 1 }

func (t *Uint16Type) ID() Type       { return UINT16 }
func (t *Uint16Type) Name() string   { return "uint16" }
func (t *Uint16Type) String() string { return "uint16" }
func (t *Uint16Type) BitWidth() int  { return 16 }
func (t *Uint16Type) Bytes() int     { return 2 }

func (t *Uint32Type) ID() Type       { return UINT32 }
func (t *Uint32Type) Name() string   { return "uint32" }
func (t *Uint32Type) String() string { return "uint32" }
func (t *Uint32Type) BitWidth() int  { return 32 }
func (t *Uint32Type) Bytes() int     { return 4 }

func (t *Uint64Type) ID() Type       { return UINT64 }
func (t *Uint64Type) Name() string   { return "uint64" }
func (t *Uint64Type) String() string { return "uint64" }
func (t *Uint64Type) BitWidth() int  { return 64 }
func (t *Uint64Type) Bytes() int     { return 8 }

func (t *Float32Type) ID() Type       { return FLOAT32 }
func (t *Float32Type) Name() string   { return "float32" }
func (t *Float32Type) String() string { return "float32" }
func (t *Float32Type) BitWidth() int  { return 32 }
func (t *Float32Type) Bytes() int     { return 4 }

func (t *Float64Type) ID() Type       { return FLOAT64 }
func (t *Float64Type) Name() string   { return "float64" }
func (t *Float64Type) String() string { return "float64" }
func (t *Float64Type) BitWidth() int  { return 64 }
func (t *Float64Type) Bytes() int     { return 8 }

var (
	PrimitiveTypes = struct {
		Int8    FixedWidthDataType
		Int16   FixedWidthDataType
		Int32   FixedWidthDataType
		Int64   FixedWidthDataType
		Uint8   FixedWidthDataType
		Uint16  FixedWidthDataType
		Uint32  FixedWidthDataType
		Uint64  FixedWidthDataType
		Float32 FixedWidthDataType
		Float64 FixedWidthDataType
	}{
		Int8:    &Int8Type{},
		Int16:   &Int16Type{},
		Int32:   &Int32Type{},
		Int64:   &Int64Type{},
		Uint8:   &Uint8Type{},
		Uint16:  &Uint16Type{},
		Uint32:  &Uint32Type{},
		Uint64:  &Uint64Type{},
		Float32: &Float32Type{},
		Float64: &Float64Type{},
	}
)

var (
	_ FixedWidthDataType = (*Int8Type)(nil)
	_ FixedWidthDataType = (*Int16Type)(nil)
	_ FixedWidthDataType = (*Int32Type)(nil)
	_ FixedWidthDataType = (*Int64Type)(nil)
	_ FixedWidthDataType = (*Uint8Type)(nil)
	_ FixedWidthDataType = (*Uint16Type)(nil)
	_ FixedWidthDataType = (*Uint32Type)(nil)
	_ FixedWidthDataType = (*Uint64Type)(nil)
	_ FixedWidthDataType = (*Float32Type)(nil)
	_ FixedWidthDataType = (*Float64Type)(nil)
)
