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

package array

import (
	"bytes"

	"github.com/goccy/go-json"
)

// NullValueStr is how String renders a null slot.
const NullValueStr = "(null)"

// writeJSONArray encodes vals one element at a time so that pre-encoded
// json.RawMessage children are written verbatim.
func writeJSONArray(vals []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	buf.WriteByte('[')
	for i, v := range vals {
		if i != 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return bytes.ReplaceAll(buf.Bytes(), []byte("\n"), nil), nil
}
