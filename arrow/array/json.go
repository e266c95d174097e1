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
	"errors"
	"fmt"
	"io"

	"github.com/a2un/arrow/arrow"
	"github.com/a2un/arrow/arrow/memory"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

type fromJSONCfg struct {
	startOffset int64
	useNumber   bool
}

type FromJSONOption func(*fromJSONCfg)

// WithStartOffset attempts to start decoding from the reader at the offset
// passed in. If using this option the reader must fulfill the io.ReadSeeker
// interface, or else an error will be returned.
func WithStartOffset(off int64) FromJSONOption {
	return func(c *fromJSONCfg) {
		c.startOffset = off
	}
}

// WithUseNumber enables the 'UseNumber' option on the json decoder, using
// the json.Number type instead of assuming float64 for numbers. This is
// critical for 64-bit integers which can lose precision through float64.
func WithUseNumber() FromJSONOption {
	return func(c *fromJSONCfg) {
		c.useNumber = true
	}
}

// FromJSON creates an arrow.Array from a corresponding JSON stream and
// defined data type. The stream must hold a single JSON array whose
// elements match dt, with null marking a null slot:
//
//	arr, _, err := array.FromJSON(mem, arrow.ListOf(arrow.PrimitiveTypes.Int32),
//		strings.NewReader(`[[1, 2], null, []]`))
//
// The returned offset is the position in the stream just past the data
// that was consumed, so several arrays can be read back to back with
// WithStartOffset.
func FromJSON(mem memory.Allocator, dt arrow.DataType, r io.Reader, opts ...FromJSONOption) (arr arrow.Array, offset int64, err error) {
	var cfg fromJSONCfg
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.startOffset != 0 {
		seeker, ok := r.(io.ReadSeeker)
		if !ok {
			return nil, 0, errors.New("using StartOffset option requires reader to be a ReadSeeker, cannot seek")
		}
		if _, err := seeker.Seek(cfg.startOffset, io.SeekStart); err != nil {
			return nil, 0, err
		}
	}

	bldr := NewBuilder(mem, dt)
	defer bldr.Release()

	dec := json.NewDecoder(r)
	defer func() {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("failed parsing json: %w", io.ErrUnexpectedEOF)
		}
	}()

	if cfg.useNumber {
		dec.UseNumber()
	}

	t, err := dec.Token()
	if err != nil {
		return nil, 0, err
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return nil, 0, xerrors.Errorf("arrow/array: json input must be an array, found %v", t)
	}

	if err = bldr.unmarshal(dec); err != nil {
		return nil, dec.InputOffset(), err
	}

	// consume the last ']'
	if _, err = dec.Token(); err != nil {
		return nil, dec.InputOffset(), err
	}

	return bldr.NewArray(), dec.InputOffset() + cfg.startOffset, nil
}
