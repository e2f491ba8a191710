// Copyright 2025 Buildr Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/buildrtech/dotagents/core"
)

// indexFormatVersion is the first byte of every serialized index. Bump it
// when the encoding changes; readers treat unknown versions as corruption.
const indexFormatVersion byte = 1

// MarshalIndex serializes an Index to bytes, prefixed with the format
// version.
func MarshalIndex(index *core.Index) []byte {
	bs := make([]byte, 1+core.IndexMUS.Size(*index))
	bs[0] = indexFormatVersion
	core.IndexMUS.Marshal(*index, bs[1:])
	return bs
}

// UnmarshalIndex deserializes an Index from bytes.
//
// The decode is strict: the version must match, the whole buffer must be
// consumed, and the row-count invariant must hold. Callers map any error to
// a cache miss.
func UnmarshalIndex(data []byte) (*core.Index, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	if data[0] != indexFormatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnknownFormatVersion, data[0])
	}

	index, n, err := core.IndexMUS.Unmarshal(data[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data)-1 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrTrailingData, len(data)-1-n)
	}
	if err := core.ValidateIndex(&index); err != nil {
		return nil, err
	}
	if index.FileHashes == nil {
		index.FileHashes = map[string]string{}
	}

	return &index, nil
}
