// Copyright 2026 The GenAI-Chatbot Authors
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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the storage layer's persisted types. Timestamps are
// stored as Unix microseconds.

// IndexEntryMUS serializes IndexEntry values.
var IndexEntryMUS = indexEntryMUS{}

type indexEntryMUS struct{}

func (s indexEntryMUS) Marshal(e IndexEntry, bs []byte) (n int) {
	n = varint.Uint64.Marshal(e.Seq, bs)
	n += ord.String.Marshal(e.Doc.Content, bs[n:])
	n += varint.Uint64.Marshal(uint64(len(e.Doc.Metadata)), bs[n:])
	for k, v := range e.Doc.Metadata {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(v, bs[n:])
	}
	n += varint.Uint64.Marshal(uint64(len(e.Vector)), bs[n:])
	for _, val := range e.Vector {
		n += raw.Float32.Marshal(val, bs[n:])
	}
	n += varint.Int64.Marshal(e.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (s indexEntryMUS) Unmarshal(bs []byte) (e IndexEntry, n int, err error) {
	var n1 int
	e.Seq, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}

	e.Doc.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var metaLen uint64
	metaLen, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if metaLen > 0 {
		e.Doc.Metadata = make(map[string]string, metaLen)
		for i := uint64(0); i < metaLen; i++ {
			var k, v string
			k, n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
			v, n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
			e.Doc.Metadata[k] = v
		}
	}

	var vecLen uint64
	vecLen, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if vecLen > 0 {
		e.Vector = make([]float32, vecLen)
		for i := uint64(0); i < vecLen; i++ {
			e.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.InsertedAt = time.UnixMicro(micros).UTC()
	return
}

func (s indexEntryMUS) Size(e IndexEntry) (size int) {
	size = varint.Uint64.Size(e.Seq)
	size += ord.String.Size(e.Doc.Content)
	size += varint.Uint64.Size(uint64(len(e.Doc.Metadata)))
	for k, v := range e.Doc.Metadata {
		size += ord.String.Size(k)
		size += ord.String.Size(v)
	}
	size += varint.Uint64.Size(uint64(len(e.Vector)))
	for _, val := range e.Vector {
		size += raw.Float32.Size(val)
	}
	size += varint.Int64.Size(e.InsertedAt.UnixMicro())
	return size
}

// IndexMetaMUS serializes IndexMeta values.
var IndexMetaMUS = indexMetaMUS{}

type indexMetaMUS struct{}

func (s indexMetaMUS) Marshal(m IndexMeta, bs []byte) (n int) {
	n = varint.Uint64.Marshal(m.DocCount, bs)
	n += varint.Int.Marshal(m.Dimension, bs[n:])
	n += ord.Bool.Marshal(m.Sealed, bs[n:])
	n += varint.Int64.Marshal(m.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (s indexMetaMUS) Unmarshal(bs []byte) (m IndexMeta, n int, err error) {
	var n1 int
	m.DocCount, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}

	m.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	m.Sealed, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.CreatedAt = time.UnixMicro(micros).UTC()
	return
}

func (s indexMetaMUS) Size(m IndexMeta) (size int) {
	size = varint.Uint64.Size(m.DocCount)
	size += varint.Int.Size(m.Dimension)
	size += ord.Bool.Size(m.Sealed)
	size += varint.Int64.Size(m.CreatedAt.UnixMicro())
	return size
}

// MarshalIndexEntry serializes an IndexEntry to bytes.
func MarshalIndexEntry(entry *IndexEntry) []byte {
	buf := make([]byte, IndexEntryMUS.Size(*entry))
	IndexEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalIndexEntry deserializes an IndexEntry from bytes.
func UnmarshalIndexEntry(data []byte) (*IndexEntry, error) {
	entry, _, err := IndexEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}

// MarshalIndexMeta serializes an IndexMeta to bytes.
func MarshalIndexMeta(meta *IndexMeta) []byte {
	buf := make([]byte, IndexMetaMUS.Size(*meta))
	IndexMetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalIndexMeta deserializes an IndexMeta from bytes.
func UnmarshalIndexMeta(data []byte) (*IndexMeta, error) {
	meta, _, err := IndexMetaMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &meta, nil
}
