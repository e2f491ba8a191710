package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written mus serializers for the cache artifact. The encoding is
// private to this module; storage wraps it in a versioned envelope.
//
// Vectors round-trip bit-for-bit: float32 values are encoded from their
// raw bits, not through a decimal representation.

var (
	// VectorMUS serializes a single embedding vector.
	VectorMUS = ord.NewSliceSer[float32](varint.Float32)

	// EntryMUS serializes an Entry.
	EntryMUS = entryMUS{}

	// IndexMUS serializes a whole Index.
	IndexMUS = indexMUS{}

	hashesMUS  = ord.NewMapSer[string, string](ord.String, ord.String)
	entriesMUS = ord.NewSliceSer[Entry](EntryMUS)
	vectorsMUS = ord.NewSliceSer[[]float32](VectorMUS)
)

type entryMUS struct{}

func (entryMUS) Marshal(e Entry, bs []byte) (n int) {
	n = ord.String.Marshal(e.Title, bs)
	n += ord.String.Marshal(e.Content, bs[n:])
	n += ord.String.Marshal(e.SourceFile, bs[n:])
	n += ord.String.Marshal(e.FullText, bs[n:])
	return
}

func (entryMUS) Unmarshal(bs []byte) (e Entry, n int, err error) {
	e.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	e.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.SourceFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.FullText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (entryMUS) Size(e Entry) (size int) {
	size = ord.String.Size(e.Title)
	size += ord.String.Size(e.Content)
	size += ord.String.Size(e.SourceFile)
	size += ord.String.Size(e.FullText)
	return
}

func (entryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type indexMUS struct{}

func (indexMUS) Marshal(ix Index, bs []byte) (n int) {
	n = hashesMUS.Marshal(ix.FileHashes, bs)
	n += entriesMUS.Marshal(ix.Entries, bs[n:])
	n += vectorsMUS.Marshal(ix.Embeddings, bs[n:])
	return
}

func (indexMUS) Unmarshal(bs []byte) (ix Index, n int, err error) {
	ix.FileHashes, n, err = hashesMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	ix.Entries, n1, err = entriesMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	ix.Embeddings, n1, err = vectorsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexMUS) Size(ix Index) (size int) {
	size = hashesMUS.Size(ix.FileHashes)
	size += entriesMUS.Size(ix.Entries)
	size += vectorsMUS.Size(ix.Embeddings)
	return
}

func (indexMUS) Skip(bs []byte) (n int, err error) {
	n, err = hashesMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = entriesMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorsMUS.Skip(bs[n:])
	n += n1
	return
}
