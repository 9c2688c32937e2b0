package body

import (
	"bytes"
	"strconv"

	json "github.com/json-iterator/go"
)

// Kind is the framing variant of a body.
type Kind uint8

const (
	// Absent means the message encloses no content at all.
	Absent Kind = iota
	// Fixed content is delimited by Content-Length.
	Fixed
	// Chunked content is delimited by the chunked transfer coding.
	Chunked
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Fixed:
		return "fixed"
	case Chunked:
		return "chunked"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Body is an immutable message content descriptor. Chunked bodies remember the size
// of every chunk, so they re-serialize into the same chunk layout.
//
// The zero value is an absent body.
type Body struct {
	data  []byte
	sizes []int
	kind  Kind
}

// None returns an absent body.
func None() Body {
	return Body{}
}

// NewFixed returns a body delimited by Content-Length. The data is copied.
func NewFixed(data []byte) Body {
	return Body{
		kind: Fixed,
		data: bytes.Clone(data),
	}
}

// NewChunked returns a chunked body consisting of the given chunks. Every chunk is
// copied. Empty chunks are kept as they are, so validation can reject them.
func NewChunked(chunks ...[]byte) Body {
	b := Body{
		kind:  Chunked,
		sizes: make([]int, 0, len(chunks)),
	}

	for _, chunk := range chunks {
		b.data = append(b.data, chunk...)
		b.sizes = append(b.sizes, len(chunk))
	}

	return b
}

func (b Body) Kind() Kind {
	return b.kind
}

// Len returns the content length in bytes.
func (b Body) Len() int {
	return len(b.data)
}

// Bytes returns a copy of the whole content. Chunks are concatenated.
func (b Body) Bytes() []byte {
	if b.kind == Absent {
		return nil
	}

	return bytes.Clone(b.data)
}

// AppendTo appends the whole content to dst and returns the extended slice.
func (b Body) AppendTo(dst []byte) []byte {
	return append(dst, b.data...)
}

// String returns the whole content as a string.
func (b Body) String() string {
	return string(b.data)
}

// ChunkCount returns the number of chunks of a chunked body, the final zero-length
// chunk excluded. It's 0 for any other kind.
func (b Body) ChunkCount() int {
	return len(b.sizes)
}

// Chunks returns a copy of every chunk of a chunked body in their original order.
func (b Body) Chunks() [][]byte {
	if b.kind != Chunked {
		return nil
	}

	chunks := make([][]byte, len(b.sizes))
	for i := range chunks {
		chunks[i] = b.AppendChunk(nil, i)
	}

	return chunks
}

// ChunkLen returns the size of the i-th chunk.
func (b Body) ChunkLen(i int) int {
	return b.sizes[i]
}

// AppendChunk appends the i-th chunk to dst and returns the extended slice.
func (b Body) AppendChunk(dst []byte, i int) []byte {
	offset := 0
	for _, size := range b.sizes[:i] {
		offset += size
	}

	return append(dst, b.data[offset:offset+b.sizes[i]]...)
}

// Equal reports whether both bodies are of the same kind and carry the same content.
// Chunk boundaries are not compared.
func (b Body) Equal(other Body) bool {
	return b.kind == other.kind && bytes.Equal(b.data, other.data)
}

// JSON decodes the content into the model.
func (b Body) JSON(model any) error {
	iterator := json.ConfigDefault.BorrowIterator(b.data)
	iterator.ReadVal(model)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// IsJSON reports whether the content is a syntactically valid JSON document.
func (b Body) IsJSON() bool {
	return json.ConfigDefault.Valid(b.data)
}

// Assembler accumulates a body received piecewise, without copying it twice.
// The zero value is ready to use.
type Assembler struct {
	data  []byte
	sizes []int
}

// Write appends the data to the current chunk. The data is copied.
func (a *Assembler) Write(data []byte) {
	a.data = append(a.data, data...)
	if len(a.sizes) > 0 {
		a.sizes[len(a.sizes)-1] += len(data)
	}
}

// NextChunk opens a new chunk, so consequent writes go into it.
func (a *Assembler) NextChunk() {
	a.sizes = append(a.sizes, 0)
}

// Len returns the number of accumulated bytes.
func (a *Assembler) Len() int {
	return len(a.data)
}

// Fixed returns the accumulated data as a fixed-length body. The assembler is reset.
func (a *Assembler) Fixed() Body {
	b := Body{kind: Fixed, data: a.data}
	*a = Assembler{}

	return b
}

// Chunked returns the accumulated chunks as a chunked body. The assembler is reset.
func (a *Assembler) Chunked() Body {
	b := Body{kind: Chunked, data: a.data, sizes: a.sizes}
	*a = Assembler{}

	return b
}
