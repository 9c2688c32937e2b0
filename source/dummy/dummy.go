// Package dummy provides scripted sources, delivering predefined chunks of data.
package dummy

import (
	"io"

	"github.com/indigo-web/utils/unreader"
)

// Chunks delivers the chunks it was initialised with one by one, then io.EOF.
type Chunks struct {
	unreader *unreader.Unreader
	data     [][]byte
	pointer  int
}

func NewChunks(data ...[]byte) *Chunks {
	return &Chunks{
		unreader: new(unreader.Unreader),
		data:     data,
	}
}

// FromString splits the text into chunks of size n (the last one may be shorter).
func FromString(text string, n int) *Chunks {
	var chunks [][]byte
	for len(text) > n {
		chunks = append(chunks, []byte(text[:n]))
		text = text[n:]
	}

	return NewChunks(append(chunks, []byte(text))...)
}

func (c *Chunks) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		if c.pointer >= len(c.data) {
			return nil, io.EOF
		}

		c.pointer++

		return c.data[c.pointer-1], nil
	})
}

func (c *Chunks) Unread(takeback []byte) {
	c.unreader.Unread(takeback)
}

// Circular is a source that on every read-operation returns the same data as it
// was initialised with, never ending. This is used mainly for benchmarking
type Circular struct {
	unreader *unreader.Unreader
	data     [][]byte
	pointer  int
}

func NewCircular(data ...[]byte) *Circular {
	return &Circular{
		unreader: new(unreader.Unreader),
		data:     data,
		pointer:  -1,
	}
}

func (c *Circular) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		c.pointer++

		if c.pointer == len(c.data) {
			c.pointer = 0
		}

		return c.data[c.pointer], nil
	})
}

func (c *Circular) Unread(takeback []byte) {
	c.unreader.Unread(takeback)
}
