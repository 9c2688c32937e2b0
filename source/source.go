// Package source defines the input boundary of the parser: anything that delivers
// a byte stream chunk by chunk and is able to take back the bytes that weren't
// consumed.
package source

import (
	"io"

	"github.com/indigo-web/utils/unreader"
)

type Source interface {
	// Read returns the next chunk of data. io.EOF signals the end of the stream. The chunk
	// is valid until the next call to Read.
	Read() ([]byte, error)
	// Unread preserves data for the next Read. Used to push back bytes following
	// a complete packet, e.g. a pipelined one.
	Unread([]byte)
}

type reader struct {
	unreader *unreader.Unreader
	r        io.Reader
	buff     []byte
	err      error
}

// FromReader adapts an io.Reader, reading it by buffSize bytes at most.
func FromReader(r io.Reader, buffSize int) Source {
	return &reader{
		unreader: new(unreader.Unreader),
		r:        r,
		buff:     make([]byte, buffSize),
	}
}

func (r *reader) Read() ([]byte, error) {
	return r.unreader.PendingOr(func() ([]byte, error) {
		if r.err != nil {
			return nil, r.err
		}

		n, err := r.r.Read(r.buff)
		if n > 0 && err != nil {
			// deliver the data first, the error will be returned by the next read
			r.err = err
			err = nil
		}

		return r.buff[:n], err
	})
}

func (r *reader) Unread(b []byte) {
	r.unreader.Unread(b)
}
