package parser

import (
	"io"

	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/source"
)

// ReadRequest reads exactly one request from the source. Bytes following the request
// are pushed back into the source, so the next call picks up a pipelined request.
//
// io.EOF is returned as is if the source ends before any byte is received. If it
// ends in the middle of a request, errors.ErrIncomplete is returned instead.
func ReadRequest(src source.Source, cfg *config.Config) (*http.Request, error) {
	p := NewRequest(cfg)
	if err := read(src, &p.core); err != nil {
		return nil, err
	}

	return p.Request(), nil
}

// ReadResponse reads exactly one response from the source, see ReadRequest.
func ReadResponse(src source.Source, cfg *config.Config) (*http.Response, error) {
	p := NewResponse(cfg)
	if err := read(src, &p.core); err != nil {
		return nil, err
	}

	return p.Response(), nil
}

func read(src source.Source, c *core) error {
	var received int

	for {
		data, err := src.Read()
		switch err {
		case nil:
		case io.EOF:
			if received == 0 {
				return io.EOF
			}

			return errors.ErrIncomplete
		default:
			return err
		}

		received += len(data)

		state, extra, err := c.Parse(data)
		if err != nil {
			return err
		}

		if state == Complete {
			if len(extra) > 0 {
				src.Unread(extra)
			}

			return nil
		}
	}
}
