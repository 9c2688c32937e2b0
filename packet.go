// Package packet is a toolkit for HTTP/1.x packets: it builds them with validation,
// parses them incrementally and serializes them to their canonical wire form.
//
// This package provides one-shot shortcuts over the builder, parser and serialize
// packages, for the cases when the whole packet is already in memory.
package packet

import (
	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/parser"
	"github.com/indigo-web/packet/serialize"
)

// ParseRequest parses a request out of data. The bytes following the request are
// returned as rest. If data ends before the request does, errors.ErrIncomplete is
// returned. A nil config means config.Default().
func ParseRequest(data []byte, cfg *config.Config) (request *http.Request, rest []byte, err error) {
	p := parser.NewRequest(orDefault(cfg))
	if rest, err = parse(p, data); err != nil {
		return nil, nil, err
	}

	return p.Request(), rest, nil
}

// ParseResponse parses a response out of data, see ParseRequest.
func ParseResponse(data []byte, cfg *config.Config) (response *http.Response, rest []byte, err error) {
	p := parser.NewResponse(orDefault(cfg))
	if rest, err = parse(p, data); err != nil {
		return nil, nil, err
	}

	return p.Response(), rest, nil
}

// SerializeRequest returns the canonical representation of the request.
func SerializeRequest(request *http.Request) []byte {
	return serialize.Request(request)
}

// SerializeResponse returns the canonical representation of the response.
func SerializeResponse(response *http.Response) []byte {
	return serialize.Response(response)
}

func parse(p interface {
	Parse([]byte) (parser.State, []byte, error)
}, data []byte) ([]byte, error) {
	state, rest, err := p.Parse(data)
	if err != nil {
		return nil, err
	}

	if state != parser.Complete {
		return nil, errors.ErrIncomplete
	}

	return rest, nil
}

func orDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}

	return cfg
}
