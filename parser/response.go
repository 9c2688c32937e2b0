package parser

import (
	"bytes"

	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/grammar"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/internal/fields"
	"github.com/indigo-web/packet/internal/frozen"
	"github.com/indigo-web/packet/validate"
	"github.com/indigo-web/utils/uf"
)

// Response parses a single response.
type Response struct {
	core
	fields   fields.Response
	response *http.Response
}

// NewResponse returns a parser for a single response. The config must be already
// normalized, config.Default() is.
func NewResponse(cfg *config.Config) *Response {
	p := new(Response)
	p.core = newCore(cfg, p)

	return p
}

// Response returns the parsed response once the parser is complete, nil otherwise.
func (p *Response) Response() *http.Response {
	return p.response
}

// startLine parses the status line: HTTP-version SP status-code SP [ reason-phrase ].
// The second space may be omitted when there's no reason phrase.
func (p *Response) startLine(line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return errors.ErrBadStartLine
	}

	protocol := proto.FromBytes(line[:sp])
	if protocol == proto.Unknown {
		return errors.ErrInvalidVersion
	}

	rest := line[sp+1:]
	var reason []byte
	if sp = bytes.IndexByte(rest, ' '); sp != -1 {
		rest, reason = rest[:sp], rest[sp+1:]
	}

	code, err := grammar.StatusCode(uf.B2S(rest))
	if err != nil {
		return err
	}

	if err = grammar.Reason(uf.B2S(reason)); err != nil {
		return err
	}

	p.fields.Protocol = protocol
	p.fields.Code = status.Code(code)
	p.fields.Reason = string(reason)

	return nil
}

func (p *Response) bodyMode(hdrs *headers.Headers) (validate.BodyMode, error) {
	return validate.ResponseBodyMode(hdrs, p.fields.Protocol, p.fields.Code)
}

func (p *Response) finish(hdrs *headers.Headers, b body.Body) error {
	p.fields.Headers = hdrs
	p.fields.Body = b
	if err := validate.ResponseFields(p.fields); err != nil {
		return err
	}

	p.response = frozen.NewResponse(p.fields)
	p.fields = p.fields.Clear()

	return nil
}

func (*Response) skipsEmptyLines() bool {
	return false
}
