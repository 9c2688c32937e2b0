package parser

import (
	"bytes"
	"strings"

	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/grammar"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/internal/fields"
	"github.com/indigo-web/packet/internal/frozen"
	"github.com/indigo-web/packet/validate"
	"github.com/indigo-web/utils/uf"
)

// Request parses a single request.
type Request struct {
	core
	fields  fields.Request
	request *http.Request
}

// NewRequest returns a parser for a single request. The config must be already
// normalized, config.Default() is.
func NewRequest(cfg *config.Config) *Request {
	p := new(Request)
	p.core = newCore(cfg, p)

	return p
}

// Request returns the parsed request once the parser is complete, nil otherwise.
func (p *Request) Request() *http.Request {
	return p.request
}

// startLine parses the request line: method SP request-target SP HTTP-version.
func (p *Request) startLine(line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	lastSP := bytes.LastIndexByte(line, ' ')
	if sp == -1 || sp == lastSP {
		return errors.ErrBadStartLine
	}

	methodValue := uf.B2S(line[:sp])
	if err := grammar.Method(methodValue); err != nil {
		return err
	}

	target := uf.B2S(line[sp+1 : lastSP])
	if err := grammar.Target(target); err != nil {
		return errors.Field(err, "target")
	}

	protocol := proto.FromBytes(line[lastSP+1:])
	if protocol == proto.Unknown {
		return errors.ErrInvalidVersion
	}

	p.fields.Method = method.Parse(methodValue)
	p.fields.Target = strings.Clone(target)
	p.fields.Protocol = protocol

	return nil
}

func (p *Request) bodyMode(hdrs *headers.Headers) (validate.BodyMode, error) {
	return validate.RequestBodyMode(hdrs, p.fields.Protocol)
}

func (p *Request) finish(hdrs *headers.Headers, b body.Body) error {
	p.fields.Headers = hdrs
	p.fields.Body = b
	if err := validate.RequestFields(p.fields); err != nil {
		return err
	}

	p.request = frozen.NewRequest(p.fields)
	p.fields = p.fields.Clear()

	return nil
}

func (p *Request) skipsEmptyLines() bool {
	return p.cfg.Leniency.LeadingEmptyLines
}
