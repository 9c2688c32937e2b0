package builder

import (
	"github.com/indigo-web/packet/errors"
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

// Request accumulates request fields. Every call either overwrites the corresponding
// field or appends to the header list and never fails; the accumulated state is
// validated by TryBuild only.
//
// The builder is single-use: after TryBuild succeeds, every consequent call to it
// returns errors.ErrBuilderConsumed. A failed TryBuild keeps the state, so the
// faulty field can be fixed and TryBuild tried again.
type Request struct {
	staging
	method   method.Method
	target   string
	protocol proto.Proto
}

func NewRequest() *Request {
	return &Request{
		staging: staging{
			headers: make([]headers.Pair, 0, preallocHeaders),
		},
	}
}

// Method sets the request method. Extension methods are created via method.Parse.
func (r *Request) Method(m method.Method) *Request {
	r.method = m
	return r
}

// Target sets the request-target. It isn't interpreted, only syntax-checked.
func (r *Request) Target(target string) *Request {
	r.target = target
	return r
}

// Protocol sets the version. Defaults to HTTP/1.1.
func (r *Request) Protocol(protocol proto.Proto) *Request {
	r.protocol = protocol
	return r
}

// Header appends the values to the key, one field line per value. Duplicates
// are kept in their order.
func (r *Request) Header(key string, values ...string) *Request {
	r.header(key, values)
	return r
}

// Headers simply merges passed headers into the request. Please note that the map
// order isn't deterministic; use Header if the order matters.
func (r *Request) Headers(headers map[string][]string) *Request {
	for key, values := range headers {
		r.header(key, values)
	}

	return r
}

// Trailer appends trailer fields, which are sent after the last chunk. Requires
// a chunked body.
func (r *Request) Trailer(key string, values ...string) *Request {
	r.trailer(key, values)
	return r
}

// Body sets the body as is. No framing headers are added, so they must be
// set explicitly.
func (r *Request) Body(b body.Body) *Request {
	r.setBody(b, framingRaw)
	return r
}

// Bytes sets a fixed-length body. The data is copied. Content-Length is added
// automatically, unless set explicitly.
func (r *Request) Bytes(data []byte) *Request {
	r.setBody(body.NewFixed(data), framingFixed)
	return r
}

// String does the same as Bytes does.
func (r *Request) String(data string) *Request {
	return r.Bytes(uf.S2B(data))
}

// Chunked sets a chunked body out of the chunks. Transfer-Encoding: chunked
// is added automatically, unless set explicitly.
func (r *Request) Chunked(chunks ...[]byte) *Request {
	r.setBody(body.NewChunked(chunks...), framingChunked)
	return r
}

// TryJSON marshals the model into a fixed-length body, also setting the
// Content-Type to application/json unless set explicitly.
func (r *Request) TryJSON(model any) (*Request, error) {
	return r, r.setJSON(model)
}

// JSON does the same as TryJSON does, except the error is returned by TryBuild.
func (r *Request) JSON(model any) *Request {
	if err := r.setJSON(model); err != nil {
		r.err = err
	}

	return r
}

// TryBuild validates the accumulated state and freezes it into an immutable request.
// Missing method and target are reported via errors.MissingField before any other
// check is made.
func (r *Request) TryBuild() (*http.Request, error) {
	if r.consumed {
		return nil, errors.ErrBuilderConsumed
	}

	switch {
	case r.method == method.Unknown:
		return nil, errors.ErrMissingMethod
	case len(r.target) == 0:
		return nil, errors.ErrMissingTarget
	case r.err != nil:
		return nil, r.err
	}

	protocol := r.protocol
	if protocol == proto.Unknown {
		protocol = proto.HTTP11
	}

	f := fields.Request{
		Method:   r.method,
		Target:   r.target,
		Protocol: protocol,
		Headers:  r.assemble(),
		Body:     r.body,
	}

	if err := validate.RequestFields(f); err != nil {
		return nil, err
	}

	r.consume()
	*r = Request{staging: r.staging}

	return frozen.NewRequest(f), nil
}
