package builder

import (
	"github.com/indigo-web/packet/errors"
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

// Response accumulates response fields. Same rules as for Request apply.
type Response struct {
	staging
	code      status.Code
	reason    string
	reasonSet bool
	protocol  proto.Proto
}

func NewResponse() *Response {
	return &Response{
		staging: staging{
			headers: make([]headers.Pair, 0, preallocHeaders),
		},
	}
}

// Code sets the status code. Unless Reason is called explicitly, the canonical reason
// phrase of the code is used (empty for unknown codes).
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Reason sets a custom reason phrase. It may be empty.
func (r *Response) Reason(reason string) *Response {
	r.reason = reason
	r.reasonSet = true
	return r
}

// Protocol sets the version. Defaults to HTTP/1.1.
func (r *Response) Protocol(protocol proto.Proto) *Response {
	r.protocol = protocol
	return r
}

// Header appends the values to the key, one field line per value.
func (r *Response) Header(key string, values ...string) *Response {
	r.header(key, values)
	return r
}

// Headers simply merges passed headers into the response. The map order isn't
// deterministic.
func (r *Response) Headers(headers map[string][]string) *Response {
	for key, values := range headers {
		r.header(key, values)
	}

	return r
}

// Trailer appends trailer fields. Requires a chunked body.
func (r *Response) Trailer(key string, values ...string) *Response {
	r.trailer(key, values)
	return r
}

// Body sets the body as is, without adding any framing headers.
func (r *Response) Body(b body.Body) *Response {
	r.setBody(b, framingRaw)
	return r
}

// Bytes sets a fixed-length body, adding Content-Length unless set explicitly.
// The data is copied.
func (r *Response) Bytes(data []byte) *Response {
	r.setBody(body.NewFixed(data), framingFixed)
	return r
}

// String sets the response's body to the passed string
func (r *Response) String(data string) *Response {
	return r.Bytes(uf.S2B(data))
}

// Chunked sets a chunked body, adding Transfer-Encoding: chunked unless set explicitly.
func (r *Response) Chunked(chunks ...[]byte) *Response {
	r.setBody(body.NewChunked(chunks...), framingChunked)
	return r
}

// TryJSON receives a model and marshals it into a fixed-length body.
func (r *Response) TryJSON(model any) (*Response, error) {
	return r, r.setJSON(model)
}

// JSON does the same as TryJSON does, except the error is returned by TryBuild.
func (r *Response) JSON(model any) *Response {
	if err := r.setJSON(model); err != nil {
		r.err = err
	}

	return r
}

// TryBuild validates the accumulated state and freezes it into an immutable response.
func (r *Response) TryBuild() (*http.Response, error) {
	if r.consumed {
		return nil, errors.ErrBuilderConsumed
	}

	if r.code == 0 {
		return nil, errors.ErrMissingStatus
	}

	if r.err != nil {
		return nil, r.err
	}

	protocol := r.protocol
	if protocol == proto.Unknown {
		protocol = proto.HTTP11
	}

	reason := r.reason
	if !r.reasonSet {
		reason = status.Text(r.code)
	}

	f := fields.Response{
		Protocol: protocol,
		Code:     r.code,
		Reason:   reason,
		Headers:  r.assemble(),
		Body:     r.body,
	}

	if err := validate.ResponseFields(f); err != nil {
		return nil, err
	}

	r.consume()
	*r = Response{staging: r.staging}

	return frozen.NewResponse(f), nil
}
