package frozen

import (
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/internal/fields"
)

// Response is an immutable response packet, see Request.
type Response struct {
	fields fields.Response
}

// NewResponse freezes already validated fields, see NewRequest.
func NewResponse(f fields.Response) *Response {
	if f.Headers == nil {
		f.Headers = headers.New()
	}

	return &Response{fields: f}
}

// ResponseFields returns the underlying fields without copying, see RequestFields.
func ResponseFields(r *Response) fields.Response {
	return r.fields
}

func (r *Response) Protocol() proto.Proto {
	return r.fields.Protocol
}

func (r *Response) Code() status.Code {
	return r.fields.Code
}

// Reason returns the reason phrase. It may be empty.
func (r *Response) Reason() string {
	return r.fields.Reason
}

// Headers returns a copy of the header list, trailers included.
func (r *Response) Headers() *headers.Headers {
	return r.fields.Headers.Clone()
}

// Header returns the first value of the header, or an empty string.
func (r *Response) Header(key string) string {
	return r.fields.Headers.Value(key)
}

func (r *Response) HeaderValues(key string) []string {
	return r.fields.Headers.Values(key)
}

func (r *Response) Body() body.Body {
	return r.fields.Body
}

// Equal reports whether both responses are equal in all observable fields.
func (r *Response) Equal(other *Response) bool {
	return r.fields.Protocol == other.fields.Protocol &&
		r.fields.Code == other.fields.Code &&
		r.fields.Reason == other.fields.Reason &&
		r.fields.Headers.Equal(other.fields.Headers) &&
		r.fields.Body.Equal(other.fields.Body)
}
