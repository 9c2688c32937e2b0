// Package frozen holds the immutable packet types. Packets are created and revealed
// only here, so nothing outside the module is able to construct a packet bypassing
// the validation, or to reach its underlying memory. The public names are aliased
// in the http package.
package frozen

import (
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/internal/fields"
)

// Request is an immutable request packet. It can be obtained only from the builder or
// the parser, both of which validate it beforehand.
type Request struct {
	fields fields.Request
}

// NewRequest freezes already validated fields. The request takes the ownership over
// them, so the caller must not modify the headers afterwards.
func NewRequest(f fields.Request) *Request {
	if f.Headers == nil {
		f.Headers = headers.New()
	}

	return &Request{fields: f}
}

// RequestFields returns the underlying fields without copying. The headers must not
// be modified.
func RequestFields(r *Request) fields.Request {
	return r.fields
}

func (r *Request) Method() method.Method {
	return r.fields.Method
}

// Target returns the request-target exactly as it appears in the request line.
func (r *Request) Target() string {
	return r.fields.Target
}

func (r *Request) Protocol() proto.Proto {
	return r.fields.Protocol
}

// Headers returns a copy of the header list, trailers included.
func (r *Request) Headers() *headers.Headers {
	return r.fields.Headers.Clone()
}

// Header returns the first value of the header, or an empty string.
func (r *Request) Header(key string) string {
	return r.fields.Headers.Value(key)
}

// HeaderValues returns all the values of the header in their original order.
func (r *Request) HeaderValues(key string) []string {
	return r.fields.Headers.Values(key)
}

func (r *Request) Body() body.Body {
	return r.fields.Body
}

// Equal reports whether both requests are equal in all observable fields.
func (r *Request) Equal(other *Request) bool {
	return r.fields.Method == other.fields.Method &&
		r.fields.Target == other.fields.Target &&
		r.fields.Protocol == other.fields.Protocol &&
		r.fields.Headers.Equal(other.fields.Headers) &&
		r.fields.Body.Equal(other.fields.Body)
}
