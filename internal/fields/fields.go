package fields

import (
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
)

// Request holds raw request fields. They are filled by the builder and the parser
// and frozen into http.Request afterwards.
type Request struct {
	Method   method.Method
	Target   string
	Protocol proto.Proto
	Headers  *headers.Headers
	Body     body.Body
}

// Response holds raw response fields, see Request.
type Response struct {
	Protocol proto.Proto
	Code     status.Code
	Reason   string
	Headers  *headers.Headers
	Body     body.Body
}

func (r Request) Clear() Request {
	r.Method = method.Unknown
	r.Target = ""
	r.Protocol = proto.Unknown
	r.Headers = nil
	r.Body = body.None()

	return r
}

func (r Response) Clear() Response {
	r.Protocol = proto.Unknown
	r.Code = 0
	r.Reason = ""
	r.Headers = nil
	r.Body = body.None()

	return r
}
