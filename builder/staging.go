package builder

import (
	"strconv"

	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/mime"
	"github.com/indigo-web/packet/internal/strutil"
	json "github.com/json-iterator/go"
)

// why 7? Same as with preallocated response headers, it's a good guess.
const preallocHeaders = 7

// framing tells which framing headers must be added at build time, unless
// the caller set them explicitly.
type framing uint8

const (
	framingRaw framing = iota
	framingFixed
	framingChunked
)

// staging accumulates everything that request and response builders have in common.
// Accumulation never fails, everything is checked at build time.
type staging struct {
	headers  []headers.Pair
	trailers []headers.Pair
	body     body.Body
	framing  framing
	json     bool
	err      error
	consumed bool
}

func (s *staging) header(key string, values []string) {
	for _, value := range values {
		s.headers = append(s.headers, headers.Pair{Key: key, Value: value})
	}
}

func (s *staging) trailer(key string, values []string) {
	for _, value := range values {
		s.trailers = append(s.trailers, headers.Pair{Key: key, Value: value, Trailer: true})
	}
}

func (s *staging) setBody(b body.Body, f framing) {
	s.body = b
	s.framing = f
	s.json = false
	s.err = nil
}

func (s *staging) setJSON(model any) error {
	stream := json.ConfigDefault.BorrowStream(nil)
	stream.WriteVal(model)
	err := stream.Error
	if err == nil {
		s.setBody(body.NewFixed(stream.Buffer()), framingFixed)
		s.json = true
	}

	json.ConfigDefault.ReturnStream(stream)

	return err
}

// assemble builds a fresh header list out of the accumulated pairs. Values are
// trimmed, convenience framing headers are added unless set explicitly, and
// trailers always go last. The staging itself is left untouched.
func (s *staging) assemble() *headers.Headers {
	hdrs := headers.NewPrealloc(len(s.headers) + len(s.trailers) + 2)
	for _, pair := range s.headers {
		hdrs.Add(pair.Key, strutil.StripWS(pair.Value))
	}

	if s.json && !hdrs.Has("content-type") {
		hdrs.Add("Content-Type", mime.JSON)
	}

	framed := hdrs.Has("content-length") || hdrs.Has("transfer-encoding")
	switch {
	case framed:
	case s.framing == framingFixed:
		hdrs.Add("Content-Length", strconv.Itoa(s.body.Len()))
	case s.framing == framingChunked:
		hdrs.Add("Transfer-Encoding", "chunked")
	}

	for _, pair := range s.trailers {
		hdrs.AddTrailer(pair.Key, strutil.StripWS(pair.Value))
	}

	return hdrs
}

func (s *staging) consume() {
	*s = staging{consumed: true}
}
