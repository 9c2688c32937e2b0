// Package serialize maps packets to their canonical byte representation. Packets are
// validated at construction, so serialization never fails.
//
// The canonical form is: the start line, header fields in their insertion order, an
// empty line, then the body. Every line is terminated by CRLF; a bare LF is never
// emitted. Fixed bodies are written verbatim, chunked ones keep their chunk layout
// (sizes in lower-case hex), followed by the zero-size chunk, trailer fields and the
// final CRLF.
package serialize

import (
	"io"
	"strconv"

	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/internal/frozen"
)

const crlf = "\r\n"

// Request returns the serialized request in a newly allocated slice.
func Request(request *http.Request) []byte {
	return AppendRequest(nil, request)
}

// Response returns the serialized response in a newly allocated slice.
func Response(response *http.Response) []byte {
	return AppendResponse(nil, response)
}

// AppendRequest appends the serialized request to dst and returns the extended slice.
func AppendRequest(dst []byte, request *http.Request) []byte {
	s := serializer{buff: dst}
	fields := frozen.RequestFields(request)

	s.buff = append(s.buff, fields.Method...)
	s.sp()
	s.buff = append(s.buff, fields.Target...)
	s.sp()
	s.appendProtocol(fields.Protocol)
	s.crlf()
	s.appendHeaders(fields.Headers)
	s.appendBody(fields.Body, fields.Headers)

	return s.buff
}

// AppendResponse appends the serialized response to dst and returns the extended slice.
func AppendResponse(dst []byte, response *http.Response) []byte {
	s := serializer{buff: dst}
	fields := frozen.ResponseFields(response)

	s.appendProtocol(fields.Protocol)
	s.sp()
	s.buff = strconv.AppendUint(s.buff, uint64(fields.Code), 10)
	s.sp()
	s.buff = append(s.buff, fields.Reason...)
	s.crlf()
	s.appendHeaders(fields.Headers)
	s.appendBody(fields.Body, fields.Headers)

	return s.buff
}

// Serializer writes packets into the writer, reusing the same buffer for all of them.
// Not safe for concurrent use.
type Serializer struct {
	w    io.Writer
	buff []byte
}

func NewSerializer(w io.Writer, buff []byte) *Serializer {
	return &Serializer{
		w:    w,
		buff: buff[:0],
	}
}

// WriteRequest serializes the request and writes it at once.
func (s *Serializer) WriteRequest(request *http.Request) error {
	s.buff = AppendRequest(s.buff[:0], request)
	return s.flush()
}

// WriteResponse serializes the response and writes it at once.
func (s *Serializer) WriteResponse(response *http.Response) error {
	s.buff = AppendResponse(s.buff[:0], response)
	return s.flush()
}

func (s *Serializer) flush() error {
	_, err := s.w.Write(s.buff)
	return err
}

type serializer struct {
	buff []byte
}

func (s *serializer) appendProtocol(protocol proto.Proto) {
	s.buff = append(s.buff, protocol.String()...)
}

func (s *serializer) appendHeaders(hdrs *headers.Headers) {
	for pair := range hdrs.Fields() {
		s.appendHeader(pair)
	}

	s.crlf()
}

func (s *serializer) appendHeader(pair headers.Pair) {
	s.buff = append(s.buff, pair.Key...)
	s.colonsp()
	s.buff = append(s.buff, pair.Value...)
	s.crlf()
}

func (s *serializer) appendBody(b body.Body, hdrs *headers.Headers) {
	switch b.Kind() {
	case body.Fixed:
		s.buff = b.AppendTo(s.buff)
	case body.Chunked:
		for i := 0; i < b.ChunkCount(); i++ {
			s.buff = strconv.AppendUint(s.buff, uint64(b.ChunkLen(i)), 16)
			s.crlf()
			s.buff = b.AppendChunk(s.buff, i)
			s.crlf()
		}

		s.buff = append(s.buff, '0')
		s.crlf()
		for pair := range hdrs.Trailers() {
			s.appendHeader(pair)
		}

		s.crlf()
	}
}

func (s *serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *serializer) colonsp() {
	s.buff = append(s.buff, ':', ' ')
}

func (s *serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}
