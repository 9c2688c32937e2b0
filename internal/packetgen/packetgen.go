// Package packetgen generates random valid packets for property tests and benchmarks.
package packetgen

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/packet/builder"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
)

// Headers returns n-1 random pairs plus the Host header.
func Headers(n int) *headers.Headers {
	hdrs := headers.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("X-"+uniuri.NewLen(8)+"-"+strconv.Itoa(i), uniuri.NewLen(16))
	}

	return hdrs.Add("Host", "localhost")
}

// HeadersBlock renders the header fields, without the terminating empty line.
func HeadersBlock(hdrs *headers.Headers) (buff []byte) {
	for key, value := range hdrs.Iter() {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

// Generate renders a GET request by hand, bypassing the builder.
func Generate(uri string, hdrs *headers.Headers) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// Request builds a random valid request.
func Request() *http.Request {
	protocol := randomProto()
	b := builder.NewRequest().Protocol(protocol)

	switch m := randomMethod(); m {
	case method.CONNECT:
		b.Method(m).Target(strings.ToLower(uniuri.NewLen(10)) + ".com:443")
	case method.OPTIONS:
		b.Method(m).Target("*")
	default:
		b.Method(m).Target("/" + uniuri.NewLen(rand.IntN(32)) + "?q=" + uniuri.NewLen(4))
	}

	for key, value := range Headers(rand.IntN(10) + 1).Iter() {
		b.Header(key, value)
	}

	switch rand.IntN(3) {
	case 1:
		b.Bytes(randomData())
	case 2:
		if protocol == proto.HTTP11 {
			b.Chunked(randomChunks()...)
			if rand.IntN(2) == 0 {
				b.Trailer("X-Checksum", uniuri.NewLen(12))
			}
		}
	}

	request, err := b.TryBuild()
	if err != nil {
		panic("BUG: packetgen: generated an invalid request: " + err.Error())
	}

	return request
}

// Response builds a random valid response.
func Response() *http.Response {
	protocol := randomProto()
	code := status.KnownCodes[rand.IntN(len(status.KnownCodes))]
	b := builder.NewResponse().Protocol(protocol).Code(code)

	for key, value := range Headers(rand.IntN(10) + 1).Iter() {
		if key != "Host" {
			b.Header(key, value)
		}
	}

	if code.AllowsBody() {
		switch rand.IntN(3) {
		case 1:
			b.Bytes(randomData())
		case 2:
			if protocol == proto.HTTP11 {
				b.Chunked(randomChunks()...)
			}
		}
	}

	response, err := b.TryBuild()
	if err != nil {
		panic("BUG: packetgen: generated an invalid response: " + err.Error())
	}

	return response
}

func randomProto() proto.Proto {
	if rand.IntN(4) == 0 {
		return proto.HTTP10
	}

	return proto.HTTP11
}

func randomMethod() method.Method {
	if rand.IntN(10) == 0 {
		return method.Parse(strings.ToUpper(uniuri.NewLenChars(8, []byte("abcdefghijklmnopqrstuvwxyz"))))
	}

	return method.List[rand.IntN(len(method.List))]
}

func randomData() []byte {
	return []byte(uniuri.NewLen(rand.IntN(512)))
}

func randomChunks() [][]byte {
	chunks := make([][]byte, rand.IntN(5)+1)
	for i := range chunks {
		chunks[i] = []byte(uniuri.NewLen(rand.IntN(300) + 1))
	}

	return chunks
}
