package http_test

import (
	"testing"

	"github.com/indigo-web/packet/builder"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/serialize"
	"github.com/indigo-web/packet/validate"
	"github.com/stretchr/testify/require"
)

func TestRequestImmutable(t *testing.T) {
	request, err := builder.NewRequest().
		Method(method.POST).
		Target("/").
		Header("Host", "example.com").
		Header("Accept", "text/plain").
		Chunked([]byte("Wiki"), []byte("pedia")).
		Trailer("Expires", "never").
		TryBuild()
	require.NoError(t, err)
	want := string(serialize.Request(request))

	request.Headers().Add("X-Evil", "a\r\nContent-Length: 5")
	request.Headers().Expose()[0].Value = "evil.com"
	request.HeaderValues("Accept")[0] = "a\r\nb"
	request.Body().Bytes()[0] = '\n'
	request.Body().Chunks()[1][0] = '\r'

	require.Equal(t, want, string(serialize.Request(request)))
	require.NoError(t, validate.Request(request))
	require.Equal(t, "example.com", request.Header("Host"))
	require.Equal(t, "Wikipedia", request.Body().String())
}

func TestResponseImmutable(t *testing.T) {
	response, err := builder.NewResponse().
		Code(status.OK).
		Header("Content-Type", "text/plain").
		String("Hello, world!").
		TryBuild()
	require.NoError(t, err)
	want := string(serialize.Response(response))

	response.Headers().Add("Set-Cookie", "a=b\r\n\r\nsmuggled")
	response.HeaderValues("Content-Type")[0] = "text/html"
	response.Body().Bytes()[0] = 'J'

	require.Equal(t, want, string(serialize.Response(response)))
	require.NoError(t, validate.Response(response))
	require.Equal(t, "text/plain", response.Header("Content-Type"))
}
