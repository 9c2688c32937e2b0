package builder

import (
	"testing"

	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		request, err := NewRequest().
			Method(method.GET).
			Target("/").
			Header("Host", "example.com").
			TryBuild()
		require.NoError(t, err)
		require.Equal(t, method.GET, request.Method())
		require.Equal(t, "/", request.Target())
		require.Equal(t, proto.HTTP11, request.Protocol())
		require.Equal(t, []headers.Pair{{Key: "Host", Value: "example.com"}}, request.Headers().Expose())
		require.Equal(t, body.Absent, request.Body().Kind())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := NewRequest().TryBuild()
		require.ErrorIs(t, err, errors.ErrMissingMethod)
		require.ErrorIs(t, err, errors.MissingField)

		_, err = NewRequest().Method(method.GET).TryBuild()
		require.ErrorIs(t, err, errors.ErrMissingTarget)

		_, err = NewRequest().Target("/").TryBuild()
		require.ErrorIs(t, err, errors.ErrMissingMethod)
	})

	t.Run("missing is reported before invalid", func(t *testing.T) {
		_, err := NewRequest().Method("GE T").Header("X", "a\rb").TryBuild()
		require.ErrorIs(t, err, errors.ErrMissingTarget)
	})

	t.Run("consumed", func(t *testing.T) {
		b := NewRequest().Method(method.GET).Target("/")
		_, err := b.TryBuild()
		require.NoError(t, err)

		_, err = b.TryBuild()
		require.ErrorIs(t, err, errors.ErrBuilderConsumed)
		require.ErrorIs(t, err, errors.Consumed)

		_, err = b.Method(method.POST).Target("/other").TryBuild()
		require.ErrorIs(t, err, errors.ErrBuilderConsumed)
	})

	t.Run("failed build keeps the state", func(t *testing.T) {
		b := NewRequest().Method("GE T").Target("/")
		_, err := b.TryBuild()
		require.ErrorIs(t, err, errors.ErrInvalidMethod)

		request, err := b.Method(method.GET).TryBuild()
		require.NoError(t, err)
		require.Equal(t, "/", request.Target())
	})

	t.Run("CR and LF in values", func(t *testing.T) {
		for _, value := range []string{"a\rb", "a\nb", "a\r\nSet-Cookie: x=y", "evil\r"} {
			_, err := NewRequest().Method(method.GET).Target("/").Header("X-Custom", value).TryBuild()
			require.ErrorIs(t, err, errors.Grammar, value)
		}
	})

	t.Run("values are trimmed", func(t *testing.T) {
		request, err := NewRequest().Method(method.GET).Target("/").Header("Host", " \texample.com  ").TryBuild()
		require.NoError(t, err)
		require.Equal(t, "example.com", request.Header("host"))
	})

	t.Run("ambiguous framing", func(t *testing.T) {
		for _, length := range []string{"0", "4", "1000"} {
			_, err := NewRequest().
				Method(method.POST).
				Target("/").
				Header("Content-Length", length).
				Header("Transfer-Encoding", "chunked").
				Chunked([]byte("Wiki")).
				TryBuild()
			require.ErrorIs(t, err, errors.ErrAmbiguousFraming, length)
		}
	})

	t.Run("bytes add content length", func(t *testing.T) {
		request, err := NewRequest().Method(method.POST).Target("/").String("Hello, world!").TryBuild()
		require.NoError(t, err)
		require.Equal(t, "13", request.Header("Content-Length"))
		require.Equal(t, "Hello, world!", request.Body().String())
	})

	t.Run("explicit content length wins", func(t *testing.T) {
		_, err := NewRequest().
			Method(method.POST).
			Target("/").
			Header("Content-Length", "5").
			String("Hello, world!").
			TryBuild()
		require.ErrorIs(t, err, errors.ErrContentLengthMismatch)
	})

	t.Run("raw body needs explicit framing", func(t *testing.T) {
		_, err := NewRequest().Method(method.POST).Target("/").Body(body.NewFixed([]byte("x"))).TryBuild()
		require.ErrorIs(t, err, errors.ErrUnframedBody)

		request, err := NewRequest().
			Method(method.POST).
			Target("/").
			Header("Content-Length", "1").
			Body(body.NewFixed([]byte("x"))).
			TryBuild()
		require.NoError(t, err)
		require.Equal(t, "x", request.Body().String())
	})

	t.Run("chunked with trailers", func(t *testing.T) {
		request, err := NewRequest().
			Method(method.POST).
			Target("/upload").
			Trailer("Expires", "never").
			Chunked([]byte("Wiki"), []byte("pedia")).
			Header("Host", "example.com").
			TryBuild()
		require.NoError(t, err)
		require.Equal(t, []headers.Pair{
			{Key: "Host", Value: "example.com"},
			{Key: "Transfer-Encoding", Value: "chunked"},
			{Key: "Expires", Value: "never", Trailer: true},
		}, request.Headers().Expose())
		require.Equal(t, 2, request.Body().ChunkCount())
	})

	t.Run("chunked in HTTP/1.0", func(t *testing.T) {
		_, err := NewRequest().
			Method(method.POST).
			Target("/").
			Protocol(proto.HTTP10).
			Chunked([]byte("Wiki")).
			TryBuild()
		require.ErrorIs(t, err, errors.ErrTransferEncodingHTTP10)
	})

	t.Run("empty chunk", func(t *testing.T) {
		_, err := NewRequest().
			Method(method.POST).
			Target("/").
			Chunked([]byte("Wiki"), nil, []byte("pedia")).
			TryBuild()
		require.ErrorIs(t, err, errors.ErrEmptyChunk)
	})

	t.Run("trailers without chunked", func(t *testing.T) {
		_, err := NewRequest().Method(method.GET).Target("/").Trailer("Expires", "never").TryBuild()
		require.ErrorIs(t, err, errors.ErrTrailerWithoutChunked)
	})

	t.Run("data is copied", func(t *testing.T) {
		data := []byte("Hello")
		b := NewRequest().Method(method.POST).Target("/").Bytes(data)
		data[0] = 'J'
		request, err := b.TryBuild()
		require.NoError(t, err)
		require.Equal(t, "Hello", request.Body().String())
	})

	t.Run("connect", func(t *testing.T) {
		_, err := NewRequest().Method(method.CONNECT).Target("example.com:443").TryBuild()
		require.NoError(t, err)

		_, err = NewRequest().Method(method.CONNECT).Target("/").TryBuild()
		require.ErrorIs(t, err, errors.ErrTargetForm)
	})

	t.Run("extension method", func(t *testing.T) {
		request, err := NewRequest().Method(method.Parse("PROPFIND")).Target("/dav").TryBuild()
		require.NoError(t, err)
		require.True(t, request.Method().Extension())
	})
}

func TestRequestJSON(t *testing.T) {
	type model struct {
		Name string `json:"name"`
	}

	request, err := NewRequest().Method(method.POST).Target("/").JSON(model{Name: "pavlo"}).TryBuild()
	require.NoError(t, err)
	require.Equal(t, `{"name":"pavlo"}`, request.Body().String())
	require.Equal(t, "application/json", request.Header("Content-Type"))
	require.Equal(t, "16", request.Header("Content-Length"))
	require.True(t, request.Body().IsJSON())

	t.Run("marshalling error", func(t *testing.T) {
		b, err := NewRequest().Method(method.POST).Target("/").TryJSON(make(chan int))
		require.Error(t, err)

		_, err = b.JSON(make(chan int)).TryBuild()
		require.Error(t, err)

		_, err = b.String("recovered").TryBuild()
		require.NoError(t, err)
	})
}

func TestResponse(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		_, err := NewResponse().String("Hello").TryBuild()
		require.ErrorIs(t, err, errors.ErrMissingStatus)
		require.ErrorIs(t, err, errors.MissingField)
	})

	t.Run("canonical reason", func(t *testing.T) {
		response, err := NewResponse().Code(status.NotFound).TryBuild()
		require.NoError(t, err)
		require.Equal(t, "Not Found", response.Reason())
		require.Equal(t, proto.HTTP11, response.Protocol())
	})

	t.Run("custom reason", func(t *testing.T) {
		response, err := NewResponse().Code(status.OK).Reason("").TryBuild()
		require.NoError(t, err)
		require.Empty(t, response.Reason())

		response, err = NewResponse().Code(599).Reason("Whatever").TryBuild()
		require.NoError(t, err)
		require.Equal(t, "Whatever", response.Reason())

		_, err = NewResponse().Code(status.OK).Reason("OK\r\nX: y").TryBuild()
		require.ErrorIs(t, err, errors.ErrInvalidReason)
	})

	t.Run("invalid code", func(t *testing.T) {
		_, err := NewResponse().Code(99).TryBuild()
		require.ErrorIs(t, err, errors.ErrInvalidStatusCode)
	})

	t.Run("chunked", func(t *testing.T) {
		response, err := NewResponse().Code(status.OK).Chunked([]byte("Wiki")).TryBuild()
		require.NoError(t, err)
		require.Equal(t, "chunked", response.Header("Transfer-Encoding"))
		require.Equal(t, "Wiki", response.Body().String())
	})

	t.Run("no content", func(t *testing.T) {
		_, err := NewResponse().Code(status.NoContent).TryBuild()
		require.NoError(t, err)

		_, err = NewResponse().Code(status.NoContent).String("").TryBuild()
		require.ErrorIs(t, err, errors.ErrBodyNotAllowed)
	})

	t.Run("consumed", func(t *testing.T) {
		b := NewResponse().Code(status.OK)
		_, err := b.TryBuild()
		require.NoError(t, err)
		_, err = b.Code(status.OK).TryBuild()
		require.ErrorIs(t, err, errors.ErrBuilderConsumed)
	})
}
