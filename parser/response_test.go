package parser

import (
	"testing"

	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/serialize"
	"github.com/stretchr/testify/require"
)

func parseResponse(t *testing.T, cfg *config.Config, raw string) (*http.Response, error) {
	p := NewResponse(cfg)
	state, extra, err := p.Parse([]byte(raw))
	if err != nil {
		require.Equal(t, Failed, state)
		return nil, err
	}

	require.Equal(t, Complete, state)
	require.Empty(t, extra)

	return p.Response(), nil
}

func TestResponse(t *testing.T) {
	cfg := config.Default()

	t.Run("fixed body", func(t *testing.T) {
		response, err := parseResponse(t, cfg, "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nWiki")
		require.NoError(t, err)
		require.Equal(t, proto.HTTP11, response.Protocol())
		require.Equal(t, status.OK, response.Code())
		require.Equal(t, "OK", response.Reason())
		require.Equal(t, "Wiki", response.Body().String())
	})

	t.Run("chunked body", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n0\r\n\r\n"
		response, err := parseResponse(t, cfg, raw)
		require.NoError(t, err)
		require.Equal(t, body.Chunked, response.Body().Kind())
		require.Equal(t, "Wiki", response.Body().String())
		require.Equal(t, raw, string(serialize.Response(response)))
	})

	t.Run("reason phrase", func(t *testing.T) {
		response, err := parseResponse(t, cfg, "HTTP/1.0 404 Not Found\r\n\r\n")
		require.NoError(t, err)
		require.Equal(t, proto.HTTP10, response.Protocol())
		require.Equal(t, "Not Found", response.Reason())

		response, err = parseResponse(t, cfg, "HTTP/1.1 200 \r\n\r\n")
		require.NoError(t, err)
		require.Empty(t, response.Reason())

		response, err = parseResponse(t, cfg, "HTTP/1.1 200\r\n\r\n")
		require.NoError(t, err)
		require.Empty(t, response.Reason())
		require.Equal(t, body.Absent, response.Body().Kind())
	})

	t.Run("no body statuses", func(t *testing.T) {
		_, err := parseResponse(t, cfg, "HTTP/1.1 204 No Content\r\nContent-Length: 4\r\n\r\nWiki")
		require.ErrorIs(t, err, errors.ErrBodyNotAllowed)

		_, err = parseResponse(t, cfg, "HTTP/1.1 101 Switching Protocols\r\nTransfer-Encoding: chunked\r\n\r\n")
		require.ErrorIs(t, err, errors.ErrBodyNotAllowed)

		response, err := parseResponse(t, cfg, "HTTP/1.1 204 No Content\r\n\r\n")
		require.NoError(t, err)
		require.Equal(t, body.Absent, response.Body().Kind())
	})

	t.Run("304 keeps the length of the cached representation", func(t *testing.T) {
		p := NewResponse(cfg)
		state, extra, err := p.Parse([]byte(
			"HTTP/1.1 304 Not Modified\r\nContent-Length: 100\r\n\r\nHTTP/1.1 200 OK\r\n\r\n",
		))
		require.NoError(t, err)
		require.Equal(t, Complete, state)
		require.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", string(extra))

		response := p.Response()
		require.Equal(t, body.Absent, response.Body().Kind())
		require.Equal(t, "100", response.Header("Content-Length"))
	})

	t.Run("trailers", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n0\r\nX-Checksum: 42\r\n\r\n"
		response, err := parseResponse(t, cfg, raw)
		require.NoError(t, err)
		require.True(t, response.Headers().HasTrailers())
		require.Equal(t, raw, string(serialize.Response(response)))
	})
}

func TestResponseMalformed(t *testing.T) {
	cfg := config.Default()

	for _, tc := range []struct {
		Name string
		Raw  string
		Err  error
	}{
		{"no code", "HTTP/1.1\r\n\r\n", errors.ErrBadStartLine},
		{"short code", "HTTP/1.1 20 OK\r\n\r\n", errors.ErrInvalidStatusCode},
		{"code out of range", "HTTP/1.1 600 Whatever\r\n\r\n", errors.ErrInvalidStatusCode},
		{"HTTP/3", "HTTP/3 200 OK\r\n\r\n", errors.ErrInvalidVersion},
		{"control in reason", "HTTP/1.1 200 O\x01K\r\n\r\n", errors.ErrInvalidReason},
		{"leading empty line", "\r\nHTTP/1.1 200 OK\r\n\r\n", errors.ErrBadStartLine},
		{"CL and TE", "HTTP/1.1 200 OK\r\nContent-Length: 1\r\nTransfer-Encoding: chunked\r\n\r\n", errors.ErrAmbiguousFraming},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := parseResponse(t, cfg, tc.Raw)
			require.ErrorIs(t, err, tc.Err)
		})
	}
}

func TestResponseReassembly(t *testing.T) {
	cfg := config.Default()
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"7\r\nMozilla\r\n11\r\nDeveloper Network\r\n0\r\nExpires: never\r\n\r\n"

	want, err := parseResponse(t, cfg, raw)
	require.NoError(t, err)
	require.Equal(t, "MozillaDeveloper Network", want.Body().String())

	for n := 1; n <= len(raw); n++ {
		p := NewResponse(cfg)
		state, _, err := feedPartially(p, []byte(raw), n)
		require.NoError(t, err, n)
		require.Equal(t, Complete, state, n)
		require.True(t, want.Equal(p.Response()), "split by %d", n)
	}
}
