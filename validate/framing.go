package validate

import (
	"strings"

	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/grammar"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

// BodyMode is the body extent derived from the framing headers.
type BodyMode struct {
	Kind body.Kind
	// Length is set for body.Fixed only.
	Length int64
}

// RequestBodyMode decides how the request body is delimited. Conflicting or malformed
// framing headers are always rejected instead of being resolved. A request carrying
// neither Content-Length nor Transfer-Encoding has no body.
//
// Both the parser (right after the head is received) and the validator rely on it,
// so they can never disagree on the body extent.
func RequestBodyMode(hdrs *headers.Headers, protocol proto.Proto) (BodyMode, error) {
	return bodyMode(hdrs, protocol)
}

// ResponseBodyMode does the same as RequestBodyMode does, additionally respecting the
// status code: 1xx and 204 responses must carry no framing headers at all, and 304
// responses may carry Content-Length, but never a body.
func ResponseBodyMode(hdrs *headers.Headers, protocol proto.Proto, code status.Code) (BodyMode, error) {
	if !code.AllowsFraming() &&
		(hdrs.Has("content-length") || hdrs.Has("transfer-encoding")) {
		return BodyMode{}, errors.ErrBodyNotAllowed
	}

	mode, err := bodyMode(hdrs, protocol)
	if err != nil {
		return mode, err
	}

	if !code.AllowsBody() {
		if mode.Kind == body.Chunked {
			return BodyMode{}, errors.ErrBodyNotAllowed
		}

		return BodyMode{Kind: body.Absent}, nil
	}

	return mode, nil
}

func bodyMode(hdrs *headers.Headers, protocol proto.Proto) (BodyMode, error) {
	for pair := range hdrs.Trailers() {
		if isFramingHeader(pair.Key) {
			return BodyMode{}, errors.ErrTrailerFraming
		}
	}

	contentLength := hdrs.Values("content-length")
	transferEncoding := hdrs.Values("transfer-encoding")

	switch {
	case len(contentLength) > 0 && len(transferEncoding) > 0:
		return BodyMode{}, errors.ErrAmbiguousFraming
	case len(transferEncoding) > 0:
		if protocol == proto.HTTP10 {
			return BodyMode{}, errors.ErrTransferEncodingHTTP10
		}

		if err := chunkedFinal(transferEncoding); err != nil {
			return BodyMode{}, err
		}

		return BodyMode{Kind: body.Chunked}, nil
	case len(contentLength) > 1:
		return BodyMode{}, errors.ErrMultipleContentLength
	case len(contentLength) == 1:
		length, err := grammar.ContentLength(contentLength[0])
		if err != nil {
			return BodyMode{}, err
		}

		return BodyMode{Kind: body.Fixed, Length: length}, nil
	default:
		return BodyMode{Kind: body.Absent}, nil
	}
}

// chunkedFinal makes sure chunked is applied exactly once and is the final coding.
// Codings may be split among several Transfer-Encoding lines.
func chunkedFinal(values []string) error {
	var codings, chunked int
	last := ""

	for _, value := range values {
		for coding := range strutil.List(value) {
			name := coding
			if semicolon := strings.IndexByte(coding, ';'); semicolon != -1 {
				name = strutil.RStripWS(coding[:semicolon])
			}

			if err := grammar.Token(name); err != nil {
				return errors.ErrChunkedNotFinal
			}

			if strcomp.EqualFold(name, "chunked") {
				if name != coding {
					// chunked has no parameters
					return errors.ErrChunkedNotFinal
				}

				chunked++
			}

			codings++
			last = name
		}
	}

	if codings == 0 || chunked != 1 || !strcomp.EqualFold(last, "chunked") {
		return errors.ErrChunkedNotFinal
	}

	return nil
}

func isFramingHeader(key string) bool {
	return strcomp.EqualFold(key, "content-length") || strcomp.EqualFold(key, "transfer-encoding")
}
