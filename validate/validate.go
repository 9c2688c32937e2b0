// Package validate checks assembled packets against their structural invariants.
//
// Checks run in a fixed order: start line, then every header pair, then framing
// consistency between the body and its headers, then method and target combination
// rules. The first failing check is returned, the rest are not evaluated.
package validate

import (
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/grammar"
	"github.com/indigo-web/packet/http"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/http/method"
	"github.com/indigo-web/packet/http/proto"
	"github.com/indigo-web/packet/http/status"
	"github.com/indigo-web/packet/internal/fields"
	"github.com/indigo-web/packet/internal/frozen"
)

// Request validates an already constructed request.
func Request(request *http.Request) error {
	return RequestFields(frozen.RequestFields(request))
}

// Response validates an already constructed response.
func Response(response *http.Response) error {
	return ResponseFields(frozen.ResponseFields(response))
}

// Header checks a single header pair. The value must be already trimmed.
func Header(name, value string) error {
	if err := grammar.HeaderName(name); err != nil {
		return errors.Field(err, "header name")
	}

	if err := grammar.HeaderValue(value); err != nil {
		return errors.Field(err, "header "+name)
	}

	return nil
}

// RequestFields validates raw request fields before they are frozen into a packet.
func RequestFields(f fields.Request) error {
	if err := grammar.Method(string(f.Method)); err != nil {
		return errors.Field(err, "method")
	}

	if err := grammar.Target(f.Target); err != nil {
		return errors.Field(err, "target")
	}

	if err := version(f.Protocol); err != nil {
		return err
	}

	if err := headerList(f.Headers); err != nil {
		return err
	}

	mode, err := RequestBodyMode(f.Headers, f.Protocol)
	if err != nil {
		return err
	}

	if err = consistent(mode, f.Body, f.Headers); err != nil {
		return err
	}

	return targetForm(f.Method, f.Target)
}

// ResponseFields validates raw response fields before they are frozen into a packet.
func ResponseFields(f fields.Response) error {
	if err := version(f.Protocol); err != nil {
		return err
	}

	if !f.Code.Valid() {
		return errors.Field(errors.ErrInvalidStatusCode, "status")
	}

	if err := grammar.Reason(f.Reason); err != nil {
		return errors.Field(err, "reason")
	}

	if err := headerList(f.Headers); err != nil {
		return err
	}

	mode, err := ResponseBodyMode(f.Headers, f.Protocol, f.Code)
	if err != nil {
		return err
	}

	if !f.Code.AllowsBody() && f.Body.Kind() != body.Absent {
		return errors.ErrBodyNotAllowed
	}

	return consistent(mode, f.Body, f.Headers)
}

func version(protocol proto.Proto) error {
	switch protocol {
	case proto.HTTP10, proto.HTTP11:
		return nil
	default:
		return errors.Field(errors.ErrInvalidVersion, "version")
	}
}

func headerList(hdrs *headers.Headers) error {
	if hdrs == nil {
		return nil
	}

	for name, value := range hdrs.Iter() {
		if err := Header(name, value); err != nil {
			return err
		}
	}

	return nil
}

// consistent checks whether the body variant matches the mode derived from headers.
func consistent(mode BodyMode, b body.Body, hdrs *headers.Headers) error {
	if hdrs != nil && hdrs.HasTrailers() && b.Kind() != body.Chunked {
		return errors.ErrTrailerWithoutChunked
	}

	switch b.Kind() {
	case body.Absent:
		if mode.Kind != body.Absent {
			return errors.ErrFramingWithoutBody
		}
	case body.Fixed:
		switch mode.Kind {
		case body.Absent:
			return errors.ErrUnframedBody
		case body.Chunked:
			return errors.ErrBodyKindMismatch
		}

		if int64(b.Len()) != mode.Length {
			return errors.ErrContentLengthMismatch
		}
	case body.Chunked:
		switch mode.Kind {
		case body.Absent:
			return errors.ErrUnframedBody
		case body.Fixed:
			return errors.ErrBodyKindMismatch
		}

		for i := 0; i < b.ChunkCount(); i++ {
			if b.ChunkLen(i) == 0 {
				return errors.ErrEmptyChunk
			}
		}
	}

	return nil
}

// targetForm applies method and target combination rules: CONNECT requires
// the authority-form and is the only method allowed to use it, the asterisk-form
// is reserved for OPTIONS.
func targetForm(m method.Method, target string) error {
	switch grammar.TargetForm(target) {
	case grammar.OriginForm, grammar.AbsoluteForm:
		if m == method.CONNECT {
			return errors.ErrTargetForm
		}
	case grammar.AuthorityForm:
		if m != method.CONNECT {
			return errors.ErrTargetForm
		}
	case grammar.AsteriskForm:
		if m != method.OPTIONS {
			return errors.ErrTargetForm
		}
	default:
		return errors.Field(errors.ErrInvalidTarget, "target")
	}

	return nil
}
