package errors

import stderrors "errors"

// Kind classifies an error. Kind implements error itself, so a whole category can
// be matched via errors.Is(err, errors.Grammar).
type Kind uint8

const (
	// Grammar means a token violates its character-set rules.
	Grammar Kind = iota + 1
	// FramingAmbiguity means conflicting or missing body-length signals.
	FramingAmbiguity
	// MissingField is returned by builders only, when a mandatory field was never set.
	MissingField
	// Incomplete is not a true failure: more bytes are needed.
	Incomplete
	// ParseFailed means malformed bytes were received.
	ParseFailed
	// LimitExceeded means a buffered unterminated token overflowed its configured cap.
	LimitExceeded
	// Consumed means a single-use object (builder or parser) was used again.
	Consumed
)

func (k Kind) Error() string {
	switch k {
	case Grammar:
		return "grammar error"
	case FramingAmbiguity:
		return "framing ambiguity"
	case MissingField:
		return "missing required field"
	case Incomplete:
		return "stream incomplete"
	case ParseFailed:
		return "parse failed"
	case LimitExceeded:
		return "limit exceeded"
	case Consumed:
		return "already consumed"
	default:
		return "unknown error"
	}
}

// Error is the only error type returned by the packet toolkit.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Wrap returns a new error of the kind, keeping the cause reachable via errors.Is
// and errors.As. The message of the cause is reused.
func Wrap(kind Kind, cause error) error {
	return &Error{
		Kind:    kind,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// Field attaches the name of the offending field to the message.
func Field(err error, field string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}

	return &Error{
		Kind:    e.Kind,
		Message: field + ": " + e.Message,
		Cause:   e,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	kind, ok := target.(Kind)
	return ok && kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the outermost *Error in the chain, or 0.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}

		err = u.Unwrap()
	}

	return 0
}

// Is mirrors the standard errors.Is, so importers don't have to rename one of the
// packages.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As mirrors the standard errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

var (
	ErrEmptyToken         = New(Grammar, "empty token")
	ErrInvalidToken       = New(Grammar, "invalid token character")
	ErrInvalidMethod      = New(Grammar, "invalid method character")
	ErrInvalidHeaderName  = New(Grammar, "invalid header name character")
	ErrHeaderValueCR      = New(Grammar, "header value contains CR")
	ErrHeaderValueLF      = New(Grammar, "header value contains LF")
	ErrInvalidHeaderValue = New(Grammar, "invalid header value character")
	ErrInvalidReason      = New(Grammar, "invalid reason phrase character")
	ErrInvalidTarget      = New(Grammar, "invalid request target")
	ErrInvalidVersion     = New(Grammar, "unsupported or malformed HTTP version")
	ErrInvalidStatusCode  = New(Grammar, "status code must be three digits within 100-599")
	ErrInvalidChunkSize   = New(Grammar, "malformed chunk size")
	ErrBadContentLength   = New(Grammar, "malformed Content-Length value")
	ErrTargetForm         = New(Grammar, "request target form is not allowed for the method")

	ErrAmbiguousFraming       = New(FramingAmbiguity, "both Content-Length and Transfer-Encoding are present")
	ErrMultipleContentLength  = New(FramingAmbiguity, "multiple Content-Length headers")
	ErrContentLengthMismatch  = New(FramingAmbiguity, "Content-Length doesn't match the body length")
	ErrUnframedBody           = New(FramingAmbiguity, "body present without Content-Length or chunked Transfer-Encoding")
	ErrChunkedNotFinal        = New(FramingAmbiguity, "chunked must be the final transfer coding")
	ErrFramingWithoutBody     = New(FramingAmbiguity, "framing headers present without a body")
	ErrTransferEncodingHTTP10 = New(FramingAmbiguity, "Transfer-Encoding is not allowed in HTTP/1.0")
	ErrBodyNotAllowed         = New(FramingAmbiguity, "the status code doesn't allow a body")
	ErrEmptyChunk             = New(FramingAmbiguity, "zero-length chunk inside a chunked body")
	ErrTrailerFraming         = New(FramingAmbiguity, "framing headers are not allowed in trailers")
	ErrTrailerWithoutChunked  = New(FramingAmbiguity, "trailers require a chunked body")
	ErrBodyKindMismatch       = New(FramingAmbiguity, "body variant doesn't match the framing headers")

	ErrMissingMethod = New(MissingField, "method is not set")
	ErrMissingTarget = New(MissingField, "request target is not set")
	ErrMissingStatus = New(MissingField, "status code is not set")

	ErrIncomplete = New(Incomplete, "stream ended before the packet was complete")

	ErrBadStartLine   = New(ParseFailed, "malformed start line")
	ErrBadHeaderLine  = New(ParseFailed, "malformed header line")
	ErrHeaderFolding  = New(ParseFailed, "obsolete header folding is not allowed")
	ErrBadChunk       = New(ParseFailed, "malformed chunk-encoded data")
	ErrBareCR         = New(ParseFailed, "bare CR in line terminator")
	ErrBareLF         = New(ParseFailed, "bare LF line terminator")
	ErrTrailersDenied = New(ParseFailed, "trailer fields are rejected by policy")

	ErrLineTooLong    = New(LimitExceeded, "line too long")
	ErrTooManyHeaders = New(LimitExceeded, "too many headers")
	ErrBodyTooLarge   = New(LimitExceeded, "body is too large")

	ErrBuilderConsumed = New(Consumed, "builder has already produced a packet")
	ErrParserConsumed  = New(Consumed, "parser has already produced a packet")
)
