// Package grammar classifies bytes according to the HTTP/1.x token grammar
// (RFC 9110, RFC 9112). Every function is a pure predicate: it returns nil when the
// input passes and an *errors.Error of kind errors.Grammar describing why it doesn't
// otherwise. The functions neither allocate nor keep references to the input.
package grammar

import (
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/internal/hexconv"
)

const (
	classTchar uint8 = 1 << iota
	classVchar
	classWS
)

// table holds character classes:
//
//	tchar = "!" / "#" / "$" / "%" / "&" / "'" / "*" / "+" / "-" / "." /
//	        "^" / "_" / "`" / "|" / "~" / DIGIT / ALPHA
//	VCHAR = %x21-7E
//	WS    = SP / HTAB
var table = func() (t [256]uint8) {
	for c := 0x21; c <= 0x7e; c++ {
		t[c] |= classVchar
	}

	for c := '0'; c <= '9'; c++ {
		t[c] |= classTchar
	}

	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classTchar
		t[c-'a'+'A'] |= classTchar
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		t[c] |= classTchar
	}

	t[' '] |= classWS
	t['\t'] |= classWS

	return t
}()

func IsTchar(c byte) bool {
	return table[c]&classTchar != 0
}

func IsVchar(c byte) bool {
	return table[c]&classVchar != 0
}

func IsWS(c byte) bool {
	return table[c]&classWS != 0
}

// Token checks whether str is a non-empty sequence of tchar.
func Token(str string) error {
	if len(str) == 0 {
		return errors.ErrEmptyToken
	}

	for i := 0; i < len(str); i++ {
		if !IsTchar(str[i]) {
			return errors.ErrInvalidToken
		}
	}

	return nil
}

// Method checks the method token.
func Method(str string) error {
	if err := Token(str); err != errors.ErrInvalidToken {
		return err
	}

	return errors.ErrInvalidMethod
}

// HeaderName checks the field-name. The name must be a token; a whitespace
// between the name and the colon is not allowed either.
func HeaderName(str string) error {
	if len(str) == 0 {
		return errors.ErrEmptyToken
	}

	for i := 0; i < len(str); i++ {
		if !IsTchar(str[i]) {
			return errors.ErrInvalidHeaderName
		}
	}

	return nil
}

// HeaderValue checks an already trimmed field-value. Only visible ASCII, SP and HTAB
// are permitted, so CR and LF can never be smuggled in. Empty values are allowed.
func HeaderValue(str string) error {
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == '\r':
			return errors.ErrHeaderValueCR
		case c == '\n':
			return errors.ErrHeaderValueLF
		case table[c]&(classVchar|classWS) == 0:
			return errors.ErrInvalidHeaderValue
		}
	}

	if len(str) > 0 && (IsWS(str[0]) || IsWS(str[len(str)-1])) {
		return errors.ErrInvalidHeaderValue
	}

	return nil
}

// Reason checks the reason-phrase of a status line. It may be empty.
func Reason(str string) error {
	for i := 0; i < len(str); i++ {
		if table[str[i]]&(classVchar|classWS) == 0 {
			return errors.ErrInvalidReason
		}
	}

	return nil
}

// Target checks the request-target syntax: a non-empty sequence of visible ASCII.
// Its form is checked separately, see TargetForm.
func Target(str string) error {
	if len(str) == 0 {
		return errors.ErrEmptyToken
	}

	for i := 0; i < len(str); i++ {
		if !IsVchar(str[i]) {
			return errors.ErrInvalidTarget
		}
	}

	return nil
}

// StatusCode parses exactly three digits within the 100-599 range.
func StatusCode(str string) (uint16, error) {
	if len(str) != 3 {
		return 0, errors.ErrInvalidStatusCode
	}

	var code uint16
	for i := 0; i < 3; i++ {
		c := str[i]
		if c < '0' || c > '9' {
			return 0, errors.ErrInvalidStatusCode
		}

		code = code*10 + uint16(c-'0')
	}

	if code < 100 || code > 599 {
		return 0, errors.ErrInvalidStatusCode
	}

	return code, nil
}

// maxContentLengthDigits keeps the value within int64.
const maxContentLengthDigits = 18

// ContentLength parses 1*DIGIT. Signs, whitespace and lists are rejected.
func ContentLength(str string) (int64, error) {
	if len(str) == 0 || len(str) > maxContentLengthDigits {
		return 0, errors.ErrBadContentLength
	}

	var n int64
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c < '0' || c > '9' {
			return 0, errors.ErrBadContentLength
		}

		n = n*10 + int64(c-'0')
	}

	return n, nil
}

// ChunkSize parses the chunk-size of a chunk line, the extensions (if any) are
// ignored. Whitespace is tolerated before the semicolon only.
func ChunkSize(line string, maxDigits int) (uint64, error) {
	var (
		size   uint64
		digits int
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ';':
			if digits == 0 {
				return 0, errors.ErrInvalidChunkSize
			}

			return size, chunkExt(line[i+1:])
		case IsWS(c):
			rest := line[i:]
			for len(rest) > 0 && IsWS(rest[0]) {
				rest = rest[1:]
			}

			if digits == 0 || (len(rest) > 0 && rest[0] != ';') {
				return 0, errors.ErrInvalidChunkSize
			}

			if len(rest) == 0 {
				return size, nil
			}

			return size, chunkExt(rest[1:])
		}

		val := hexconv.Halfbyte[c]
		if val == 0xFF {
			return 0, errors.ErrInvalidChunkSize
		}

		if digits++; digits > maxDigits {
			return 0, errors.ErrInvalidChunkSize
		}

		size = size<<4 | uint64(val)
	}

	if digits == 0 {
		return 0, errors.ErrInvalidChunkSize
	}

	return size, nil
}

// chunkExt only makes sure the ignored extension carries no control characters.
func chunkExt(ext string) error {
	for i := 0; i < len(ext); i++ {
		if table[ext[i]]&(classVchar|classWS) == 0 {
			return errors.ErrInvalidChunkSize
		}
	}

	return nil
}
