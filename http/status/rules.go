package status

// Valid reports whether the code fits into the three-digit 100-599 range.
func (c Code) Valid() bool {
	return c >= 100 && c <= 599
}

// Informational reports whether the code belongs to the 1xx class.
func (c Code) Informational() bool {
	return c >= 100 && c < 200
}

// AllowsBody reports whether a response with the code may enclose content.
// 1xx, 204 and 304 responses never do (RFC 9112, section 6.3).
func (c Code) AllowsBody() bool {
	return !c.Informational() && c != NoContent && c != NotModified
}

// AllowsFraming reports whether a response with the code may carry framing
// headers. A 304 may still announce Content-Length of the selected representation,
// while 1xx and 204 must carry neither Content-Length nor Transfer-Encoding.
func (c Code) AllowsFraming() bool {
	return !c.Informational() && c != NoContent
}

// KnownCodes lists every code with a canonical reason phrase.
var KnownCodes = func() (codes []Code) {
	for code := Code(100); code <= 599; code++ {
		if len(Text(code)) > 0 {
			codes = append(codes, code)
		}
	}

	return codes
}()
