package method

import (
	"strings"

	"github.com/indigo-web/packet/grammar"
)

// Method is a request method. The standard methods are represented by the constants
// below, any other valid token is an extension method. Methods are case-sensitive.
type Method string

const (
	Unknown Method = ""
	GET     Method = "GET"
	HEAD    Method = "HEAD"
	POST    Method = "POST"
	PUT     Method = "PUT"
	DELETE  Method = "DELETE"
	CONNECT Method = "CONNECT"
	OPTIONS Method = "OPTIONS"
	TRACE   Method = "TRACE"
	PATCH   Method = "PATCH"
)

// List contains all the standard HTTP methods.
var List = []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}

// Parse returns the standard method constant if str names one, an extension method
// if str is a valid token, and Unknown otherwise. The returned value never
// references str's memory.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 5:
		if str == "PATCH" {
			return PATCH
		} else if str == "TRACE" {
			return TRACE
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "CONNECT" {
			return CONNECT
		} else if str == "OPTIONS" {
			return OPTIONS
		}
	}

	if grammar.Method(str) != nil {
		return Unknown
	}

	return Method(strings.Clone(str))
}

// Extension reports whether the method is a valid non-standard one.
func (m Method) Extension() bool {
	if m == Unknown {
		return false
	}

	for _, std := range List {
		if m == std {
			return false
		}
	}

	return grammar.Method(string(m)) == nil
}

func (m Method) String() string {
	return string(m)
}
