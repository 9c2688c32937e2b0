// Package http exposes the immutable packets. A packet can be obtained only from
// the builder or the parser, both of which validate it beforehand; every getter
// returning a reference type returns a copy.
package http

import "github.com/indigo-web/packet/internal/frozen"

type (
	Request  = frozen.Request
	Response = frozen.Response
)
