// Package mime holds the media types the toolkit sets on its own, plus a few common
// ones for convenience.
package mime

import (
	"strings"

	"github.com/indigo-web/packet/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	JSON           MIME = "application/json"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	Multipart      MIME = "multipart/form-data"
)

// Complies reports whether the Content-Type value denotes the mime, ignoring any
// parameters. An empty value complies with any mime.
func Complies(mime MIME, contentType string) bool {
	contentType, _, _ = strings.Cut(contentType, ";")
	contentType = strutil.StripWS(contentType)

	return len(contentType) == 0 || strcomp.EqualFold(contentType, mime)
}
