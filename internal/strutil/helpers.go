package strutil

import (
	"iter"
	"strings"
)

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS trims optional whitespace (SP and HTAB) on both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// List walks over the elements of a comma-separated header value. Elements are
// whitespace-stripped, empty ones are skipped.
func List(value string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(value) > 0 {
			var elem string
			comma := strings.IndexByte(value, ',')
			if comma == -1 {
				elem, value = value, ""
			} else {
				elem, value = value[:comma], value[comma+1:]
			}

			elem = StripWS(elem)
			if len(elem) == 0 {
				continue
			}

			if !yield(elem) {
				return
			}
		}
	}
}
