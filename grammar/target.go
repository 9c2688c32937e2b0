package grammar

import "strings"

// Form is the form of a request-target (RFC 9112, section 3.2).
type Form uint8

const (
	Malformed Form = iota
	OriginForm
	AbsoluteForm
	AuthorityForm
	AsteriskForm
)

func (f Form) String() string {
	switch f {
	case OriginForm:
		return "origin-form"
	case AbsoluteForm:
		return "absolute-form"
	case AuthorityForm:
		return "authority-form"
	case AsteriskForm:
		return "asterisk-form"
	default:
		return "malformed"
	}
}

// TargetForm recognizes the form of a syntactically valid target. The target
// isn't interpreted any further.
func TargetForm(target string) Form {
	switch {
	case len(target) == 0:
		return Malformed
	case target == "*":
		return AsteriskForm
	case target[0] == '/':
		return OriginForm
	case isAbsolute(target):
		return AbsoluteForm
	case isAuthority(target):
		return AuthorityForm
	default:
		return Malformed
	}
}

// isAbsolute checks for `scheme "://"`, where scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isAbsolute(target string) bool {
	sep := strings.Index(target, "://")
	if sep <= 0 {
		return false
	}

	for i := 0; i < sep; i++ {
		c := target[i] | 0x20
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (target[i] >= '0' && target[i] <= '9' || target[i] == '+' ||
			target[i] == '-' || target[i] == '.'):
		default:
			return false
		}
	}

	return len(target) > sep+len("://")
}

// isAuthority checks for `host ":" port`, where port consists of digits only.
func isAuthority(target string) bool {
	if strings.ContainsAny(target, "/?#@") {
		return false
	}

	colon := strings.LastIndexByte(target, ':')
	if colon <= 0 || colon == len(target)-1 {
		return false
	}

	for _, c := range []byte(target[colon+1:]) {
		if c < '0' || c > '9' {
			return false
		}
	}

	host := target[:colon]
	if host[0] == '[' {
		return host[len(host)-1] == ']' && len(host) > 2
	}

	return !strings.ContainsAny(host, "[]:")
}
