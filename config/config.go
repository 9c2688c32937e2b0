package config

import "log"

// TrailerPolicy defines what the parser does with trailer fields following the last
// chunk of a chunked body.
type TrailerPolicy uint8

const (
	// AcceptTrailers merges trailers into the header list, flagging them as trailers.
	AcceptTrailers TrailerPolicy = iota + 1
	// RejectTrailers fails the parsing if at least one trailer field is received.
	RejectTrailers
)

type (
	StartLineSize struct {
		Default, Maximal int
	}

	HeadersLineSize struct {
		Default, Maximal int
	}

	HeadersNumber struct {
		Default, Maximal int
	}
)

type (
	StartLine struct {
		// Size limits the buffer holding a start line split among several chunks of data.
		// Default is the initial capacity, Maximal is the hard cap on the line length, the
		// CRLF (or LF) terminator excluded. Exceeding it results in errors.ErrLineTooLong.
		Size StartLineSize
	}

	Headers struct {
		// LineSize is the same as StartLine.Size, but for every header (and trailer) line.
		LineSize HeadersLineSize
		// Number is responsible for the header list size.
		// Default value is an initial size of allocated header list.
		// Maximal value is maximum number of headers (trailers included) allowed to be presented.
		Number HeadersNumber
		// Trailers defines the trailer policy.
		Trailers TrailerPolicy
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. Bodies bigger
		// than that result in errors.ErrBodyTooLarge.
		MaxSize uint64
		// ChunkSizeDigits limits the number of hexadecimal digits of a chunk size. Values above 16
		// would overflow uint64.
		ChunkSizeDigits int
	}

	Leniency struct {
		// BareLF allows a bare LF to terminate lines. The serializer never emits it anyway.
		BareLF bool `test:"nullable"`
		// LeadingEmptyLines allows empty lines preceding a request line to be skipped.
		LeadingEmptyLines bool `test:"nullable"`
	}
)

// Config holds limits and policies of the parser.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	StartLine StartLine
	Headers   Headers
	Body      Body
	Leniency  Leniency
}

// Default returns default config. The line limits match common server limits.
func Default() *Config {
	return &Config{
		StartLine: StartLine{
			Size: StartLineSize{
				Default: 256,
				Maximal: 8 * 1024,
			},
		},
		Headers: Headers{
			LineSize: HeadersLineSize{
				Default: 256,
				Maximal: 8 * 1024,
			},
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
			Trailers: AcceptTrailers,
		},
		Body: Body{
			MaxSize:         512 * 1024 * 1024, // 512 megabytes
			ChunkSizeDigits: 16,
		},
		Leniency: Leniency{
			BareLF:            true,
			LeadingEmptyLines: true,
		},
	}
}

const maxChunkSizeDigits = 16

// Normalize clamps misconfigured values into their valid ranges, so the parser can rely on
// them. Every correction is logged.
func (c *Config) Normalize() *Config {
	clamp := func(name string, def, maximal *int) {
		if *maximal <= 0 {
			log.Printf("misconfiguration: %s.Maximal is set to %d, which is not positive. "+
				"Falling back to 1", name, *maximal)
			*maximal = 1
		}

		if *def <= 0 || *def > *maximal {
			log.Printf("misconfiguration: %s.Default (%d) is out of range (0, %d]. "+
				"Falling back to %d", name, *def, *maximal, *maximal)
			*def = *maximal
		}
	}

	clamp("StartLine.Size", &c.StartLine.Size.Default, &c.StartLine.Size.Maximal)
	clamp("Headers.LineSize", &c.Headers.LineSize.Default, &c.Headers.LineSize.Maximal)
	clamp("Headers.Number", &c.Headers.Number.Default, &c.Headers.Number.Maximal)

	if c.Body.ChunkSizeDigits <= 0 || c.Body.ChunkSizeDigits > maxChunkSizeDigits {
		log.Printf("misconfiguration: Body.ChunkSizeDigits is set to %d, which is out of range "+
			"(0, %d]. Falling back to %d", c.Body.ChunkSizeDigits, maxChunkSizeDigits, maxChunkSizeDigits)
		c.Body.ChunkSizeDigits = maxChunkSizeDigits
	}

	switch c.Headers.Trailers {
	case AcceptTrailers, RejectTrailers:
	default:
		log.Printf("misconfiguration: unknown trailer policy %d. Falling back to AcceptTrailers",
			c.Headers.Trailers)
		c.Headers.Trailers = AcceptTrailers
	}

	return c
}
