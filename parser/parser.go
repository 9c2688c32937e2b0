// Package parser implements incremental HTTP/1.x parsers. A parser consumes data in
// arbitrary-sized chunks (down to a single byte) and keeps its progress between calls,
// so a chunk boundary may fall anywhere, including the middle of a token.
//
// Every parser instance produces exactly one packet. Once complete, the packet is
// available via Request (or Response) and consequent calls to Parse return
// errors.ErrParserConsumed. A failed parser keeps returning the error it failed with.
package parser

import (
	"bytes"
	"strings"

	"github.com/indigo-web/packet/config"
	"github.com/indigo-web/packet/errors"
	"github.com/indigo-web/packet/grammar"
	"github.com/indigo-web/packet/http/body"
	"github.com/indigo-web/packet/http/headers"
	"github.com/indigo-web/packet/internal/buffer"
	"github.com/indigo-web/packet/internal/strutil"
	"github.com/indigo-web/packet/validate"
	"github.com/indigo-web/utils/uf"
)

// packet is implemented by request and response parsers, providing everything the
// core doesn't know about the concrete packet type.
type packet interface {
	// startLine parses an already terminated start line, without CRLF.
	startLine(line []byte) error
	// bodyMode decides the body extent once the head is received.
	bodyMode(hdrs *headers.Headers) (validate.BodyMode, error)
	// finish validates and freezes the packet.
	finish(hdrs *headers.Headers, b body.Body) error
	// skipsEmptyLines tells whether empty lines before the start line are ignored.
	skipsEmptyLines() bool
}

type core struct {
	cfg           *config.Config
	packet        packet
	state         State
	bodyState     bodyState
	err           error
	startLineBuff *buffer.Buffer
	lineBuff      *buffer.Buffer
	headers       *headers.Headers
	headersNum    int
	mode          validate.BodyMode
	body          body.Assembler
	// remaining is the number of bytes left of a fixed body or of the current chunk.
	remaining uint64
}

func newCore(cfg *config.Config, p packet) core {
	return core{
		cfg:           cfg,
		packet:        p,
		state:         AwaitingStartLine,
		// one extra byte is reserved for the CR, as limits don't cover the terminator
		startLineBuff: buffer.New(cfg.StartLine.Size.Default, cfg.StartLine.Size.Maximal+1),
		lineBuff:      buffer.New(cfg.Headers.LineSize.Default, cfg.Headers.LineSize.Maximal+1),
		headers:       headers.NewPrealloc(cfg.Headers.Number.Default),
	}
}

// Parse feeds the data. The returned state is Complete once the packet is ready; extra
// holds the bytes following it, which belong to the next packet. Any other state means
// more data is needed. Errors are always fatal.
func (c *core) Parse(data []byte) (state State, extra []byte, err error) {
	switch c.state {
	case Complete:
		return Complete, nil, errors.ErrParserConsumed
	case Failed:
		return Failed, nil, c.err
	}

	extra, err = c.parse(data)
	if err != nil {
		c.state = Failed
		c.err = err
		c.startLineBuff.Clear()
		c.lineBuff.Clear()

		return Failed, nil, err
	}

	return c.state, extra, nil
}

// State returns the current parser state.
func (c *core) State() State {
	return c.state
}

func (c *core) parse(data []byte) (extra []byte, err error) {
	switch c.state {
	case AwaitingStartLine:
		goto startLine
	case AwaitingHeaders:
		goto headerLine
	case AwaitingBody:
		switch c.bodyState {
		case eFixed:
			goto fixedBody
		case eChunkSize:
			goto chunkSize
		case eChunkData:
			goto chunkData
		case eChunkDataCR:
			goto chunkDataCR
		case eChunkDataLF:
			goto chunkDataLF
		case eTrailer:
			goto trailer
		}
	}

	panic("BUG: parser: unknown state")

startLine:
	{
		line, rest, ok, err := c.readLine(c.startLineBuff, c.cfg.StartLine.Size.Maximal, data)
		if err != nil || !ok {
			return nil, err
		}

		data = rest
		if len(line) == 0 {
			c.startLineBuff.Clear()
			if c.packet.skipsEmptyLines() {
				goto startLine
			}

			return nil, errors.ErrBadStartLine
		}

		err = c.packet.startLine(line)
		c.startLineBuff.Clear()
		if err != nil {
			return nil, parseFailed(err)
		}

		c.state = AwaitingHeaders
		// fallthrough to headerLine
	}

headerLine:
	{
		line, rest, ok, err := c.readLine(c.lineBuff, c.cfg.Headers.LineSize.Maximal, data)
		if err != nil || !ok {
			return nil, err
		}

		data = rest
		if len(line) == 0 {
			c.lineBuff.Clear()
			goto headersCompleted
		}

		if c.headersNum++; c.headersNum > c.cfg.Headers.Number.Maximal {
			return nil, errors.ErrTooManyHeaders
		}

		key, value, err := fieldLine(line)
		c.lineBuff.Clear()
		if err != nil {
			return nil, err
		}

		c.headers.Add(key, value)
		goto headerLine
	}

headersCompleted:
	c.mode, err = c.packet.bodyMode(c.headers)
	if err != nil {
		return nil, parseFailed(err)
	}

	c.state = AwaitingBody

	switch c.mode.Kind {
	case body.Fixed:
		if uint64(c.mode.Length) > c.cfg.Body.MaxSize {
			return nil, errors.ErrBodyTooLarge
		}

		c.remaining = uint64(c.mode.Length)
		c.bodyState = eFixed
		goto fixedBody
	case body.Chunked:
		c.bodyState = eChunkSize
		goto chunkSize
	default:
		return data, c.complete(body.None())
	}

fixedBody:
	{
		n := min(c.remaining, uint64(len(data)))
		c.body.Write(data[:n])
		c.remaining -= n
		data = data[n:]

		if c.remaining > 0 {
			return nil, nil
		}

		return data, c.complete(c.body.Fixed())
	}

chunkSize:
	{
		line, rest, ok, err := c.readLine(c.lineBuff, c.cfg.Headers.LineSize.Maximal, data)
		if err != nil || !ok {
			return nil, err
		}

		data = rest
		size, err := grammar.ChunkSize(uf.B2S(line), c.cfg.Body.ChunkSizeDigits)
		c.lineBuff.Clear()
		if err != nil {
			return nil, errors.Wrap(errors.ParseFailed, err)
		}

		if size == 0 {
			c.bodyState = eTrailer
			goto trailer
		}

		if size > c.cfg.Body.MaxSize-uint64(c.body.Len()) {
			return nil, errors.ErrBodyTooLarge
		}

		c.body.NextChunk()
		c.remaining = size
		c.bodyState = eChunkData
		// fallthrough to chunkData
	}

chunkData:
	{
		n := min(c.remaining, uint64(len(data)))
		c.body.Write(data[:n])
		c.remaining -= n
		data = data[n:]

		if c.remaining > 0 {
			return nil, nil
		}

		c.bodyState = eChunkDataCR
		// fallthrough to chunkDataCR
	}

chunkDataCR:
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '\r':
		data = data[1:]
		c.bodyState = eChunkDataLF
		goto chunkDataLF
	case '\n':
		if !c.cfg.Leniency.BareLF {
			return nil, errors.ErrBareLF
		}

		data = data[1:]
		c.bodyState = eChunkSize
		goto chunkSize
	default:
		return nil, errors.ErrBadChunk
	}

chunkDataLF:
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] != '\n' {
		return nil, errors.ErrBareCR
	}

	data = data[1:]
	c.bodyState = eChunkSize
	goto chunkSize

trailer:
	{
		line, rest, ok, err := c.readLine(c.lineBuff, c.cfg.Headers.LineSize.Maximal, data)
		if err != nil || !ok {
			return nil, err
		}

		data = rest
		if len(line) == 0 {
			c.lineBuff.Clear()
			return data, c.complete(c.body.Chunked())
		}

		if c.cfg.Headers.Trailers == config.RejectTrailers {
			return nil, errors.ErrTrailersDenied
		}

		if c.headersNum++; c.headersNum > c.cfg.Headers.Number.Maximal {
			return nil, errors.ErrTooManyHeaders
		}

		key, value, err := fieldLine(line)
		c.lineBuff.Clear()
		if err != nil {
			return nil, err
		}

		c.headers.AddTrailer(key, value)
		goto trailer
	}
}

// readLine accumulates a line terminated by CRLF (or a bare LF, if allowed). ok is
// false when the line isn't terminated yet. The returned line excludes the terminator,
// which isn't counted against maxLen either, and is valid until the buffer is cleared.
func (c *core) readLine(buff *buffer.Buffer, maxLen int, data []byte) (line, rest []byte, ok bool, err error) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		if !buff.Append(data) {
			return nil, nil, false, errors.ErrLineTooLong
		}

		return nil, nil, false, nil
	}

	line, ok = buff.Complete(data[:lf])
	if !ok {
		return nil, nil, false, errors.ErrLineTooLong
	}

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	} else if !c.cfg.Leniency.BareLF {
		return nil, nil, false, errors.ErrBareLF
	}

	if len(line) > maxLen {
		return nil, nil, false, errors.ErrLineTooLong
	}

	return line, data[lf+1:], true, nil
}

func (c *core) complete(b body.Body) error {
	if err := c.packet.finish(c.headers, b); err != nil {
		return parseFailed(err)
	}

	c.state = Complete
	c.headers = nil

	return nil
}

// fieldLine splits a header (or trailer) line into the name and the trimmed value,
// checking both against the grammar. The returned strings are copies.
func fieldLine(line []byte) (key, value string, err error) {
	if grammar.IsWS(line[0]) {
		return "", "", errors.ErrHeaderFolding
	}

	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return "", "", errors.ErrBadHeaderLine
	}

	key = uf.B2S(line[:colon])
	value = strutil.StripWS(uf.B2S(line[colon+1:]))
	if err = validate.Header(key, value); err != nil {
		return "", "", errors.Wrap(errors.ParseFailed, err)
	}

	return strings.Clone(key), strings.Clone(value), nil
}

// parseFailed reports grammar violations as parse failures, keeping the original
// error as the cause. Other kinds are returned as is.
func parseFailed(err error) error {
	if errors.KindOf(err) == errors.Grammar {
		return errors.Wrap(errors.ParseFailed, err)
	}

	return err
}
