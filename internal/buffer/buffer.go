package buffer

// Buffer accumulates a single line, split among several chunks of data. The limit
// covers the whole line: once it's exceeded, the buffer refuses to grow.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(data []byte) (ok bool) {
	if len(b.memory)+len(data) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, data...)
	return true
}

// Complete appends the tail of the line and returns the whole line. If nothing was
// buffered before, the tail itself is returned without copying. The returned line
// stays valid until the next Clear.
func (b *Buffer) Complete(tail []byte) (line []byte, ok bool) {
	if len(b.memory) == 0 {
		return tail, len(tail) <= b.maxSize
	}

	if !b.Append(tail) {
		return nil, false
	}

	return b.memory, true
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
