package headers

import (
	"iter"
	"slices"
	"strings"
)

// Pair is a single field line. Trailer marks fields received (or to be sent) after
// the last chunk of a chunked body.
type Pair struct {
	Key, Value string
	Trailer    bool
}

// Headers is an ordered multi-map of field lines. Duplicates are kept in their
// insertion order; lookups are case-insensitive and served by a derived index
// from lower-cased names to positions.
type Headers struct {
	pairs []Pair
	index map[string][]int
}

func New() *Headers {
	return new(Headers)
}

// NewPrealloc returns an instance of Headers with pre-allocated underlying storage.
func NewPrealloc(n int) *Headers {
	return &Headers{
		pairs: make([]Pair, 0, n),
		index: make(map[string][]int, n),
	}
}

// FromPairs builds headers out of the pairs, keeping their order.
func FromPairs(pairs ...Pair) *Headers {
	h := NewPrealloc(len(pairs))
	for _, pair := range pairs {
		h.insert(pair)
	}

	return h
}

// Add appends a new field line.
func (h *Headers) Add(key, value string) *Headers {
	h.insert(Pair{Key: key, Value: value})
	return h
}

// AddTrailer appends a new field line flagged as a trailer.
func (h *Headers) AddTrailer(key, value string) *Headers {
	h.insert(Pair{Key: key, Value: value, Trailer: true})
	return h
}

func (h *Headers) insert(pair Pair) {
	if h.index == nil {
		h.index = make(map[string][]int)
	}

	name := strings.ToLower(pair.Key)
	h.index[name] = append(h.index[name], len(h.pairs))
	h.pairs = append(h.pairs, pair)
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (h *Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (h *Headers) ValueOr(key, or string) string {
	value, found := h.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found.
func (h *Headers) Get(key string) (value string, found bool) {
	positions := h.index[strings.ToLower(key)]
	if len(positions) == 0 {
		return "", false
	}

	return h.pairs[positions[0]].Value, true
}

// Values returns all values by the key in their original order. Returns nil if key
// doesn't exist. The returned slice is owned by the caller.
func (h *Headers) Values(key string) []string {
	positions := h.index[strings.ToLower(key)]
	if len(positions) == 0 {
		return nil
	}

	values := make([]string, len(positions))
	for i, pos := range positions {
		values[i] = h.pairs[pos].Value
	}

	return values
}

// Count returns how many field lines carry the key.
func (h *Headers) Count(key string) int {
	return len(h.index[strings.ToLower(key)])
}

// Has indicates, whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	return h.Count(key) > 0
}

// Keys returns all unique presented keys in order of their first appearance.
// The case of the first appearance is kept.
func (h *Headers) Keys() []string {
	var keys []string
	for i, pair := range h.pairs {
		if h.index[strings.ToLower(pair.Key)][0] == i {
			keys = append(keys, pair.Key)
		}
	}

	return keys
}

// Iter returns an iterator over all the pairs, trailers included.
func (h *Headers) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range h.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Fields returns an iterator over the pairs sent within the head.
func (h *Headers) Fields() iter.Seq[Pair] {
	return h.filter(false)
}

// Trailers returns an iterator over the pairs flagged as trailers.
func (h *Headers) Trailers() iter.Seq[Pair] {
	return h.filter(true)
}

func (h *Headers) filter(trailer bool) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, pair := range h.pairs {
			if pair.Trailer == trailer && !yield(pair) {
				break
			}
		}
	}
}

// HasTrailers reports whether at least one trailer is stored.
func (h *Headers) HasTrailers() bool {
	for _, pair := range h.pairs {
		if pair.Trailer {
			return true
		}
	}

	return false
}

// Len returns a number of stored pairs.
func (h *Headers) Len() int {
	return len(h.pairs)
}

func (h *Headers) Empty() bool {
	return h.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
func (h *Headers) Clone() *Headers {
	return FromPairs(h.pairs...)
}

// Expose returns a copy of the underlying pairs.
func (h *Headers) Expose() []Pair {
	return slices.Clone(h.pairs)
}

// Equal compares the pairs one by one, names are compared case-insensitively.
func (h *Headers) Equal(other *Headers) bool {
	return slices.EqualFunc(h.pairs, other.pairs, func(a, b Pair) bool {
		return strings.EqualFold(a.Key, b.Key) && a.Value == b.Value && a.Trailer == b.Trailer
	})
}

// Map groups values by their lower-cased keys. Handy in tests and for debugging.
func (h *Headers) Map() map[string][]string {
	m := make(map[string][]string, len(h.index))
	for key := range h.index {
		m[key] = h.Values(key)
	}

	return m
}
