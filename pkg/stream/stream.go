package stream

import "unicode/utf8"

// Stream is the input capability the engine is generic over: any ordered,
// finite collection of elements that can report its next element and the
// remainder after consuming it. Implementations are values; consuming never
// mutates the receiver, it derives a new Stream.
type Stream[E any] interface {
	// Uncons returns the next element and the remainder of the stream.
	// The third result is false when the stream is empty.
	Uncons() (E, Stream[E], bool)
}

// Runes is a Stream of runes backed by a string, decoding UTF-8 lazily.
type Runes struct {
	src string
}

// NewRunes creates a rune stream over s.
func NewRunes(s string) Runes {
	return Runes{src: s}
}

// Uncons implements Stream.
func (r Runes) Uncons() (rune, Stream[rune], bool) {
	if len(r.src) == 0 {
		return 0, r, false
	}
	c, size := utf8.DecodeRuneInString(r.src)
	return c, Runes{src: r.src[size:]}, true
}

// String returns the unconsumed input.
func (r Runes) String() string {
	return r.src
}

// Bytes is a Stream of raw bytes. The backing data is copied into a string
// on construction so stream values compare structurally and cannot alias
// caller-owned buffers.
type Bytes struct {
	src string
}

// NewBytes creates a byte stream over data.
func NewBytes(data []byte) Bytes {
	return Bytes{src: string(data)}
}

// Uncons implements Stream.
func (b Bytes) Uncons() (byte, Stream[byte], bool) {
	if len(b.src) == 0 {
		return 0, b, false
	}
	return b.src[0], Bytes{src: b.src[1:]}, true
}

// Len returns the number of unconsumed bytes.
func (b Bytes) Len() int {
	return len(b.src)
}

// Slice is a Stream over an arbitrary token slice. The slice is shared, not
// copied; callers must not mutate it while a parse is in flight.
type Slice[E any] struct {
	elems []E
}

// NewSlice creates a token stream over elems.
func NewSlice[E any](elems []E) Slice[E] {
	return Slice[E]{elems: elems}
}

// Uncons implements Stream.
func (s Slice[E]) Uncons() (E, Stream[E], bool) {
	if len(s.elems) == 0 {
		var zero E
		return zero, s, false
	}
	return s.elems[0], Slice[E]{elems: s.elems[1:]}, true
}

// Len returns the number of unconsumed elements.
func (s Slice[E]) Len() int {
	return len(s.elems)
}
