package stream

import "testing"

func TestRunesUncons(t *testing.T) {
	s := NewRunes("ab")

	r, rest, ok := s.Uncons()
	if !ok || r != 'a' {
		t.Fatalf("expected 'a', got %q (ok=%v)", r, ok)
	}
	r, rest, ok = rest.Uncons()
	if !ok || r != 'b' {
		t.Fatalf("expected 'b', got %q (ok=%v)", r, ok)
	}
	if _, _, ok = rest.Uncons(); ok {
		t.Error("expected exhausted stream")
	}
}

func TestRunesDecodesUTF8(t *testing.T) {
	s := NewRunes("дом")
	r, rest, ok := s.Uncons()
	if !ok || r != 'д' {
		t.Fatalf("expected multibyte rune, got %q (ok=%v)", r, ok)
	}
	if got := rest.(Runes).String(); got != "ом" {
		t.Errorf("remainder should start at the next rune boundary, got %q", got)
	}
}

func TestRunesValueSemantics(t *testing.T) {
	s := NewRunes("xy")
	s.Uncons()
	if got := s.String(); got != "xy" {
		t.Errorf("consuming must not mutate the receiver, got %q", got)
	}
	if s != NewRunes("xy") {
		t.Error("equal streams should compare equal")
	}
}

func TestBytesUncons(t *testing.T) {
	s := NewBytes([]byte{0x01, 0x02})
	b, rest, ok := s.Uncons()
	if !ok || b != 0x01 {
		t.Fatalf("expected 0x01, got %#x (ok=%v)", b, ok)
	}
	if rest.(Bytes).Len() != 1 {
		t.Errorf("expected 1 byte left, got %d", rest.(Bytes).Len())
	}
}

func TestBytesCopiesBacking(t *testing.T) {
	data := []byte("ab")
	s := NewBytes(data)
	data[0] = 'z'
	b, _, _ := s.Uncons()
	if b != 'a' {
		t.Errorf("stream must not alias the caller's buffer, got %q", b)
	}
}

func TestSliceUncons(t *testing.T) {
	type tok struct{ kind int }
	s := NewSlice([]tok{{1}, {2}})

	e, rest, ok := s.Uncons()
	if !ok || e.kind != 1 {
		t.Fatalf("expected first token, got %+v (ok=%v)", e, ok)
	}
	e, rest, ok = rest.Uncons()
	if !ok || e.kind != 2 {
		t.Fatalf("expected second token, got %+v (ok=%v)", e, ok)
	}
	if _, _, ok = rest.Uncons(); ok {
		t.Error("expected exhausted stream")
	}
}

func TestSliceEmpty(t *testing.T) {
	s := NewSlice[int](nil)
	if _, _, ok := s.Uncons(); ok {
		t.Error("empty slice stream should report no next element")
	}
}
