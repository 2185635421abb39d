package parsec

import (
	"strconv"
	"strings"
	"unicode"

	"parsec/pkg/parseerr"
)

// Char accepts exactly the rune want.
func Char(want rune) Parser[rune, rune] {
	return Label(Satisfy(func(r rune) bool { return r == want }), strconv.QuoteRune(want))
}

// AnyChar accepts any single rune.
func AnyChar() Parser[rune, rune] {
	return Satisfy(func(rune) bool { return true })
}

// OneOf accepts any rune contained in set.
func OneOf(set string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(set, r) })
}

// NoneOf accepts any rune not contained in set.
func NoneOf(set string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return !strings.ContainsRune(set, r) })
}

// Str accepts the runes of want in order and yields want itself. Matching
// consumes as it goes: a mismatch after the first rune is a Consumed-Error,
// so alternatives sharing a prefix need an explicit Attempt. The diagnostic
// is anchored at the position where the match began.
func Str(want string) Parser[rune, string] {
	return func(s State[rune]) Reply[rune, string] {
		expected := []string{strconv.Quote(want)}
		cur := s
		consumed := false
		for _, r := range want {
			elem, rest, ok := cur.Input.Uncons()
			if !ok {
				err := parseerr.New(s.Pos, parseerr.KindSysUnexpect, "").WithExpected(expected)
				return Reply[rune, string]{Consumed: consumed, Err: err}
			}
			if elem != r {
				err := parseerr.New(s.Pos, parseerr.KindSysUnexpect, strconv.QuoteRune(elem)).WithExpected(expected)
				return Reply[rune, string]{Consumed: consumed, Err: err}
			}
			cur = State[rune]{Input: rest, Pos: cur.Pos.Advance(elem), User: cur.User}
			consumed = true
		}
		return Reply[rune, string]{Consumed: consumed, Ok: true, Value: want, State: cur}
	}
}

// Space accepts a single whitespace rune.
func Space() Parser[rune, rune] {
	return Label(Satisfy(unicode.IsSpace), "space")
}

// Spaces skips zero or more whitespace runes.
func Spaces() Parser[rune, any] {
	return Label(SkipMany(Satisfy(unicode.IsSpace)), "white space")
}

// Newline accepts a line feed.
func Newline() Parser[rune, rune] {
	return Label(Char('\n'), "new line")
}

// Tab accepts a tab.
func Tab() Parser[rune, rune] {
	return Label(Char('\t'), "tab")
}

// Upper accepts an upper-case letter.
func Upper() Parser[rune, rune] {
	return Label(Satisfy(unicode.IsUpper), "uppercase letter")
}

// Lower accepts a lower-case letter.
func Lower() Parser[rune, rune] {
	return Label(Satisfy(unicode.IsLower), "lowercase letter")
}

// Letter accepts a letter.
func Letter() Parser[rune, rune] {
	return Label(Satisfy(unicode.IsLetter), "letter")
}

// Digit accepts a decimal digit.
func Digit() Parser[rune, rune] {
	return Label(Satisfy(unicode.IsDigit), "digit")
}

// HexDigit accepts a hexadecimal digit.
func HexDigit() Parser[rune, rune] {
	return Label(Satisfy(isHexDigit), "hexadecimal digit")
}

// OctDigit accepts an octal digit.
func OctDigit() Parser[rune, rune] {
	return Label(Satisfy(func(r rune) bool { return r >= '0' && r <= '7' }), "octal digit")
}

// AlphaNum accepts a letter or a decimal digit.
func AlphaNum() Parser[rune, rune] {
	return Label(Satisfy(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }), "letter or digit")
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
