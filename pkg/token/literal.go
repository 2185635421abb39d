package token

import (
	"strconv"

	"parsec/pkg/parsec"
)

// Decimal parses an unsigned decimal number without consuming trailing
// whitespace.
func (tp *TokenParser) Decimal() parsec.Parser[rune, int64] {
	return number(10, parsec.Digit())
}

// Hexadecimal parses "x"/"X" followed by hex digits; the leading zero is
// the caller's business, as in Natural.
func (tp *TokenParser) Hexadecimal() parsec.Parser[rune, int64] {
	return parsec.Then(parsec.OneOf("xX"), number(16, parsec.HexDigit()))
}

// Octal parses "o"/"O" followed by octal digits.
func (tp *TokenParser) Octal() parsec.Parser[rune, int64] {
	return parsec.Then(parsec.OneOf("oO"), number(8, parsec.OctDigit()))
}

// number folds one or more digits in the given base into an int64.
func number(base int, digit parsec.Parser[rune, rune]) parsec.Parser[rune, int64] {
	return parsec.Bind(parsec.Many1(digit), func(digits []rune) parsec.Parser[rune, int64] {
		n, err := strconv.ParseInt(string(digits), base, 64)
		if err != nil {
			return parsec.Fail[rune, int64]("integer literal out of range")
		}
		return parsec.Return[rune](n)
	})
}

// nat parses a natural number, recognizing 0x/0o prefixes.
func (tp *TokenParser) nat() parsec.Parser[rune, int64] {
	zeroNumber := parsec.Label(parsec.Then(parsec.Char('0'), parsec.Choice(
		tp.Hexadecimal(),
		tp.Octal(),
		tp.Decimal(),
		parsec.Return[rune](int64(0)),
	)), "")
	return parsec.Alt(zeroNumber, tp.Decimal())
}

// Natural parses a natural number lexeme.
func (tp *TokenParser) Natural() parsec.Parser[rune, int64] {
	return parsec.Label(Lexeme(tp, tp.nat()), "natural")
}

// Integer parses an optionally signed integer lexeme. Whitespace may
// separate the sign from the digits.
func (tp *TokenParser) Integer() parsec.Parser[rune, int64] {
	sign := parsec.Choice(
		parsec.Then(parsec.Char('-'), parsec.Return[rune](int64(-1))),
		parsec.Then(parsec.Char('+'), parsec.Return[rune](int64(1))),
		parsec.Return[rune](int64(1)),
	)
	p := parsec.Bind(Lexeme(tp, sign), func(sgn int64) parsec.Parser[rune, int64] {
		return parsec.Map(tp.nat(), func(n int64) int64 { return sgn * n })
	})
	return parsec.Label(Lexeme(tp, p), "integer")
}

// Float parses a floating point lexeme. At least one of a fraction or an
// exponent must be present; otherwise the literal is an integer and this
// parser fails having consumed the whole-number part, so alternation with
// Natural wants the float branch wrapped in Attempt (or NaturalOrFloat).
func (tp *TokenParser) Float() parsec.Parser[rune, float64] {
	return parsec.Label(Lexeme(tp, tp.floating()), "float")
}

// NaturalOrFloat parses a number lexeme, yielding int64 for integral
// literals and float64 when a fraction or exponent is present.
func (tp *TokenParser) NaturalOrFloat() parsec.Parser[rune, any] {
	p := parsec.Choice(
		parsec.Attempt(parsec.Map(tp.floating(), func(f float64) any { return f })),
		parsec.Map(tp.nat(), func(n int64) any { return n }),
	)
	return parsec.Label(Lexeme(tp, p), "number")
}

func (tp *TokenParser) floating() parsec.Parser[rune, float64] {
	digits := parsec.Map(parsec.Many1(parsec.Digit()), func(ds []rune) string { return string(ds) })
	fraction := parsec.Label(parsec.Then(parsec.Char('.'),
		parsec.Map(digits, func(d string) string { return "." + d })), "fraction")
	exponent := parsec.Label(parsec.Then(parsec.OneOf("eE"),
		parsec.Bind(parsec.Option("", parsec.Map(parsec.OneOf("+-"), func(r rune) string { return string(r) })),
			func(sgn string) parsec.Parser[rune, string] {
				return parsec.Map(digits, func(d string) string { return "e" + sgn + d })
			})), "exponent")
	tail := parsec.Alt(
		parsec.Bind(fraction, func(f string) parsec.Parser[rune, string] {
			return parsec.Map(parsec.Option("", exponent), func(e string) string { return f + e })
		}),
		exponent,
	)
	return parsec.Bind(digits, func(whole string) parsec.Parser[rune, float64] {
		return parsec.Bind(tail, func(t string) parsec.Parser[rune, float64] {
			v, err := strconv.ParseFloat(whole+t, 64)
			if err != nil {
				return parsec.Fail[rune, float64]("malformed floating point literal")
			}
			return parsec.Return[rune](v)
		})
	})
}

// escapes maps the single-character escape codes to their values.
var escapes = map[rune]rune{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r',
	't': '\t', 'v': '\v', '\\': '\\', '\'': '\'', '"': '"',
}

// escapeCode parses what follows a backslash in a character or string
// literal: a named escape, a decimal code, or "x" plus hex digits.
func escapeCode() parsec.Parser[rune, rune] {
	named := parsec.Bind(parsec.OneOf("abfnrtv\\'\""), func(r rune) parsec.Parser[rune, rune] {
		return parsec.Return[rune](escapes[r])
	})
	decimal := parsec.Map(number(10, parsec.Digit()), func(n int64) rune { return rune(n) })
	hex := parsec.Then(parsec.Char('x'), parsec.Map(number(16, parsec.HexDigit()), func(n int64) rune { return rune(n) }))
	return parsec.Label(parsec.Choice(named, decimal, hex), "escape code")
}

// CharLiteral parses a single-quoted character lexeme with escape support.
func (tp *TokenParser) CharLiteral() parsec.Parser[rune, rune] {
	letter := parsec.Satisfy(func(r rune) bool {
		return r != '\'' && r != '\\' && r > '\026'
	})
	char := parsec.Label(parsec.Alt(letter, parsec.Then(parsec.Char('\\'), escapeCode())), "literal character")
	quoted := parsec.Between(
		parsec.Char('\''),
		parsec.Label(parsec.Char('\''), "end of character"),
		char,
	)
	return parsec.Label(Lexeme(tp, quoted), "character")
}

// noChar marks an escape that contributes nothing to a string literal: a
// whitespace gap or the empty escape "\&".
const noChar = rune(-1)

// StringLiteral parses a double-quoted string lexeme with escape codes,
// line-spanning whitespace gaps, and the empty escape.
func (tp *TokenParser) StringLiteral() parsec.Parser[rune, string] {
	letter := parsec.Satisfy(func(r rune) bool {
		return r != '"' && r != '\\' && r > '\026'
	})
	escape := parsec.Then(parsec.Char('\\'), parsec.Choice(
		parsec.Then(
			parsec.SkipMany1(parsec.Space()),
			parsec.Then(parsec.Label(parsec.Char('\\'), "end of string gap"), parsec.Return[rune](noChar)),
		),
		parsec.Then(parsec.Char('&'), parsec.Return[rune](noChar)),
		escapeCode(),
	))
	char := parsec.Label(parsec.Alt(letter, escape), "string character")
	body := parsec.Map(parsec.Many(char), func(runes []rune) string {
		out := make([]rune, 0, len(runes))
		for _, r := range runes {
			if r != noChar {
				out = append(out, r)
			}
		}
		return string(out)
	})
	quoted := parsec.Between(
		parsec.Char('"'),
		parsec.Label(parsec.Char('"'), "end of string"),
		body,
	)
	return parsec.Label(Lexeme(tp, quoted), "literal string")
}
