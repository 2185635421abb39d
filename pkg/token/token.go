package token

import (
	"strconv"
	"strings"
	"unicode"

	"parsec/pkg/parsec"
)

// TokenParser derives lexeme parsers from a LanguageDef. Construction
// precomputes the whitespace skipper and the reserved-word sets; the
// resulting parsers are immutable and shareable.
type TokenParser struct {
	def         LanguageDef
	whiteSpace  parsec.Parser[rune, any]
	reserved    map[string]bool
	reservedOps map[string]bool
}

// NewTokenParser builds a TokenParser for def.
func NewTokenParser(def LanguageDef) *TokenParser {
	tp := &TokenParser{
		def:         def,
		reserved:    make(map[string]bool, len(def.ReservedNames)),
		reservedOps: make(map[string]bool, len(def.ReservedOpNames)),
	}
	for _, name := range def.ReservedNames {
		tp.reserved[tp.fold(name)] = true
	}
	for _, name := range def.ReservedOpNames {
		tp.reservedOps[name] = true
	}
	tp.whiteSpace = buildWhiteSpace(def)
	return tp
}

// fold normalizes a word for reserved-name comparison.
func (tp *TokenParser) fold(name string) string {
	if tp.def.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// WhiteSpace skips spaces and comments as configured by the definition.
func (tp *TokenParser) WhiteSpace() parsec.Parser[rune, any] {
	return tp.whiteSpace
}

// Lexeme runs p and skips trailing whitespace, the convention every token
// parser in this package follows: whitespace is consumed after a token,
// never before.
func Lexeme[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.SkipAfter(p, tp.WhiteSpace())
}

// Symbol parses the literal name as a lexeme.
func (tp *TokenParser) Symbol(name string) parsec.Parser[rune, string] {
	return Lexeme(tp, parsec.Str(name))
}

// Identifier parses a legal identifier, rejecting reserved words. The whole
// token backtracks when a reserved word is found, so alternation with
// Reserved works without surprises.
func (tp *TokenParser) Identifier() parsec.Parser[rune, string] {
	ident := parsec.Label(parsec.Bind(tp.def.IdentStart, func(first rune) parsec.Parser[rune, string] {
		return parsec.Map(parsec.Many(tp.def.IdentLetter), func(rest []rune) string {
			return string(append([]rune{first}, rest...))
		})
	}), "identifier")
	checked := parsec.Bind(ident, func(name string) parsec.Parser[rune, string] {
		if tp.reserved[tp.fold(name)] {
			return parsec.Unexpected[rune, string]("reserved word " + strconv.Quote(name))
		}
		return parsec.Return[rune](name)
	})
	return Lexeme(tp, parsec.Attempt(checked))
}

// Reserved parses exactly the reserved word name, not followed by an
// identifier character.
func (tp *TokenParser) Reserved(name string) parsec.Parser[rune, any] {
	word := parsec.Then(tp.caseString(name),
		parsec.Label(parsec.NotFollowedBy(tp.def.IdentLetter), "end of "+strconv.Quote(name)))
	return Lexeme(tp, parsec.Label(parsec.Attempt(word), name))
}

// caseString matches name rune by rune, ignoring case for case-insensitive
// languages.
func (tp *TokenParser) caseString(name string) parsec.Parser[rune, string] {
	if tp.def.CaseSensitive {
		return parsec.Str(name)
	}
	walk := parsec.Return[rune, any](nil)
	for _, want := range name {
		want := want
		step := parsec.Label(parsec.Satisfy(func(r rune) bool {
			return unicode.ToLower(r) == unicode.ToLower(want)
		}), strconv.QuoteRune(want))
		walk = parsec.Then(walk, parsec.Then(step, parsec.Return[rune, any](nil)))
	}
	return parsec.Then(walk, parsec.Return[rune](name))
}

// Operator parses a legal operator, rejecting reserved ones.
func (tp *TokenParser) Operator() parsec.Parser[rune, string] {
	oper := parsec.Label(parsec.Bind(tp.def.OpStart, func(first rune) parsec.Parser[rune, string] {
		return parsec.Map(parsec.Many(tp.def.OpLetter), func(rest []rune) string {
			return string(append([]rune{first}, rest...))
		})
	}), "operator")
	checked := parsec.Bind(oper, func(name string) parsec.Parser[rune, string] {
		if tp.reservedOps[name] {
			return parsec.Unexpected[rune, string]("reserved operator " + strconv.Quote(name))
		}
		return parsec.Return[rune](name)
	})
	return Lexeme(tp, parsec.Attempt(checked))
}

// ReservedOp parses exactly the reserved operator name, not followed by an
// operator character.
func (tp *TokenParser) ReservedOp(name string) parsec.Parser[rune, any] {
	op := parsec.Then(parsec.Str(name),
		parsec.Label(parsec.NotFollowedBy(tp.def.OpLetter), "end of "+strconv.Quote(name)))
	return Lexeme(tp, parsec.Label(parsec.Attempt(op), name))
}

// Semi parses a ";" lexeme.
func (tp *TokenParser) Semi() parsec.Parser[rune, string] {
	return tp.Symbol(";")
}

// Comma parses a "," lexeme.
func (tp *TokenParser) Comma() parsec.Parser[rune, string] {
	return tp.Symbol(",")
}

// Colon parses a ":" lexeme.
func (tp *TokenParser) Colon() parsec.Parser[rune, string] {
	return tp.Symbol(":")
}

// Dot parses a "." lexeme.
func (tp *TokenParser) Dot() parsec.Parser[rune, string] {
	return tp.Symbol(".")
}

// Parens wraps p in "(" and ")" lexemes.
func Parens[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Between(tp.Symbol("("), tp.Symbol(")"), p)
}

// Braces wraps p in "{" and "}" lexemes.
func Braces[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Between(tp.Symbol("{"), tp.Symbol("}"), p)
}

// Brackets wraps p in "[" and "]" lexemes.
func Brackets[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Between(tp.Symbol("["), tp.Symbol("]"), p)
}

// Angles wraps p in "<" and ">" lexemes.
func Angles[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Between(tp.Symbol("<"), tp.Symbol(">"), p)
}

// CommaSep parses zero or more p separated by commas.
func CommaSep[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, []V] {
	return parsec.SepBy(p, tp.Comma())
}

// CommaSep1 parses one or more p separated by commas.
func CommaSep1[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, []V] {
	return parsec.SepBy1(p, tp.Comma())
}

// SemiSep parses zero or more p separated by semicolons.
func SemiSep[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, []V] {
	return parsec.SepBy(p, tp.Semi())
}

// SemiSep1 parses one or more p separated by semicolons.
func SemiSep1[V any](tp *TokenParser, p parsec.Parser[rune, V]) parsec.Parser[rune, []V] {
	return parsec.SepBy1(p, tp.Semi())
}

// buildWhiteSpace assembles the space-and-comment skipper for def.
func buildWhiteSpace(def LanguageDef) parsec.Parser[rune, any] {
	units := []parsec.Parser[rune, any]{
		parsec.SkipMany1(parsec.Satisfy(unicode.IsSpace)),
	}
	if def.CommentLine != "" {
		units = append(units, lineComment(def))
	}
	if def.CommentStart != "" {
		units = append(units, blockComment(def))
	}
	return parsec.Label(parsec.SkipMany(parsec.Choice(units...)), "")
}

func lineComment(def LanguageDef) parsec.Parser[rune, any] {
	return parsec.Then(
		parsec.Attempt(parsec.Str(def.CommentLine)),
		parsec.SkipMany(parsec.Satisfy(func(r rune) bool { return r != '\n' })),
	)
}

func blockComment(def LanguageDef) parsec.Parser[rune, any] {
	startEnd := def.CommentStart + def.CommentEnd
	var inComment func() parsec.Parser[rune, any]
	inComment = func() parsec.Parser[rune, any] {
		alts := []parsec.Parser[rune, any]{
			parsec.Then(parsec.Attempt(parsec.Str(def.CommentEnd)), parsec.Return[rune, any](nil)),
		}
		if def.NestedComments {
			alts = append(alts, parsec.Then(
				parsec.Then(parsec.Attempt(parsec.Str(def.CommentStart)), lazy(inComment)),
				lazy(inComment),
			))
		}
		alts = append(alts,
			parsec.Then(parsec.SkipMany1(parsec.NoneOf(startEnd)), lazy(inComment)),
			parsec.Then(parsec.OneOf(startEnd), lazy(inComment)),
		)
		return parsec.Label(parsec.Choice(alts...), "end of comment")
	}
	return parsec.Then(parsec.Attempt(parsec.Str(def.CommentStart)), inComment())
}

// lazy defers construction of a parser, breaking the recursion in grammars
// that refer to themselves.
func lazy[V any](f func() parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return func(s parsec.State[rune]) parsec.Reply[rune, V] {
		return f()(s)
	}
}
