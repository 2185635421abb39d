// Package token builds lexeme-level parsers from a language definition:
// identifiers, reserved words, operators, numeric and string literals, and
// the bracket and separator helpers, all sharing one whitespace-and-comment
// convention.
package token

import (
	"parsec/pkg/parsec"
)

// opChars is the operator alphabet of the default definition.
const opChars = ":!#$%&*+./<=>?@\\^|-~"

// LanguageDef describes the lexical conventions of a language. A zero
// value is not usable; start from DefaultLanguageDef and override.
type LanguageDef struct {
	// CommentStart and CommentEnd delimit block comments; empty means
	// the language has none.
	CommentStart string
	CommentEnd   string

	// CommentLine opens a comment that runs to end of line; empty means
	// the language has none.
	CommentLine string

	// NestedComments allows block comments to nest.
	NestedComments bool

	// IdentStart and IdentLetter accept the first and the following
	// characters of an identifier.
	IdentStart  parsec.Parser[rune, rune]
	IdentLetter parsec.Parser[rune, rune]

	// OpStart and OpLetter accept the first and the following characters
	// of an operator.
	OpStart  parsec.Parser[rune, rune]
	OpLetter parsec.Parser[rune, rune]

	// ReservedNames and ReservedOpNames are rejected by Identifier and
	// Operator respectively.
	ReservedNames   []string
	ReservedOpNames []string

	// CaseSensitive controls how identifiers and reserved words compare.
	CaseSensitive bool
}

// DefaultLanguageDef returns a minimal definition: no comments,
// letter/underscore identifiers, a conventional operator alphabet, no
// reserved words, case sensitive.
func DefaultLanguageDef() LanguageDef {
	return LanguageDef{
		NestedComments: true,
		IdentStart:     parsec.Alt(parsec.Letter(), parsec.Char('_')),
		IdentLetter:    parsec.Choice(parsec.AlphaNum(), parsec.Char('_'), parsec.Char('\'')),
		OpStart:        parsec.OneOf(opChars),
		OpLetter:       parsec.OneOf(opChars),
		CaseSensitive:  true,
	}
}
