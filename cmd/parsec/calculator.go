package main

import (
	"fmt"

	"parsec/pkg/parsec"
	"parsec/pkg/stream"
	"parsec/pkg/token"
)

// evalError aborts evaluation from inside a fold, where no parser-level
// failure is possible anymore. The calculator recovers it at the top.
type evalError struct {
	msg string
}

// environment is the calculator's user state: the variables bound so far.
// Updates copy the map so a backtracked branch cannot leak bindings.
type environment map[string]int64

func (e environment) with(name string, value int64) environment {
	next := make(environment, len(e)+1)
	for k, v := range e {
		next[k] = v
	}
	next[name] = value
	return next
}

// result is what one calculator statement produces: the computed value and
// the environment after any "let" binding took effect.
type result struct {
	value int64
	env   environment
}

// calculator parses and evaluates integer expression statements:
//
//	let <name> = <expr>
//	<expr>
//
// with +, -, *, /, % left-associative in the usual precedence, parentheses,
// naturals (including 0x/0o), variables, and "#" line comments.
type calculator struct {
	tok  *token.TokenParser
	expr parsec.Parser[rune, int64]
	stmt parsec.Parser[rune, result]
}

func newCalculator() *calculator {
	def := token.DefaultLanguageDef()
	def.CommentLine = "#"
	def.ReservedNames = []string{"let"}

	c := &calculator{tok: token.NewTokenParser(def)}

	factor := parsec.Choice(
		token.Parens(c.tok, c.lazyExpr()),
		c.tok.Natural(),
		c.variable(),
	)
	term := parsec.Chainl1(factor, c.mulOp())
	c.expr = parsec.Label(parsec.Chainl1(term, c.addOp()), "expression")

	c.stmt = parsec.Then(c.tok.WhiteSpace(),
		parsec.SkipAfter(c.statement(), parsec.EOF[rune]()))

	return c
}

// lazyExpr defers the self-reference inside parenthesized factors.
func (c *calculator) lazyExpr() parsec.Parser[rune, int64] {
	return func(s parsec.State[rune]) parsec.Reply[rune, int64] {
		return c.expr(s)
	}
}

func (c *calculator) variable() parsec.Parser[rune, int64] {
	return parsec.Bind(c.tok.Identifier(), func(name string) parsec.Parser[rune, int64] {
		return parsec.Bind(parsec.GetState[rune](), func(user any) parsec.Parser[rune, int64] {
			env, _ := user.(environment)
			value, ok := env[name]
			if !ok {
				return parsec.Fail[rune, int64]("undefined variable " + name)
			}
			return parsec.Return[rune](value)
		})
	})
}

func (c *calculator) mulOp() parsec.Parser[rune, func(int64, int64) int64] {
	return parsec.Choice(
		c.op("*", func(a, b int64) int64 { return a * b }),
		c.op("/", func(a, b int64) int64 {
			if b == 0 {
				panic(evalError{msg: "division by zero"})
			}
			return a / b
		}),
		c.op("%", func(a, b int64) int64 {
			if b == 0 {
				panic(evalError{msg: "division by zero"})
			}
			return a % b
		}),
	)
}

func (c *calculator) addOp() parsec.Parser[rune, func(int64, int64) int64] {
	return parsec.Choice(
		c.op("+", func(a, b int64) int64 { return a + b }),
		c.op("-", func(a, b int64) int64 { return a - b }),
	)
}

func (c *calculator) op(symbol string, f func(int64, int64) int64) parsec.Parser[rune, func(int64, int64) int64] {
	return parsec.Then(c.tok.Symbol(symbol), parsec.Return[rune](f))
}

// statement parses either a let binding or a bare expression, and pairs the
// value with the environment in force afterwards.
func (c *calculator) statement() parsec.Parser[rune, result] {
	binding := parsec.Then(c.tok.Reserved("let"),
		parsec.Bind(c.tok.Identifier(), func(name string) parsec.Parser[rune, int64] {
			return parsec.Then(c.tok.Symbol("="),
				parsec.Bind(c.expr, func(value int64) parsec.Parser[rune, int64] {
					return parsec.Then(
						parsec.UpdateState[rune](func(user any) any {
							env, _ := user.(environment)
							return env.with(name, value)
						}),
						parsec.Return[rune](value),
					)
				}))
		}))
	return parsec.Bind(parsec.Alt(binding, c.expr), func(value int64) parsec.Parser[rune, result] {
		return parsec.Map(parsec.GetState[rune](), func(user any) result {
			env, _ := user.(environment)
			return result{value: value, env: env}
		})
	})
}

// Eval runs one statement against env, returning the value and the
// (possibly extended) environment.
func (c *calculator) Eval(input string, env environment) (res result, err error) {
	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(evalError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("evaluation error: %s", ee.msg)
		}
	}()
	if env == nil {
		env = environment{}
	}
	value, perr := parsec.Run(c.stmt, stream.NewRunes(input), env)
	if perr != nil {
		return result{}, perr
	}
	return value, nil
}
