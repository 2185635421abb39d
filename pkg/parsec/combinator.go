package parsec

import (
	"parsec/pkg/pos"
)

// Many applies p zero or more times, collecting the values. The final
// zero-consuming failure of p is kept as the pending error of the success
// reply so enclosing combinators can still report what the next iteration
// expected.
//
// p must consume input whenever it succeeds. A parser that can succeed on
// empty input would iterate forever; that is a contract violation by the
// grammar author, reported as a panic rather than a parse error.
func Many[E, V any](p Parser[E, V]) Parser[E, []V] {
	return func(s State[E]) Reply[E, []V] {
		var values []V
		consumed := false
		cur := s
		for {
			r := p(cur.fork())
			if r.Ok {
				if !r.Consumed {
					panic("parsec: combinator Many applied to a parser that accepts empty input")
				}
				consumed = true
				values = append(values, r.Value)
				cur = r.State
				continue
			}
			if r.Consumed {
				return Reply[E, []V]{Consumed: true, Err: r.Err}
			}
			return Reply[E, []V]{Consumed: consumed, Ok: true, Value: values, State: cur, Err: r.Err}
		}
	}
}

// Many1 applies p one or more times.
func Many1[E, V any](p Parser[E, V]) Parser[E, []V] {
	return Bind(p, func(first V) Parser[E, []V] {
		return Map(Many(p), func(rest []V) []V {
			return append([]V{first}, rest...)
		})
	})
}

// SkipMany applies p zero or more times, discarding the values. The same
// must-consume contract as Many applies.
func SkipMany[E, V any](p Parser[E, V]) Parser[E, any] {
	return func(s State[E]) Reply[E, any] {
		consumed := false
		cur := s
		for {
			r := p(cur.fork())
			if r.Ok {
				if !r.Consumed {
					panic("parsec: combinator SkipMany applied to a parser that accepts empty input")
				}
				consumed = true
				cur = r.State
				continue
			}
			if r.Consumed {
				return Reply[E, any]{Consumed: true, Err: r.Err}
			}
			return Reply[E, any]{Consumed: consumed, Ok: true, State: cur, Err: r.Err}
		}
	}
}

// SkipMany1 applies p one or more times, discarding the values.
func SkipMany1[E, V any](p Parser[E, V]) Parser[E, any] {
	return Then(p, SkipMany(p))
}

// Count applies p exactly n times. For n <= 0 it succeeds with no values
// and consumes nothing.
func Count[E, V any](n int, p Parser[E, V]) Parser[E, []V] {
	if n <= 0 {
		return Return[E]([]V(nil))
	}
	return Bind(p, func(first V) Parser[E, []V] {
		return Map(Count(n-1, p), func(rest []V) []V {
			return append([]V{first}, rest...)
		})
	})
}

// Option tries p and falls back to def when p fails without consuming.
func Option[E, V any](def V, p Parser[E, V]) Parser[E, V] {
	return Alt(p, Return[E](def))
}

// Optional tries p, discarding its value; it succeeds whether or not p
// matched, as long as p did not fail after consuming.
func Optional[E, V any](p Parser[E, V]) Parser[E, any] {
	return Alt(Then(p, Return[E, any](nil)), Return[E, any](nil))
}

// Between runs open, then p, then end, keeping p's value.
func Between[E, O, V, C any](open Parser[E, O], end Parser[E, C], p Parser[E, V]) Parser[E, V] {
	return Then(open, SkipAfter(p, end))
}

// SepBy parses zero or more occurrences of p separated by sep.
func SepBy[E, V, S any](p Parser[E, V], sep Parser[E, S]) Parser[E, []V] {
	return Alt(SepBy1(p, sep), Return[E]([]V(nil)))
}

// SepBy1 parses one or more occurrences of p separated by sep.
func SepBy1[E, V, S any](p Parser[E, V], sep Parser[E, S]) Parser[E, []V] {
	return Bind(p, func(first V) Parser[E, []V] {
		return Map(Many(Then(sep, p)), func(rest []V) []V {
			return append([]V{first}, rest...)
		})
	})
}

// EndBy parses zero or more occurrences of p, each followed by sep.
func EndBy[E, V, S any](p Parser[E, V], sep Parser[E, S]) Parser[E, []V] {
	return Many(SkipAfter(p, sep))
}

// SepEndBy parses zero or more occurrences of p separated, and optionally
// terminated, by sep.
func SepEndBy[E, V, S any](p Parser[E, V], sep Parser[E, S]) Parser[E, []V] {
	return Alt(SepEndBy1(p, sep), Return[E]([]V(nil)))
}

// SepEndBy1 parses one or more occurrences of p separated, and optionally
// terminated, by sep.
func SepEndBy1[E, V, S any](p Parser[E, V], sep Parser[E, S]) Parser[E, []V] {
	return Bind(p, func(first V) Parser[E, []V] {
		cons := func(rest []V) []V { return append([]V{first}, rest...) }
		return Alt(
			Then(sep, Map(SepEndBy(p, sep), cons)),
			Return[E](cons(nil)),
		)
	})
}

// ManyTill applies p until end succeeds, collecting p's values. end is
// tried before each p, so "Many p, then end" grammars that share a prefix
// need no explicit Attempt.
func ManyTill[E, V, T any](p Parser[E, V], end Parser[E, T]) Parser[E, []V] {
	var scan func() Parser[E, []V]
	scan = func() Parser[E, []V] {
		return Alt(
			Then(end, Return[E]([]V(nil))),
			Bind(p, func(v V) Parser[E, []V] {
				return Map(scan(), func(rest []V) []V {
					return append([]V{v}, rest...)
				})
			}),
		)
	}
	return scan()
}

// Chainl1 parses one or more occurrences of p separated by op, folding the
// values left-associatively with the functions op produces. The canonical
// use is binary expression grammars without left recursion.
func Chainl1[E, V any](p Parser[E, V], op Parser[E, func(V, V) V]) Parser[E, V] {
	var rest func(V) Parser[E, V]
	rest = func(acc V) Parser[E, V] {
		return Alt(
			Bind(op, func(f func(V, V) V) Parser[E, V] {
				return Bind(p, func(v V) Parser[E, V] {
					return rest(f(acc, v))
				})
			}),
			Return[E](acc),
		)
	}
	return Bind(p, rest)
}

// Chainr1 is Chainl1 with right-associative folding.
func Chainr1[E, V any](p Parser[E, V], op Parser[E, func(V, V) V]) Parser[E, V] {
	var scan func() Parser[E, V]
	scan = func() Parser[E, V] {
		return Bind(p, func(v V) Parser[E, V] {
			return Alt(
				Bind(op, func(f func(V, V) V) Parser[E, V] {
					return Map(scan(), func(rhs V) V { return f(v, rhs) })
				}),
				Return[E](v),
			)
		})
	}
	return scan()
}

// AnyToken accepts whatever element comes next, failing only at end of
// input. The position is left untouched, which makes it suitable for
// lookahead-style checks such as NotFollowedBy; use TokenPrim with a real
// position rule for ordinary consumption.
func AnyToken[E any]() Parser[E, E] {
	return TokenPrim(describe[E],
		func(p pos.Position, _ E) pos.Position { return p },
		func(e E) (E, bool) { return e, true },
	)
}

// NotFollowedBy succeeds, consuming nothing, exactly when p fails. When p
// succeeds its value is reported as unexpected input.
func NotFollowedBy[E, V any](p Parser[E, V]) Parser[E, any] {
	return Attempt(Alt(
		Bind(Attempt(p), func(v V) Parser[E, any] {
			return Unexpected[E, any](describe(v))
		}),
		Return[E, any](nil),
	))
}

// EOF succeeds only at end of input.
func EOF[E any]() Parser[E, any] {
	return Label(NotFollowedBy(AnyToken[E]()), "end of input")
}
