package parsec

import (
	"fmt"
	"strconv"

	"parsec/pkg/parseerr"
	"parsec/pkg/pos"
	"parsec/pkg/stream"
)

// Return succeeds with value, consuming nothing.
func Return[E, V any](value V) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		return EmptyOK(value, s, nil)
	}
}

// Fail always fails with a free-form message, consuming nothing.
func Fail[E, V any](text string) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		return EmptyError[E, V](parseerr.New(s.Pos, parseerr.KindGeneric, text))
	}
}

// Unexpected always fails with an unexpected-input message, consuming
// nothing. It is the caller-facing counterpart of the automatic mismatch
// diagnostic produced by TokenPrim.
func Unexpected[E, V any](text string) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		return EmptyError[E, V](parseerr.New(s.Pos, parseerr.KindUnexpect, text))
	}
}

// TokenPrim is the primitive token consumer every leaf parser is built on.
// It inspects the next element without consuming on failure: an empty input
// or a rejected element produces an Empty-Error with a system-generated
// message at the current position. On acceptance the position is advanced
// with nextPos and the reply is Consumed-Ok with no pending error.
func TokenPrim[E, V any](show func(E) string, nextPos func(pos.Position, E) pos.Position, test func(E) (V, bool)) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		elem, rest, ok := s.Input.Uncons()
		if !ok {
			return EmptyError[E, V](parseerr.New(s.Pos, parseerr.KindSysUnexpect, ""))
		}
		value, accepted := test(elem)
		if !accepted {
			return EmptyError[E, V](parseerr.New(s.Pos, parseerr.KindSysUnexpect, show(elem)))
		}
		next := State[E]{Input: rest, Pos: nextPos(s.Pos, elem), User: s.User}
		return ConsumedOK(value, next, nil)
	}
}

// Satisfy consumes the next rune when pred accepts it, advancing the
// position under the newline and tab rules.
func Satisfy(pred func(rune) bool) Parser[rune, rune] {
	return TokenPrim(
		func(r rune) string { return strconv.QuoteRune(r) },
		func(p pos.Position, r rune) pos.Position { return p.Advance(r) },
		func(r rune) (rune, bool) { return r, pred(r) },
	)
}

// Bind sequences p with a continuation chosen from its value. The combined
// reply is Consumed when either side consumed. When p succeeded without
// consuming, its pending error is merged into an equally empty continuation
// reply so that an earlier expectation hint survives a later failure.
func Bind[E, A, B any](p Parser[E, A], f func(A) Parser[E, B]) Parser[E, B] {
	return func(s State[E]) Reply[E, B] {
		r := p(s)
		if !r.Ok {
			return Reply[E, B]{Consumed: r.Consumed, Err: r.Err}
		}
		next := f(r.Value)(r.State)
		if !next.Consumed {
			next.Err = parseerr.Merge(r.Err, next.Err)
		}
		next.Consumed = next.Consumed || r.Consumed
		return next
	}
}

// Then sequences p and q, keeping q's value.
func Then[E, A, B any](p Parser[E, A], q Parser[E, B]) Parser[E, B] {
	return Bind(p, func(A) Parser[E, B] { return q })
}

// SkipAfter sequences p and q, keeping p's value.
func SkipAfter[E, A, B any](p Parser[E, A], q Parser[E, B]) Parser[E, A] {
	return Bind(p, func(a A) Parser[E, A] {
		return Then(q, Return[E](a))
	})
}

// Map applies f to p's value on success.
func Map[E, A, B any](p Parser[E, A], f func(A) B) Parser[E, B] {
	return Bind(p, func(a A) Parser[E, B] { return Return[E](f(a)) })
}

// Alt tries p and, only if p failed without consuming any input, tries q on
// the original state. A Consumed reply from p, success or failure, is final:
// alternation never backtracks past consumed input. Errors from both sides
// are merged under the furthest-progress rule, including into q's pending
// error when q succeeds without consuming.
func Alt[E, V any](p, q Parser[E, V]) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		r := p(s.fork())
		if r.Consumed || r.Ok {
			return r
		}
		rq := q(s)
		if rq.Consumed {
			return rq
		}
		rq.Err = parseerr.Merge(r.Err, rq.Err)
		return rq
	}
}

// Choice folds Alt over the given parsers in order. An empty choice fails
// with the unknown diagnostic.
func Choice[E, V any](parsers ...Parser[E, V]) Parser[E, V] {
	if len(parsers) == 0 {
		return func(s State[E]) Reply[E, V] {
			return EmptyError[E, V](parseerr.Unknown(s.Pos))
		}
	}
	p := parsers[0]
	for _, q := range parsers[1:] {
		p = Alt(p, q)
	}
	return p
}

// Attempt is the explicit backtracking escape: a Consumed-Error reply from p
// is rewritten to an Empty-Error carrying the same diagnostic, so an
// enclosing Alt may still try a sibling branch. Every other reply passes
// through unchanged.
func Attempt[E, V any](p Parser[E, V]) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		r := p(s)
		if r.Consumed && !r.Ok {
			r.Consumed = false
		}
		return r
	}
}

// LookAhead runs p and, on success, rewinds to the original state. A
// failure of p propagates as-is, including its Consumed flag; wrap p in
// Attempt when lookahead must never consume.
func LookAhead[E, V any](p Parser[E, V]) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		r := p(s.fork())
		if r.Ok {
			return EmptyOK(r.Value, s, nil)
		}
		return r
	}
}

// Label names what p expected, replacing the expectation context of an
// Empty-Error or of the pending error on an Empty-Ok. Consumed replies are
// returned unchanged: a label must never mask a diagnostic produced after
// real input was consumed. Multiple names are all preserved, supporting
// contexts such as "expecting digit or letter".
func Label[E, V any](p Parser[E, V], names ...string) Parser[E, V] {
	return func(s State[E]) Reply[E, V] {
		r := p(s)
		if r.Consumed {
			return r
		}
		if !r.Ok {
			if r.Err == nil {
				r.Err = parseerr.Unknown(s.Pos)
			}
			r.Err = r.Err.WithExpected(names)
		} else if !r.Err.IsUnknown() {
			r.Err = r.Err.WithExpected(names)
		}
		return r
	}
}

// GetState succeeds with the current user state, consuming nothing.
func GetState[E any]() Parser[E, any] {
	return func(s State[E]) Reply[E, any] {
		return EmptyOK(s.User, s, nil)
	}
}

// SetState replaces the user state, succeeding with the new value.
func SetState[E any](user any) Parser[E, any] {
	return func(s State[E]) Reply[E, any] {
		s.User = user
		return EmptyOK(user, s, nil)
	}
}

// UpdateState derives a new user state from the current one, succeeding
// with the result.
func UpdateState[E any](f func(any) any) Parser[E, any] {
	return func(s State[E]) Reply[E, any] {
		s.User = f(s.User)
		return EmptyOK(s.User, s, nil)
	}
}

// GetPosition succeeds with the current source position.
func GetPosition[E any]() Parser[E, pos.Position] {
	return func(s State[E]) Reply[E, pos.Position] {
		return EmptyOK(s.Pos, s, nil)
	}
}

// GetInput succeeds with the unconsumed input.
func GetInput[E any]() Parser[E, stream.Stream[E]] {
	return func(s State[E]) Reply[E, stream.Stream[E]] {
		return EmptyOK(s.Input, s, nil)
	}
}

// SetInput replaces the unconsumed input without touching the position.
func SetInput[E any](input stream.Stream[E]) Parser[E, any] {
	return func(s State[E]) Reply[E, any] {
		s.Input = input
		return EmptyOK[E, any](nil, s, nil)
	}
}

// describe renders an element for a diagnostic, quoting text-like elements.
func describe[E any](elem E) string {
	switch e := any(elem).(type) {
	case rune:
		return strconv.QuoteRune(e)
	case byte:
		return strconv.QuoteRune(rune(e))
	case string:
		return strconv.Quote(e)
	case fmt.Stringer:
		return strconv.Quote(e.String())
	default:
		return fmt.Sprintf("%v", e)
	}
}
