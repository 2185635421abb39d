// Package parsec implements a parser combinator engine: small primitive
// parsers composed with sequencing, alternation, labeling, and an explicit
// backtracking escape, over any ordered input of tokens. Alternation never
// backtracks past consumed input; competing diagnostics are resolved by the
// furthest-progress rule in package parseerr.
package parsec

import (
	"parsec/pkg/parseerr"
	"parsec/pkg/pos"
	"parsec/pkg/stream"
)

// Cloner is implemented by user-state values that need deep copies when the
// engine forks for a backtracking attempt. State values that do not
// implement it are copied by plain assignment, which is enough for anything
// without pointer-backed mutation.
type Cloner interface {
	Clone() any
}

// State is the triple threaded through a parse: the unconsumed input, the
// current position, and the caller-supplied user state. A State is
// exclusively owned by one in-flight parse; combinators derive new values
// and never mutate a shared instance.
type State[E any] struct {
	Input stream.Stream[E]
	Pos   pos.Position
	User  any
}

// NewState creates the initial state for a parse over input.
func NewState[E any](input stream.Stream[E], user any) State[E] {
	return State[E]{Input: input, Pos: pos.Initial(), User: user}
}

// fork returns a copy of s that is safe to hand to a branch which may be
// discarded. User states implementing Cloner are deep-copied so a failed
// branch's writes cannot leak into the branch that is kept.
func (s State[E]) fork() State[E] {
	if c, ok := s.User.(Cloner); ok {
		s.User = c.Clone()
	}
	return s
}

// Reply is the outcome of applying a parser to a state. The Consumed flag
// records whether any input was consumed, independently of success; it is
// what bounds backtracking in Alt. An Ok reply may still carry a pending
// error holding diagnostics from zero-consuming alternatives that failed
// along the way, so a later failure can surface the full expectation
// context. A nil Err is the unknown (empty) diagnostic.
type Reply[E, V any] struct {
	Consumed bool
	Ok       bool
	Value    V
	State    State[E]
	Err      *parseerr.Error
}

// ConsumedOK builds a reply for a success that consumed input.
func ConsumedOK[E, V any](value V, state State[E], err *parseerr.Error) Reply[E, V] {
	return Reply[E, V]{Consumed: true, Ok: true, Value: value, State: state, Err: err}
}

// EmptyOK builds a reply for a success that consumed nothing.
func EmptyOK[E, V any](value V, state State[E], err *parseerr.Error) Reply[E, V] {
	return Reply[E, V]{Ok: true, Value: value, State: state, Err: err}
}

// ConsumedError builds a reply for a failure after consuming input.
func ConsumedError[E, V any](err *parseerr.Error) Reply[E, V] {
	return Reply[E, V]{Consumed: true, Err: err}
}

// EmptyError builds a reply for a failure that consumed nothing.
func EmptyError[E, V any](err *parseerr.Error) Reply[E, V] {
	return Reply[E, V]{Err: err}
}

// Parser is a combinator: a pure function from a parse state to a reply.
// Parsers are immutable once composed and may be shared across goroutines;
// each call owns its State exclusively.
type Parser[E, V any] func(State[E]) Reply[E, V]

// Run applies p to input with the given user state and returns either the
// parsed value or a parse error, never both.
func Run[E, V any](p Parser[E, V], input stream.Stream[E], user any) (V, *parseerr.Error) {
	r := p(NewState(input, user))
	if r.Ok {
		return r.Value, nil
	}
	var zero V
	if r.Err == nil {
		r.Err = parseerr.Unknown(pos.Initial())
	}
	return zero, r.Err
}

// ParseString runs a rune parser over a string with no user state.
func ParseString[V any](p Parser[rune, V], input string) (V, *parseerr.Error) {
	return Run(p, stream.NewRunes(input), nil)
}
