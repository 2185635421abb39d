package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsec/pkg/stream"
)

func runesState(input string) State[rune] {
	return NewState[rune](stream.NewRunes(input), nil)
}

func digitOrLetter() Parser[rune, rune] {
	return Alt(Digit(), Letter())
}

func TestSatisfyConsumesOnMatch(t *testing.T) {
	r := Satisfy(func(c rune) bool { return c == 'a' })(runesState("ab"))

	require.True(t, r.Ok)
	require.True(t, r.Consumed)
	assert.Equal(t, 'a', r.Value)
	assert.Nil(t, r.Err, "a fresh success carries no pending error")
	assert.Equal(t, 2, r.State.Pos.Column)
	assert.Equal(t, 1, r.State.Pos.Offset)
}

func TestSatisfyRejectsWithoutConsuming(t *testing.T) {
	r := Satisfy(func(c rune) bool { return c == 'a' })(runesState("zb"))

	require.False(t, r.Ok)
	require.False(t, r.Consumed, "a rejected element must not be consumed")
	require.NotNil(t, r.Err)
	assert.Equal(t, 0, r.Err.Pos.Offset, "the error sits at the current position")
	assert.Equal(t, "unexpected 'z'", r.Err.Render())
}

func TestSatisfyAtEndOfInput(t *testing.T) {
	r := Satisfy(func(rune) bool { return true })(runesState(""))

	require.False(t, r.Ok)
	require.False(t, r.Consumed)
	assert.Equal(t, "unexpected end of input", r.Err.Render())
}

func TestDigitOrLetterSucceeds(t *testing.T) {
	value, err := ParseString(digitOrLetter(), "5")

	require.Nil(t, err)
	assert.Equal(t, '5', value)
}

func TestDigitOrLetterScenarioRendering(t *testing.T) {
	_, err := ParseString(digitOrLetter(), "!")

	require.NotNil(t, err)
	assert.Equal(t, 1, err.Pos.Line)
	assert.Equal(t, 1, err.Pos.Column)
	assert.Equal(t, "unexpected '!' expecting digit or letter", err.Render())
}

func TestBindSequencesAndCombinesConsumed(t *testing.T) {
	p := Bind(Satisfy(func(c rune) bool { return c == 'a' }), func(a rune) Parser[rune, string] {
		return Map(Satisfy(func(c rune) bool { return c == 'b' }), func(b rune) string {
			return string([]rune{a, b})
		})
	})

	r := p(runesState("ab"))
	require.True(t, r.Ok)
	assert.True(t, r.Consumed)
	assert.Equal(t, "ab", r.Value)

	r = p(runesState("ax"))
	require.False(t, r.Ok)
	assert.True(t, r.Consumed, "failure after the first element is a consumed failure")
	assert.Equal(t, 1, r.Err.Pos.Offset)
}

func TestBindErrorShortCircuits(t *testing.T) {
	called := false
	p := Bind(Fail[rune, rune]("nope"), func(rune) Parser[rune, rune] {
		called = true
		return AnyChar()
	})

	r := p(runesState("ab"))
	require.False(t, r.Ok)
	assert.False(t, r.Consumed)
	assert.False(t, called, "the continuation must not run after a failure")
}

func TestBindMergesPendingErrorIntoLaterFailure(t *testing.T) {
	// Option fails its alternative without consuming, leaving a pending
	// "expecting digit" on the Empty-Ok; the subsequent failure at the
	// same position must still surface it.
	p := Then(Option('0', Digit()), Label(Satisfy(func(c rune) bool { return c == ';' }), "semicolon"))

	_, err := ParseString(p, "x")
	require.NotNil(t, err)
	assert.Equal(t, "unexpected 'x' expecting digit or semicolon", err.Render())
}

func TestAltEmptyErrorTriesSecond(t *testing.T) {
	value, err := ParseString(digitOrLetter(), "q")

	require.Nil(t, err)
	assert.Equal(t, 'q', value)
}

func TestAltConsumedReplyIsFinal(t *testing.T) {
	qCalled := false
	q := func(s State[rune]) Reply[rune, string] {
		qCalled = true
		return EmptyOK("q", s, nil)
	}
	ab := Then(Char('a'), Then(Char('b'), Return[rune]("ab")))

	r := Alt(ab, q)(runesState("ax"))
	require.False(t, r.Ok)
	assert.True(t, r.Consumed, "the consumed failure is returned verbatim")
	assert.False(t, qCalled, "alternation must not backtrack past consumed input")
}

func TestAltMergesIntoSecondSuccess(t *testing.T) {
	// q succeeds without consuming; p's diagnostic must survive as the
	// pending error of the overall success.
	p := Label(Satisfy(func(c rune) bool { return c == 'a' }), "letter a")
	q := Return[rune]('?')

	r := Alt(p, q)(runesState("z"))
	require.True(t, r.Ok)
	require.False(t, r.Consumed)
	require.NotNil(t, r.Err)
	assert.Contains(t, r.Err.Render(), "letter a")
}

func TestAttemptRewritesConsumedError(t *testing.T) {
	ab := Then(Char('a'), Then(Char('b'), Return[rune]("ab")))

	plain := ab(runesState("ax"))
	require.False(t, plain.Ok)
	require.True(t, plain.Consumed)

	escaped := Attempt(ab)(runesState("ax"))
	require.False(t, escaped.Ok)
	assert.False(t, escaped.Consumed, "attempt pretends no input was consumed")
	assert.Equal(t, plain.Err, escaped.Err, "the diagnostic itself is preserved")
}

func TestAttemptEnablesAlternation(t *testing.T) {
	// Str("abc") consumes two elements of "abd" before failing.
	value, err := ParseString(Alt(Attempt(Str("abc")), Str("abd")), "abd")
	require.Nil(t, err)
	assert.Equal(t, "abd", value)

	_, err = ParseString(Alt(Str("abc"), Str("abd")), "abd")
	require.NotNil(t, err, "without attempt the consumed failure is final")
}

func TestAttemptPassesThroughSuccess(t *testing.T) {
	r := Attempt(Char('a'))(runesState("a"))
	require.True(t, r.Ok)
	assert.True(t, r.Consumed, "attempt must not hide real consumption on success")
}

func TestLabelReplacesEmptyFailureExpectation(t *testing.T) {
	_, err := ParseString(Label(Satisfy(func(c rune) bool { return c == '0' }), "zero"), "x")

	require.NotNil(t, err)
	assert.Equal(t, "unexpected 'x' expecting zero", err.Render())
}

func TestLabelDoesNotMaskConsumedFailure(t *testing.T) {
	ab := Then(Char('a'), Then(Char('b'), Return[rune]("ab")))

	bare := ab(runesState("ax"))
	labeled := Label(ab, "the word ab")(runesState("ax"))

	require.False(t, labeled.Ok)
	assert.True(t, labeled.Consumed)
	assert.Equal(t, bare.Err.Render(), labeled.Err.Render(),
		"labels must not rewrite diagnostics produced after consumption")
}

func TestLabelMultipleNames(t *testing.T) {
	_, err := ParseString(Label(Fail[rune, rune]("no"), "digit", "letter"), "!")

	require.NotNil(t, err)
	assert.Contains(t, err.Render(), "expecting digit or letter")
}

func TestFailAndUnexpected(t *testing.T) {
	r := Fail[rune, rune]("custom failure")(runesState("abc"))
	require.False(t, r.Ok)
	assert.False(t, r.Consumed)
	assert.Equal(t, "custom failure", r.Err.Render())

	r = Unexpected[rune, rune]("keyword")(runesState("abc"))
	require.False(t, r.Ok)
	assert.Equal(t, "unexpected keyword", r.Err.Render())
}

func TestUserStateThreading(t *testing.T) {
	p := Then(SetState[rune](1), Then(
		UpdateState[rune](func(u any) any { return u.(int) + 41 }),
		GetState[rune](),
	))

	value, err := ParseString(p, "")
	require.Nil(t, err)
	assert.Equal(t, 42, value)
}

func TestStateAccessorsNeverConsume(t *testing.T) {
	r := GetState[rune]()(runesState("abc"))
	require.True(t, r.Ok)
	assert.False(t, r.Consumed)

	r = SetState[rune]("u")(runesState("abc"))
	require.True(t, r.Ok)
	assert.False(t, r.Consumed)
}

func TestGetPositionAndInput(t *testing.T) {
	p := Then(Char('a'), GetPosition[rune]())
	position, err := ParseString(p, "ab")
	require.Nil(t, err)
	assert.Equal(t, 1, position.Offset)

	rest, err := ParseString(Then(Char('a'), GetInput[rune]()), "ab")
	require.Nil(t, err)
	next, _, ok := rest.Uncons()
	require.True(t, ok)
	assert.Equal(t, 'b', next)
}

// trackedState counts how many times it was cloned and proves that a
// discarded branch's writes stay in the discarded branch.
type trackedState struct {
	writes []string
}

func (ts *trackedState) Clone() any {
	clone := &trackedState{writes: make([]string, len(ts.writes))}
	copy(clone.writes, ts.writes)
	return clone
}

func TestBacktrackingForksUserState(t *testing.T) {
	record := func(note string) Parser[rune, any] {
		return UpdateState[rune](func(u any) any {
			ts := u.(*trackedState)
			ts.writes = append(ts.writes, note)
			return ts
		})
	}
	failing := Then(record("discarded"), Then(Char('a'), Fail[rune, rune]("boom")))
	winning := Then(record("kept"), Char('z'))

	root := &trackedState{}
	value, err := Run(Alt(Attempt(failing), winning), stream.NewRunes("z"), root)

	require.Nil(t, err)
	assert.Equal(t, 'z', value)
	assert.Equal(t, []string{"kept"}, root.writes,
		"the discarded branch wrote to a clone, not to the kept state")
}

func TestRunReturnsValueXorError(t *testing.T) {
	value, err := ParseString(Char('a'), "a")
	require.Nil(t, err)
	assert.Equal(t, 'a', value)

	value, err = ParseString(Char('a'), "b")
	require.NotNil(t, err)
	assert.Equal(t, rune(0), value, "a failed parse yields the zero value")
}

func TestChoiceEmptyFailsUnknown(t *testing.T) {
	r := Choice[rune, rune]()(runesState("a"))
	require.False(t, r.Ok)
	assert.True(t, r.Err.IsUnknown())
}

func TestLookAheadRewindsOnSuccess(t *testing.T) {
	p := Then(LookAhead(Char('a')), Char('a'))
	value, err := ParseString(p, "a")
	require.Nil(t, err)
	assert.Equal(t, 'a', value)
}

func TestMergeDrivesAltDiagnostics(t *testing.T) {
	// The branch that fails further into the input wins the diagnostic.
	deep := Attempt(Then(Char('a'), Label(Char('b'), "b after a")))
	shallow := Label(Char('z'), "z")

	_, err := ParseString(Alt(deep, shallow), "ac")
	require.NotNil(t, err)
	assert.Equal(t, 1, err.Pos.Offset, "the further diagnostic is kept")
	assert.Contains(t, err.Render(), "b after a")
}
