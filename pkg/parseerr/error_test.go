package parseerr

import (
	"testing"

	"parsec/pkg/pos"
)

func at(offset int) pos.Position {
	return pos.Position{Line: 1, Column: offset + 1, Offset: offset}
}

func texts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestMergeEmptyIdentity(t *testing.T) {
	e := New(at(0), KindExpect, "digit")
	if got := Merge(Unknown(at(5)), e); got != e {
		t.Errorf("merge(empty, e) should yield e, got %v", got)
	}
	if got := Merge(e, Unknown(at(5))); got != e {
		t.Errorf("merge(e, empty) should yield e, got %v", got)
	}
	if got := Merge(nil, e); got != e {
		t.Error("merge(nil, e) should yield e")
	}
	if got := Merge(e, nil); got != e {
		t.Error("merge(e, nil) should yield e")
	}
}

func TestMergeFurthestWins(t *testing.T) {
	behind := New(at(1), KindExpect, "digit")
	ahead := New(at(3), KindExpect, "letter")

	if got := Merge(behind, ahead); got != ahead {
		t.Errorf("expected the further error to win, got %v", got)
	}
	if got := Merge(ahead, behind); got != ahead {
		t.Errorf("expected the further error to be kept unchanged, got %v", got)
	}
}

func TestMergeEqualPositionsUnion(t *testing.T) {
	a := New(at(2), KindExpect, "digit")
	b := New(at(2), KindExpect, "letter")

	merged := Merge(a, b)
	if !merged.Pos.Equal(at(2)) {
		t.Errorf("unexpected merged position: %v", merged.Pos)
	}
	got := texts(merged.Messages())
	if len(got) != 2 || got[0] != "digit" || got[1] != "letter" {
		t.Errorf("expected a's messages followed by b's, got %v", got)
	}
}

func TestAddDeduplicatesAndFronts(t *testing.T) {
	e := New(at(0), KindExpect, "digit").
		Add(Message{Kind: KindExpect, Text: "letter"}).
		Add(Message{Kind: KindExpect, Text: "digit"})

	got := texts(e.Messages())
	if len(got) != 2 {
		t.Fatalf("expected 2 messages after dedup, got %v", got)
	}
	if got[0] != "digit" || got[1] != "letter" {
		t.Errorf("expected re-added message in front, got %v", got)
	}
}

func TestMessagesSortedByKind(t *testing.T) {
	e := Unknown(at(0)).
		Add(Message{Kind: KindGeneric, Text: "boom"}).
		Add(Message{Kind: KindExpect, Text: "digit"}).
		Add(Message{Kind: KindSysUnexpect, Text: "'x'"})

	msgs := e.Messages()
	for i := 1; i < len(msgs); i++ {
		if msgs[i-1].Kind > msgs[i].Kind {
			t.Fatalf("messages not sorted by kind: %v", msgs)
		}
	}
}

func TestWithExpectedReplacesAndPreserves(t *testing.T) {
	e := New(at(0), KindSysUnexpect, "'!'").WithExpected([]string{"digit", "letter"})
	var expects []string
	for _, m := range e.Messages() {
		if m.Kind == KindExpect {
			expects = append(expects, m.Text)
		}
	}
	if len(expects) != 2 || expects[0] != "digit" || expects[1] != "letter" {
		t.Errorf("expected both labels preserved in order, got %v", expects)
	}
}

func TestWithExpectedEmptyClearsContext(t *testing.T) {
	e := New(at(0), KindExpect, "digit").WithExpected(nil)
	rendered := e.Render()
	if rendered != "unknown parse error" {
		t.Errorf("an empty expectation should render as unknown, got %q", rendered)
	}
}

func TestRenderScenario(t *testing.T) {
	e := New(at(0), KindSysUnexpect, "'!'").WithExpected([]string{"digit", "letter"})
	if got := e.Render(); got != "unexpected '!' expecting digit or letter" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestRenderSuppressesSystemMessage(t *testing.T) {
	e := New(at(0), KindSysUnexpect, "'!'").Add(Message{Kind: KindUnexpect, Text: "reserved word \"let\""})
	if got := e.Render(); got != "unexpected reserved word \"let\"" {
		t.Errorf("system message should be suppressed, got %q", got)
	}
}

func TestRenderEndOfInput(t *testing.T) {
	e := New(at(4), KindSysUnexpect, "")
	if got := e.Render(); got != "unexpected end of input" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestRenderCommaOrJoin(t *testing.T) {
	e := Unknown(at(0)).WithExpected([]string{"digit", "letter", "space"})
	if got := e.Render(); got != "expecting digit, letter or space" {
		t.Errorf("unexpected join: %q", got)
	}
}

func TestRenderUnknown(t *testing.T) {
	if got := Unknown(at(0)).Render(); got != "unknown parse error" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestErrorIncludesPosition(t *testing.T) {
	e := New(pos.Position{Line: 2, Column: 5, Offset: 9}, KindGeneric, "boom")
	if got := e.Error(); got != "line 2, column 5: boom" {
		t.Errorf("unexpected error string: %q", got)
	}
}
