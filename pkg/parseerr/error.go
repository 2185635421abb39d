package parseerr

import (
	"fmt"
	"sort"
	"strings"

	"parsec/pkg/pos"
)

// Error is a parse failure: a position plus a set of diagnostic messages.
// Values are treated as immutable; every operation derives a new Error so
// that merged and pending errors can share state safely.
type Error struct {
	Pos  pos.Position
	msgs []Message
}

// New creates an error carrying a single message.
func New(p pos.Position, kind Kind, text string) *Error {
	return &Error{Pos: p, msgs: []Message{{Kind: kind, Text: text}}}
}

// Unknown creates the weakest possible diagnostic: an error with no
// messages at all.
func Unknown(p pos.Position) *Error {
	return &Error{Pos: p}
}

// IsUnknown reports whether the error carries no messages.
func (e *Error) IsUnknown() bool {
	return e == nil || len(e.msgs) == 0
}

// Messages returns the message set sorted stably by kind. Sorting happens
// once per call on a copy; the backing set keeps insertion order so that the
// most recently added message stays in front.
func (e *Error) Messages() []Message {
	if e == nil {
		return nil
	}
	out := make([]Message, len(e.msgs))
	copy(out, e.msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Add derives an error with msg placed at the front of the set. Any existing
// message structurally equal to msg is removed first.
func (e *Error) Add(msg Message) *Error {
	next := &Error{Pos: e.Pos, msgs: make([]Message, 0, len(e.msgs)+1)}
	next.msgs = append(next.msgs, msg)
	for _, m := range e.msgs {
		if !m.Equal(msg) {
			next.msgs = append(next.msgs, m)
		}
	}
	return next
}

// WithExpected replaces the error's expectation context with the given
// labels: every prior expect message is dropped. An empty label list
// installs a single empty expect message, which renders as no expectation
// at all; otherwise the first label goes to the front of the set and the
// remaining labels are appended, all of them preserved.
func (e *Error) WithExpected(labels []string) *Error {
	next := &Error{Pos: e.Pos, msgs: make([]Message, 0, len(e.msgs)+len(labels))}
	if len(labels) == 0 {
		next.msgs = append(next.msgs, Message{Kind: KindExpect})
	} else {
		next.msgs = append(next.msgs, Message{Kind: KindExpect, Text: labels[0]})
		for _, label := range labels[1:] {
			msg := Message{Kind: KindExpect, Text: label}
			dup := false
			for _, m := range next.msgs {
				if m.Equal(msg) {
					dup = true
					break
				}
			}
			if !dup {
				next.msgs = append(next.msgs, msg)
			}
		}
	}
	for _, m := range e.msgs {
		if m.Kind != KindExpect {
			next.msgs = append(next.msgs, m)
		}
	}
	return next
}

// Merge combines two competing diagnostics under the furthest-progress rule:
// the error produced after consuming more input wins outright, equal
// positions union their messages (a's first), and an unknown error always
// loses to a known one.
func Merge(a, b *Error) *Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case len(a.msgs) == 0 && len(b.msgs) != 0:
		return b
	case len(b.msgs) == 0 && len(a.msgs) != 0:
		return a
	case a.Pos.Equal(b.Pos):
		merged := &Error{Pos: a.Pos, msgs: make([]Message, 0, len(a.msgs)+len(b.msgs))}
		merged.msgs = append(merged.msgs, a.msgs...)
		merged.msgs = append(merged.msgs, b.msgs...)
		return merged
	case a.Pos.Less(b.Pos):
		return b
	default:
		// b made strictly less progress; its diagnostic is discarded.
		return a
	}
}

// Render produces the single-line human-facing message, without the
// position prefix. The four kinds are grouped, same-kind texts are joined
// with commas and a final "or", and the auto-generated unexpected text is
// suppressed whenever a caller-supplied one is present.
func (e *Error) Render() string {
	if e.IsUnknown() {
		return "unknown parse error"
	}

	var sysUnexpect, unexpect, expect, generic []string
	for _, m := range e.Messages() {
		switch m.Kind {
		case KindSysUnexpect:
			sysUnexpect = append(sysUnexpect, m.Text)
		case KindUnexpect:
			unexpect = append(unexpect, m.Text)
		case KindExpect:
			expect = append(expect, m.Text)
		case KindGeneric:
			generic = append(generic, m.Text)
		}
	}

	var parts []string
	if len(unexpect) > 0 {
		parts = append(parts, "unexpected "+commasOr(unexpect))
	} else if len(sysUnexpect) > 0 {
		// Only the first system message is shown; the rest repeat the
		// same mismatched token.
		text := sysUnexpect[0]
		if text == "" {
			text = "end of input"
		}
		parts = append(parts, "unexpected "+text)
	}
	if joined := commasOr(expect); joined != "" {
		parts = append(parts, "expecting "+joined)
	}
	if joined := commasOr(generic); joined != "" {
		parts = append(parts, joined)
	}
	if len(parts) == 0 {
		return "unknown parse error"
	}
	return strings.Join(parts, " ")
}

// Error implements the error interface, prefixing the rendered message with
// the failure position.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Render())
}

// commasOr joins distinct non-empty texts with commas and a trailing "or".
func commasOr(texts []string) string {
	var clean []string
	for _, t := range texts {
		if t == "" {
			continue
		}
		seen := false
		for _, c := range clean {
			if c == t {
				seen = true
				break
			}
		}
		if !seen {
			clean = append(clean, t)
		}
	}
	switch len(clean) {
	case 0:
		return ""
	case 1:
		return clean[0]
	default:
		return strings.Join(clean[:len(clean)-1], ", ") + " or " + clean[len(clean)-1]
	}
}
