package parseerr

// Kind discriminates the closed set of diagnostic message variants. The
// numeric order is used only to group same-kind messages together when an
// error is rendered; it is not a general ordering.
type Kind int

const (
	// KindSysUnexpect is an automatically generated token-mismatch
	// diagnostic. An empty text payload stands for end of input.
	KindSysUnexpect Kind = iota
	// KindUnexpect is a caller-asserted unexpected-input diagnostic.
	KindUnexpect
	// KindExpect is a caller-asserted expectation, attached via labeling.
	KindExpect
	// KindGeneric is free-form failure text.
	KindGeneric
)

// String returns the name of the kind, for debugging output.
func (k Kind) String() string {
	switch k {
	case KindSysUnexpect:
		return "SYS_UNEXPECT"
	case KindUnexpect:
		return "UNEXPECT"
	case KindExpect:
		return "EXPECT"
	case KindGeneric:
		return "GENERIC"
	default:
		return "UNKNOWN"
	}
}

// Message is one diagnostic attached to a parse error.
type Message struct {
	Kind Kind
	Text string
}

// Equal reports structural equality, the relation used for deduplication.
func (m Message) Equal(other Message) bool {
	return m.Kind == other.Kind && m.Text == other.Text
}
