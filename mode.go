package quill

// Mode selects the whitespace policy applied uniformly to all output.
// It is fixed per Serializer at construction.
type Mode int

const (
	// Pretty indents two spaces per nesting level, emits a newline
	// after each structural line, and one space after ':' and ','.
	Pretty Mode = iota

	// Compact emits no indentation, newlines, or extra spaces.
	Compact
)

func (m Mode) String() string {
	if m == Compact {
		return "compact"
	}
	return "pretty"
}

// indentUnit is the per-level indentation in pretty mode.
const indentUnit = "  "

// colon returns the name/value separator for the mode.
func (m Mode) colon() string {
	if m == Compact {
		return ":"
	}
	return ": "
}

// comma returns the flat-list element separator for the mode.
func (m Mode) comma() string {
	if m == Compact {
		return ","
	}
	return ", "
}
