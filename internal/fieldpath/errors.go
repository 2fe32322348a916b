package fieldpath

import "fmt"

// SyntaxError reports a header cell that is not a valid field path.
type SyntaxError struct {
	// Column is the zero-based index of the offending header cell.
	Column int
	// Raw is the header cell text.
	Raw string
	// Reason describes what is wrong with the text.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("column %d: invalid field path %q: %s", e.Column+1, e.Raw, e.Reason)
}
