package convert

import "fmt"

// RowShapeError reports a data row whose cell count differs from the header.
type RowShapeError struct {
	// Line is the row's line in the issues file.
	Line int
	Want int
	Got  int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("line %d: row has %d cells, header has %d", e.Line, e.Got, e.Want)
}

// PathConflictError reports a column whose path contradicts the structure
// an earlier column of the same row already built.
type PathConflictError struct {
	// Line is the row's line in the issues file.
	Line int
	// Column is the zero-based index of the column that could not be folded.
	Column int
	// Path is the column header.
	Path   string
	Reason string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("line %d: column %d (%s): %s", e.Line, e.Column+1, e.Path, e.Reason)
}

// EncodingError reports a cell that is not valid UTF-8, typically because
// the file was saved in a legacy encoding such as Windows-1252.
type EncodingError struct {
	// Line is the row's line in the issues file.
	Line int
	// Column is the zero-based index of the offending cell.
	Column int
	// Path is the column header.
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("line %d: column %d (%s) is not valid UTF-8; save the file as UTF-8", e.Line, e.Column+1, e.Path)
}

// ReadError reports a row the source reader could not decode, such as a
// CSV record with a stray quote.
type ReadError struct {
	// Line is the line the record starts on.
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("line %d: unreadable row: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
