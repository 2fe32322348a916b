package convert

import (
	"unicode/utf8"

	"jiragen/internal/document"
	"jiragen/internal/fieldpath"
)

// EmptyPolicy decides what an empty cell contributes to a document.
type EmptyPolicy int

const (
	// EmptyKeep sets the field to an empty string.
	EmptyKeep EmptyPolicy = iota
	// EmptyOmit skips the cell entirely: no key, no containers, and the
	// column does not count as an occurrence of its path.
	EmptyOmit
)

// Builder folds rows into documents using a fixed, parsed header.
// A Builder holds no per-row state and is safe for concurrent use.
type Builder struct {
	paths []fieldpath.FieldPath
	empty EmptyPolicy
}

// NewBuilder returns a Builder for the given header paths, in column order.
func NewBuilder(paths []fieldpath.FieldPath, empty EmptyPolicy) *Builder {
	return &Builder{paths: paths, empty: empty}
}

// Columns returns the number of columns every row must have.
func (b *Builder) Columns() int {
	return len(b.paths)
}

// Build folds one row into a new document. A row the source could not read
// yields a *ReadError. The row must have exactly one cell per column;
// otherwise a *RowShapeError is returned. A cell that is not valid UTF-8
// yields an *EncodingError, and contradictory paths a *PathConflictError.
// No error is returned together with a document.
func (b *Builder) Build(row Row) (*document.Mapping, error) {
	if row.Err != nil {
		return nil, &ReadError{Line: row.Line, Err: row.Err}
	}

	if len(row.Cells) != len(b.paths) {
		return nil, &RowShapeError{Line: row.Line, Want: len(b.paths), Got: len(row.Cells)}
	}

	for i, cell := range row.Cells {
		if !utf8.ValidString(cell) {
			return nil, &EncodingError{Line: row.Line, Column: i, Path: b.paths[i].Raw}
		}
	}

	root := document.NewMapping()
	occurrences := make(map[string]int, len(b.paths))

	for i, fp := range b.paths {
		cell := row.Cells[i]
		if cell == "" && b.empty == EmptyOmit {
			continue
		}

		// Only array steps care how often a path was seen.
		var signature string
		if fp.HasArray() {
			signature = fp.String()
		}

		if err := fold(root, fp, occurrences[signature], cell); err != nil {
			err.Line = row.Line
			return nil, err
		}

		if fp.HasArray() {
			occurrences[signature]++
		}
	}

	return root, nil
}

// fold writes cell into root at fp. occurrence is the number of times the
// same path was already folded into root and selects the array element.
func fold(root *document.Mapping, fp fieldpath.FieldPath, occurrence int, cell string) *PathConflictError {
	conflict := func(reason string) *PathConflictError {
		return &PathConflictError{Column: fp.Column, Path: fp.Raw, Reason: reason}
	}

	var cursor document.Value = root

	segments := fp.Segments
	for i, seg := range segments {
		last := i == len(segments)-1

		switch seg.Kind {
		case fieldpath.KindKey:
			m, ok := cursor.(*document.Mapping)
			if !ok {
				return conflict("expected an object at " + prefix(fp, i))
			}

			existing, found := m.Get(seg.Name)

			if last {
				if found && existing.Kind() != document.KindScalar {
					return conflict(seg.Name + " already holds " + describe(existing))
				}

				m.Set(seg.Name, document.Scalar(cell))

				return nil
			}

			if !found {
				existing = newContainer(segments[i+1])
				m.Set(seg.Name, existing)
			}

			cursor = existing
		case fieldpath.KindArray:
			s, ok := cursor.(*document.Sequence)
			if !ok {
				return conflict("expected an array at " + prefix(fp, i))
			}

			if last {
				if occurrence >= s.Len() {
					s.Append(document.Scalar(cell))
					return nil
				}

				if existing := s.At(occurrence); existing.Kind() != document.KindScalar {
					return conflict("array element already holds " + describe(existing))
				}

				s.Set(occurrence, document.Scalar(cell))

				return nil
			}

			for s.Len() < occurrence+1 {
				s.Append(document.NewMapping())
			}

			cursor = s.At(occurrence)
		default:
			return conflict("invalid segment")
		}
	}

	return nil
}

// newContainer creates the container a non-final segment descends into,
// chosen by the kind of the segment that follows it.
func newContainer(next fieldpath.PathSegment) document.Value {
	if next.IsArray() {
		return document.NewSequence()
	}

	return document.NewMapping()
}

// prefix renders the first n segments of fp.
func prefix(fp fieldpath.FieldPath, n int) string {
	if n == 0 {
		return "the document root"
	}

	return fieldpath.FieldPath{Segments: fp.Segments[:n]}.String()
}

func describe(v document.Value) string {
	switch v.Kind() {
	case document.KindScalar:
		return "a value"
	case document.KindMapping:
		return "an object"
	case document.KindSequence:
		return "an array"
	default:
		return v.Kind().String()
	}
}
