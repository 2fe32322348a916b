package fieldpath

import (
	"errors"
	"fmt"
	"strings"
)

const arraySuffix = "[]"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind tags a Segment as an object key or an array step.
type Kind int

const (
	_ Kind = iota // zero value is an invalid segment

	KindKey
	KindArray
)

// PathSegment is one step of a field path.
type PathSegment struct {
	Kind Kind

	// Name is the mapping key for KindKey segments. Empty for KindArray.
	Name string
}

// Key returns a segment that descends into the mapping entry name.
func Key(name string) PathSegment {
	return PathSegment{Kind: KindKey, Name: name}
}

// Array returns a segment that descends into an ordered sequence.
func Array() PathSegment {
	return PathSegment{Kind: KindArray}
}

// IsArray reports whether the segment is an array step.
func (s PathSegment) IsArray() bool {
	return s.Kind == KindArray
}

// FieldPath represents a parsed header cell like "fixVersions[].id".
type FieldPath struct {
	// Column is the zero-based index of the header cell.
	Column int

	// Raw is the header cell text as it appeared in the file.
	Raw string

	Segments []PathSegment
}

// String returns the canonical path text. Two paths with identical
// segments always have the same canonical text.
func (p FieldPath) String() string {
	var sb strings.Builder

	for i, seg := range p.Segments {
		if seg.IsArray() {
			sb.WriteString(arraySuffix)
			continue
		}

		if i > 0 {
			sb.WriteString(".")
		}

		sb.WriteString(seg.Name)
	}

	return sb.String()
}

// HasArray reports whether any segment of the path is an array step.
func (p FieldPath) HasArray() bool {
	for _, seg := range p.Segments {
		if seg.IsArray() {
			return true
		}
	}

	return false
}

// Parse parses a header cell into a FieldPath.
// Supports: "summary", "issuetype.id", "labels[]", "fixVersions[].id".
func Parse(column int, raw string) (FieldPath, error) {
	if raw == "" {
		return FieldPath{}, &SyntaxError{Column: column, Raw: raw, Reason: "empty path"}
	}

	var segments []PathSegment

	arrays := 0

	for part := range strings.SplitSeq(raw, ".") {
		if part == "" {
			return FieldPath{}, &SyntaxError{Column: column, Raw: raw, Reason: "empty segment"}
		}

		name, isArray := strings.CutSuffix(part, arraySuffix)
		if isArray && name == "" {
			return FieldPath{}, &SyntaxError{Column: column, Raw: raw, Reason: "array marker without field name"}
		}

		if strings.ContainsAny(name, "[]") {
			return FieldPath{}, &SyntaxError{Column: column, Raw: raw, Reason: fmt.Sprintf("unexpected bracket in %q", part)}
		}

		segments = append(segments, Key(name))

		if isArray {
			arrays++
			if arrays > 1 {
				return FieldPath{}, &SyntaxError{Column: column, Raw: raw, Reason: "nested arrays are not supported"}
			}

			segments = append(segments, Array())
		}
	}

	return FieldPath{Column: column, Raw: raw, Segments: segments}, nil
}

// ParseHeader parses every header cell in column order. All syntax errors
// are reported together; any one of them makes the header unusable.
func ParseHeader(header []string) ([]FieldPath, error) {
	result := make([]FieldPath, 0, len(header))

	var errs []error

	for i, cell := range header {
		fp, err := Parse(i, cell)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		result = append(result, fp)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return result, nil
}
