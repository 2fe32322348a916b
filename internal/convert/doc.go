// Package convert folds the rows of an issues file into issue documents.
//
// Every column header is parsed once into a fieldpath.FieldPath. Each row is
// then folded column by column into a fresh document: keys create nested
// objects, "[]" creates arrays, and the cell text becomes a string leaf.
//
// # Repeated paths
//
// Within one row, the n-th column carrying an identical path addresses the
// n-th element of that path's array:
//
//	fixVersions[].id,fixVersions[].id
//	10000,10001
//
// becomes {"fixVersions": [{"id": "10000"}, {"id": "10001"}]}, while
// different paths sharing an array prefix fill the same element. The counter
// is local to one row.
//
// # Failures
//
// A malformed header fails the conversion. Rows with the wrong number of
// cells (RowShapeError) or with contradictory paths (PathConflictError) are
// skipped and reported as warnings; the remaining rows are still converted.
package convert
