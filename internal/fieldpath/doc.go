// Package fieldpath parses the column headers of an issues file.
//
// A header cell names where its column's values land in the issue's
// "fields" document:
//
//   - Simple fields: "summary"
//   - Nested fields: "issuetype.id"
//   - Array entries: "labels[]"
//   - Fields of array entries: "fixVersions[].id"
//
// Components are separated by dots. A "[]" suffix marks the component as an
// array; at most one array component is allowed per path. Parsing is a pure
// function of the cell text.
package fieldpath
