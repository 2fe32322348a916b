// Package diagnostic collects the warnings produced while turning an issues
// file into issue documents, each tied to a file line and, when known, the
// header cell involved.
package diagnostic
