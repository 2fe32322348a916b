// Package match provides edit-distance helpers used to suggest the intended
// name when a command or flag is mistyped.
package match
