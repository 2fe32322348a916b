// Package document holds the nested value assembled for one issue row.
package document
