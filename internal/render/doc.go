// Package render prints Jira responses as terminal tables.
package render
