// Package jira is a small client for the Jira REST API endpoints used by
// jiragen: bulk issue creation and project lookup.
//
// Every request carries Basic Authentication built from the configured user
// and API key. Non-2xx responses are returned as *APIError with the response
// body preserved for diagnostics.
package jira
