package jira

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-json-experiment/json"
)

// APIError represents a non-2xx response from the Jira REST API.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Body is the raw response body, kept for diagnostics.
	Body string

	// Messages holds the errorMessages and field errors Jira reported, if
	// the body was a Jira error collection.
	Messages []string
}

// ErrorCollection is the error body Jira returns for failed requests and
// for each failed element of a bulk request.
type ErrorCollection struct {
	ErrorMessages []string          `json:"errorMessages,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
}

// Messages flattens the collection into sorted, human-readable lines.
func (c ErrorCollection) Messages() []string {
	out := append([]string(nil), c.ErrorMessages...)

	fields := make([]string, 0, len(c.Errors))
	for field := range c.Errors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	for _, field := range fields {
		out = append(out, field+": "+c.Errors[field])
	}

	return out
}

func (err *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "jira: HTTP %d", err.StatusCode)

	switch {
	case len(err.Messages) > 0:
		builder.WriteString(": ")
		builder.WriteString(strings.Join(err.Messages, "; "))
	case strings.TrimSpace(err.Body) != "":
		builder.WriteString(": ")
		builder.WriteString(strings.TrimSpace(err.Body))
	}

	return builder.String()
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && (apiError.StatusCode == 401 || apiError.StatusCode == 403)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode, Body: string(body)}

	var collection ErrorCollection
	if err := json.Unmarshal(body, &collection); err == nil {
		apiError.Messages = collection.Messages()
	}

	return apiError
}
