package jira

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"

	"jiragen/internal/document"
)

const bulkCreatePath = "/rest/api/2/issue/bulk"

// IssueUpdate is one entry of a bulk issue creation request.
type IssueUpdate struct {
	Update *Update           `json:"update,omitzero"`
	Fields *document.Mapping `json:"fields"`
}

// Update holds the operations applied to a new issue besides its fields.
type Update struct {
	IssueLinks []IssueLinkOperation `json:"issuelinks"`
}

// IssueLinkOperation adds one issue link.
type IssueLinkOperation struct {
	Add IssueLink `json:"add"`
}

// IssueLink links the new issue to an existing one.
type IssueLink struct {
	Type         LinkType `json:"type"`
	OutwardIssue IssueRef `json:"outwardIssue"`
}

// LinkType names an issue link type.
type LinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// IssueRef identifies an existing issue by key.
type IssueRef struct {
	Key string `json:"key"`
}

// RelatesTo returns the update that links a new issue to key with the
// standard "Relates" link type.
func RelatesTo(key string) *Update {
	return &Update{
		IssueLinks: []IssueLinkOperation{{
			Add: IssueLink{
				Type: LinkType{
					Name:    "Relates",
					Inward:  "relates to",
					Outward: "relates to",
				},
				OutwardIssue: IssueRef{Key: key},
			},
		}},
	}
}

// BulkCreateRequest is the body of POST /rest/api/2/issue/bulk.
type BulkCreateRequest struct {
	IssueUpdates []IssueUpdate `json:"issueUpdates"`
}

// NewBulkCreateRequest wraps every document into an issue entry. When update
// is not nil, the same update is attached to every entry.
func NewBulkCreateRequest(fields []*document.Mapping, update *Update) *BulkCreateRequest {
	req := &BulkCreateRequest{IssueUpdates: make([]IssueUpdate, 0, len(fields))}
	for _, f := range fields {
		req.IssueUpdates = append(req.IssueUpdates, IssueUpdate{Update: update, Fields: f})
	}

	return req
}

// CreatedIssue identifies an issue created by a bulk request.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// BulkElementError reports why one entry of a bulk request failed.
type BulkElementError struct {
	Status              int             `json:"status"`
	ElementErrors       ErrorCollection `json:"elementErrors"`
	FailedElementNumber int             `json:"failedElementNumber"`
}

// BulkCreateResponse is the response of a bulk issue creation request.
type BulkCreateResponse struct {
	Issues []CreatedIssue     `json:"issues"`
	Errors []BulkElementError `json:"errors"`
}

// CreateIssues creates all issues in one bulk request. Jira creates the
// valid entries even when others fail; failed entries are listed in
// BulkCreateResponse.Errors.
//
// When Jira rejects the whole request, the returned error is an *APIError.
// If its body describes per-entry failures, the decoded response is
// returned alongside the error.
func (client *Client) CreateIssues(ctx context.Context, req *BulkCreateRequest) (*BulkCreateResponse, error) {
	var resp BulkCreateResponse

	err := client.post(ctx, bulkCreatePath, req, &resp)
	if err == nil {
		client.logger.Info("bulk create finished",
			"requested", len(req.IssueUpdates),
			"created", len(resp.Issues),
			"failed", len(resp.Errors),
		)

		return &resp, nil
	}

	var apiError *APIError
	if errors.As(err, &apiError) {
		var partial BulkCreateResponse
		if json.Unmarshal([]byte(apiError.Body), &partial) == nil && len(partial.Errors) > 0 {
			return &partial, fmt.Errorf("bulk create rejected: %w", err)
		}
	}

	return nil, fmt.Errorf("bulk create: %w", err)
}
