package jira

import (
	"context"
	"fmt"
	"net/url"
)

// Project is the subset of a Jira project needed to fill in an issues file.
type Project struct {
	ID         string            `json:"id"`
	Key        string            `json:"key"`
	Name       string            `json:"name"`
	Components []Component       `json:"components"`
	IssueTypes []IssueType       `json:"issueTypes"`
	Roles      map[string]string `json:"roles"`
}

// Component is a project component.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueType is an issue type available in a project.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// GetProject fetches a project by key or ID.
func (client *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	var project Project

	if err := client.get(ctx, "/rest/api/3/project/"+url.PathEscape(key), &project); err != nil {
		return nil, fmt.Errorf("get project %s: %w", key, err)
	}

	return &project, nil
}
