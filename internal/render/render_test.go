package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiragen/internal/jira"
)

func TestProjectRows(t *testing.T) {
	project := &jira.Project{
		Key:        "PROJ",
		Components: []jira.Component{{ID: "1", Name: "Backend"}},
		IssueTypes: []jira.IssueType{{ID: "10", Name: "Task"}, {ID: "11", Name: "Bug"}},
		Roles: map[string]string{
			"Developers":     "u1",
			"Administrators": "u2",
			"Viewers":        "u3",
		},
	}

	assert.Equal(t, [][]string{
		{"Name: Backend\nID: 1", "Name: Task\nID: 10", "Administrators"},
		{"", "Name: Bug\nID: 11", "Developers"},
		{"", "", "Viewers"},
	}, ProjectRows(project))
}

func TestProjectRowsEmpty(t *testing.T) {
	assert.Empty(t, ProjectRows(&jira.Project{}))
}

func TestCreatedIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CreatedIssues(&buf, []jira.CreatedIssue{
		{ID: "10000", Key: "PROJ-1", Self: "https://jira/rest/api/2/issue/10000"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Issues")
	assert.Contains(t, out, "Key: PROJ-1")
	assert.Contains(t, out, "Link: https://jira/rest/api/2/issue/10000")
}

func TestBulkErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BulkErrors(&buf, []jira.BulkElementError{
		{
			Status:              400,
			ElementErrors:       jira.ErrorCollection{Errors: map[string]string{"summary": "required"}},
			FailedElementNumber: 1,
		},
	}, []int{3, 5}))

	out := buf.String()
	assert.Contains(t, out, "#2 (line 5)")
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "summary: required")
}

func TestProject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Project(&buf, &jira.Project{
		Key:        "PROJ",
		Components: []jira.Component{{ID: "1", Name: "Backend"}},
	}))

	assert.Contains(t, buf.String(), "Project PROJ:")
	assert.Contains(t, buf.String(), "Name: Backend")
}
