package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"jiragen/internal/jira"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		BorderRow(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...)
}

// CreatedIssues writes one row per created issue.
func CreatedIssues(w io.Writer, issues []jira.CreatedIssue) error {
	t := newTable("Issues")
	for _, iss := range issues {
		t.Row(fmt.Sprintf("ID: %s\nKey: %s\nLink: %s", iss.ID, iss.Key, iss.Self))
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

// BulkErrors writes one row per rejected bulk entry. rowLines maps the
// position of an entry in the request to the line of the issues file it
// came from; entries without a known line show only their position.
func BulkErrors(w io.Writer, failures []jira.BulkElementError, rowLines []int) error {
	t := newTable("Entry", "Status", "Errors")
	for _, f := range failures {
		entry := fmt.Sprintf("#%d", f.FailedElementNumber+1)
		if f.FailedElementNumber >= 0 && f.FailedElementNumber < len(rowLines) {
			entry += fmt.Sprintf(" (line %d)", rowLines[f.FailedElementNumber])
		}

		t.Row(entry, fmt.Sprint(f.Status), strings.Join(f.ElementErrors.Messages(), "\n"))
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

// Project writes the components, issue types and roles of a project side by
// side.
func Project(w io.Writer, project *jira.Project) error {
	t := newTable("Components", "Issue Type", "Roles")
	for _, row := range ProjectRows(project) {
		t.Row(row...)
	}

	_, err := fmt.Fprintf(w, "Project %s:\n\n%s\n", project.Key, t.Render())

	return err
}

// ProjectRows lays out the three project columns, padding the shorter ones
// with empty cells.
func ProjectRows(project *jira.Project) [][]string {
	components := make([]string, 0, len(project.Components))
	for _, c := range project.Components {
		components = append(components, fmt.Sprintf("Name: %s\nID: %s", c.Name, c.ID))
	}

	issueTypes := make([]string, 0, len(project.IssueTypes))
	for _, it := range project.IssueTypes {
		issueTypes = append(issueTypes, fmt.Sprintf("Name: %s\nID: %s", it.Name, it.ID))
	}

	roles := make([]string, 0, len(project.Roles))
	for name := range project.Roles {
		roles = append(roles, name)
	}

	sort.Strings(roles)

	height := max(len(components), len(issueTypes), len(roles))
	rows := make([][]string, height)

	for i := range rows {
		rows[i] = []string{at(components, i), at(issueTypes, i), at(roles, i)}
	}

	return rows
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}

	return ""
}
