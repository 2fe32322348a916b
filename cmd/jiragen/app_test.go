package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiragen/internal/cli"
	"jiragen/internal/config"
)

const issuesCSV = `summary,issuetype.id,labels[],labels[]
Summary,Issue Type,Labels,Labels
First,10001,a,b
Second,10002,c,
Broken,10003
`

type testApp struct {
	*app
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
	logs   bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ta := &testApp{dir: t.TempDir()}
	ta.app = newApp(&ta.stdout, &ta.stderr)
	ta.newLogger = func(bool) *slog.Logger {
		return slog.New(slog.NewTextHandler(&ta.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return ta
}

func (ta *testApp) path(name string) string {
	return filepath.Join(ta.dir, name)
}

func (ta *testApp) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(ta.path(name), []byte(content), 0o600))
}

func (ta *testApp) writeConfig(t *testing.T, url string) {
	t.Helper()

	cfg := &config.Config{URL: url, User: "me@example.com", Key: "secret"}
	require.NoError(t, config.WriteFile(context.Background(), ta.fs, ta.path("jiragen.json"), cfg))
}

func (ta *testApp) run(args ...string) error {
	full := append([]string{"-c", ta.path("jiragen.json"), "-i", ta.path("issues.csv")}, args...)
	return ta.root().Execute(context.Background(), full)
}

func TestInitWritesTemplates(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("init"))

	issues, err := os.ReadFile(ta.path("issues.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"project.key,summary,description,issuetype.id,labels[],assignee.name\n"+
			"Project,Summary,Description,Issue Type,Labels,Assignee\n",
		string(issues))

	cfg, err := config.Load(context.Background(), ta.fs, ta.path("jiragen.json"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)

	assert.Contains(t, ta.stdout.String(), "Wrote config: "+ta.path("jiragen.json"))
	assert.Contains(t, ta.stdout.String(), "Wrote issues: "+ta.path("issues.csv"))
}

func TestInitRefusesToOverwrite(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)

	err := ta.run("init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(ta.path("issues.csv"))
	require.NoError(t, err)
	assert.Equal(t, issuesCSV, string(data))

	require.NoError(t, ta.run("init", "--force"))

	data, err = os.ReadFile(ta.path("issues.csv"))
	require.NoError(t, err)
	assert.NotEqual(t, issuesCSV, string(data))
}

func TestPushDryRun(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)

	require.NoError(t, ta.run("push", "--dry-run", "--link", "PROJ-9"))

	link := `{"issuelinks": [{"add": {
		"type": {"name": "Relates", "inward": "relates to", "outward": "relates to"},
		"outwardIssue": {"key": "PROJ-9"}
	}}]}`
	assert.JSONEq(t, `{"issueUpdates": [
		{"update": `+link+`, "fields": {"summary": "First", "issuetype": {"id": "10001"}, "labels": ["a", "b"]}},
		{"update": `+link+`, "fields": {"summary": "Second", "issuetype": {"id": "10002"}, "labels": ["c", ""]}}
	]}`, ta.stdout.String())

	assert.Contains(t, ta.logs.String(), "skipping row")
	assert.Contains(t, ta.logs.String(), "issues=2 skipped=1")
}

func TestPushDryRunOmitEmpty(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)

	require.NoError(t, ta.run("push", "--dry-run", "--omit-empty", "--quiet-skips", "--workers", "2"))

	var req struct {
		IssueUpdates []struct {
			Fields map[string]any `json:"fields"`
		} `json:"issueUpdates"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &req))
	require.Len(t, req.IssueUpdates, 2, spew.Sdump(req))

	assert.Equal(t, []any{"c"}, req.IssueUpdates[1].Fields["labels"])
	assert.NotContains(t, ta.logs.String(), "level=WARN")
}

func TestPushAllRowsSkipped(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", "summary,labels[]\nSummary,Labels\nonly-one-cell\n")

	err := ta.run("push", "--dry-run")
	require.ErrorIs(t, err, errNoIssues)
	assert.Empty(t, ta.stdout.String())
}

func TestPushInvalidHeader(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", "summary,labels[][]\nSummary,Labels\nx,y\n")

	err := ta.run("push", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid header")
}

func TestPushIncompleteConfig(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)
	ta.write(t, "jiragen.json", `{"jira_url": "https://jira.example.com"}`)

	err := ta.run("push")
	require.ErrorIs(t, err, config.ErrIncomplete)
}

func TestPushCreatesIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/bulk", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), `"summary":"Second"`)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"issues": [
			{"id": "10000", "key": "PROJ-1", "self": "https://jira/rest/api/2/issue/10000"},
			{"id": "10001", "key": "PROJ-2", "self": "https://jira/rest/api/2/issue/10001"}
		], "errors": []}`)
	}))
	defer server.Close()

	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)
	ta.writeConfig(t, server.URL)

	require.NoError(t, ta.run("push"))

	assert.Contains(t, ta.stdout.String(), "Issues created successfully")
	assert.Contains(t, ta.stdout.String(), "Key: PROJ-2")
}

func TestPushReportsRejectedIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"issues": [
			{"id": "10000", "key": "PROJ-1", "self": "https://jira/rest/api/2/issue/10000"}
		], "errors": [{
			"status": 400,
			"elementErrors": {"errorMessages": [], "errors": {"issuetype": "valid issue type is required"}},
			"failedElementNumber": 1
		}]}`)
	}))
	defer server.Close()

	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)
	ta.writeConfig(t, server.URL)

	err := ta.run("push")

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	out := ta.stdout.String()
	assert.Contains(t, out, "Key: PROJ-1")
	assert.Contains(t, out, "Jira rejected 1 issues")
	assert.Contains(t, out, "#2 (line 4)")
	assert.Contains(t, out, "issuetype: valid issue type is required")
}

func TestPushRequestRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errorMessages": ["You are not authenticated."], "errors": {}}`)
	}))
	defer server.Close()

	ta := newTestApp(t)
	ta.write(t, "issues.csv", issuesCSV)
	ta.writeConfig(t, server.URL)

	err := ta.run("push")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Check jira_user and jira_key in "+ta.path("jiragen.json"))
	assert.Empty(t, ta.stdout.String())
}

func TestPushSkipsRowsInLegacyEncoding(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "issues.csv", "summary,description\nSummary,Description\nfirst,plain\nsecond,caf\xe9\nthird,\"bad\"quote\"\n")

	require.NoError(t, ta.run("push", "--dry-run"))

	assert.JSONEq(t, `{"issueUpdates": [
		{"fields": {"summary": "first", "description": "plain"}}
	]}`, ta.stdout.String())

	logs := ta.logs.String()
	assert.Contains(t, logs, "reason=invalid_encoding line=4")
	assert.Contains(t, logs, "reason=unreadable_row line=5")
}

func TestInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/project/PROJ", r.URL.Path)

		_, _ = io.WriteString(w, `{
			"id": "10000",
			"key": "PROJ",
			"name": "Project",
			"components": [{"id": "10100", "name": "Backend"}],
			"issueTypes": [{"id": "10001", "name": "Task", "subtask": false}],
			"roles": {"Developers": "https://jira/rest/api/3/project/10000/role/10001"}
		}`)
	}))
	defer server.Close()

	ta := newTestApp(t)
	ta.writeConfig(t, server.URL)

	require.NoError(t, ta.run("info", "PROJ"))

	out := ta.stdout.String()
	assert.Contains(t, out, "Project PROJ:")
	assert.Contains(t, out, "Name: Backend")
	assert.Contains(t, out, "Name: Task")
	assert.Contains(t, out, "Developers")
}

func TestInfoUnknownProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"errorMessages": ["No project could be found with key 'NOPE'."], "errors": {}}`)
	}))
	defer server.Close()

	ta := newTestApp(t)
	ta.writeConfig(t, server.URL)

	err := ta.run("info", "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown project "NOPE"`)
	assert.Empty(t, ta.stdout.String())
}

func TestInfoRequiresProject(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run("info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one project key")
}

func TestUnknownCommand(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run("psh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "push"?`)
}
