package diagnostic

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "message only",
			diag:     Diagnostic{Message: "no rows"},
			expected: "no rows",
		},
		{
			name:     "with code and line",
			diag:     Diagnostic{Code: "row_shape", Message: "row has 2 cells, header has 3", Line: 7},
			expected: "line 7: [row_shape] row has 2 cells, header has 3",
		},
		{
			name:     "with field path",
			diag:     Diagnostic{Code: "path_conflict", Message: "expected an array", Line: 4, FieldPath: "labels[]"},
			expected: "line 4 labels[]: [path_conflict] expected an array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.Empty(t, d.Warnings())
	assert.Empty(t, d.CountByCode())

	d.AddWarning("row_shape", "short row", 3, "")
	d.Add(SeverityInfo, "rows", "2 rows read", 0, "")
	d.AddWarning("row_shape", "long row", 5, "")
	d.Add(SeverityError, "path_conflict", "bad", 9, "a.b")
	require.Len(t, d, 4)

	warnings := d.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, 5, warnings[1].Line)
	assert.Equal(t, map[string]int{"row_shape": 2, "path_conflict": 1}, d.CountByCode())
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(42).String())
	assert.Equal(t, slog.LevelWarn, SeverityWarning.Level())
	assert.Equal(t, slog.LevelError, SeverityError.Level())
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var d Diagnostics
	d.AddWarning("path_conflict", "labels already holds an object", 4, "labels[]")
	d.Log(context.Background(), logger, "skipping row")

	assert.Contains(t, buf.String(),
		`level=WARN msg="skipping row" reason=path_conflict line=4 path=labels[] error="labels already holds an object"`)
}
