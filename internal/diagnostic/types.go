package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Diagnostic is one finding about the issues file.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding, e.g. "row_shape".
	Code    string
	Message string
	// Line is the 1-based line of the issues file (0 if none).
	Line int
	// FieldPath is the header cell the finding is about, if any.
	FieldPath string
}

// String renders the diagnostic as "line 4 labels[]: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Line > 0 {
		prefix = append(prefix, fmt.Sprintf("line %d", d.Line))
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (d *Diagnostics) Add(severity Severity, code, message string, line int, fieldPath string) {
	*d = append(*d, Diagnostic{
		Severity:  severity,
		Code:      code,
		Message:   message,
		Line:      line,
		FieldPath: fieldPath,
	})
}

// AddWarning appends a warning.
func (d *Diagnostics) AddWarning(code, message string, line int, fieldPath string) {
	d.Add(SeverityWarning, code, message, line, fieldPath)
}

// Warnings returns the warnings, in order.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(SeverityWarning)
}

func (d Diagnostics) filter(severity Severity) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity == severity {
			out = append(out, diag)
		}
	}

	return out
}

// CountByCode returns how many warnings and errors carry each code.
func (d Diagnostics) CountByCode() map[string]int {
	counts := make(map[string]int)
	for _, diag := range d {
		if diag.Severity >= SeverityWarning {
			counts[diag.Code]++
		}
	}

	return counts
}

// Log writes every diagnostic to logger at the level of its severity.
func (d Diagnostics) Log(ctx context.Context, logger *slog.Logger, msg string) {
	for _, diag := range d {
		attrs := []slog.Attr{slog.String("reason", diag.Code)}
		if diag.Line > 0 {
			attrs = append(attrs, slog.Int("line", diag.Line))
		}

		if diag.FieldPath != "" {
			attrs = append(attrs, slog.String("path", diag.FieldPath))
		}

		attrs = append(attrs, slog.String("error", diag.Message))

		logger.LogAttrs(ctx, diag.Severity.Level(), msg, attrs...)
	}
}
