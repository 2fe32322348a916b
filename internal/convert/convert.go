package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jiragen/internal/diagnostic"
	"jiragen/internal/document"
	"jiragen/internal/fieldpath"
)

// Diagnostic codes recorded for skipped rows.
const (
	CodeRowShape     = "row_shape"
	CodePathConflict = "path_conflict"
	CodeEncoding     = "invalid_encoding"
	CodeUnreadable   = "unreadable_row"
)

// Row is one data row of the issues file.
type Row struct {
	// Line is the 1-based line (or sheet row) the cells were read from.
	Line  int
	Cells []string

	// Err is set when the source could not decode the row. Such a row is
	// skipped like any other malformed row.
	Err error
}

// Options controls a conversion.
type Options struct {
	// Empty decides what empty cells contribute. Defaults to EmptyKeep.
	Empty EmptyPolicy

	// Workers is the number of rows folded in parallel. Values below 2
	// fold rows one after another.
	Workers int

	// QuietSkips records skipped rows without warning diagnostics; they are
	// still counted in Result.Skipped and logged at debug level.
	QuietSkips bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Converted is the document built from one accepted row.
type Converted struct {
	Line   int
	Fields *document.Mapping
}

// Skipped is a row that produced no document.
type Skipped struct {
	Line int
	Err  error
}

// Result is the outcome of converting a whole file.
type Result struct {
	// Documents holds one entry per accepted row, in input order.
	Documents []Converted

	// Skipped holds every rejected row, in input order.
	Skipped []Skipped

	Diagnostics diagnostic.Diagnostics
}

// Fields returns the documents in input order.
func (r *Result) Fields() []*document.Mapping {
	out := make([]*document.Mapping, len(r.Documents))
	for i, d := range r.Documents {
		out[i] = d.Fields
	}

	return out
}

// RowResult is the outcome of folding a single row: exactly one of
// Document and Err is set.
type RowResult struct {
	Line     int
	Document *document.Mapping
	Err      error
}

// BuildRow folds one row, reporting failure in the result rather than
// aborting.
func (b *Builder) BuildRow(row Row) RowResult {
	doc, err := b.Build(row)
	return RowResult{Line: row.Line, Document: doc, Err: err}
}

// Convert parses header and folds every row into a document. A malformed
// header fails the whole conversion before any row is read. A row that
// cannot be folded is skipped and reported; it never stops the others.
func Convert(ctx context.Context, header []string, rows []Row, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := fieldpath.ParseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	builder := NewBuilder(paths, opts.Empty)

	results, err := buildAll(ctx, builder, rows, opts.Workers)
	if err != nil {
		return nil, err
	}

	res := &Result{Documents: make([]Converted, 0, len(rows))}

	for _, rr := range results {
		if rr.Err == nil {
			res.Documents = append(res.Documents, Converted{Line: rr.Line, Fields: rr.Document})
			continue
		}

		res.Skipped = append(res.Skipped, Skipped{Line: rr.Line, Err: rr.Err})

		code, fieldPath := classify(rr.Err)
		if opts.QuietSkips {
			logger.Debug("skipping row", "line", rr.Line, "reason", code, "error", rr.Err)
			continue
		}

		res.Diagnostics.AddWarning(code, rr.Err.Error(), rr.Line, fieldPath)
	}

	res.Diagnostics.Log(ctx, logger, "skipping row")

	logger.Debug("conversion finished",
		"columns", builder.Columns(),
		"rows", len(rows),
		"documents", len(res.Documents),
		"skipped", len(res.Skipped),
	)

	return res, nil
}

// buildAll folds rows, in parallel when workers > 1. Results are indexed by
// row position so the output order never depends on scheduling.
func buildAll(ctx context.Context, builder *Builder, rows []Row, workers int) ([]RowResult, error) {
	results := make([]RowResult, len(rows))

	if workers < 2 {
		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results[i] = builder.BuildRow(row)
		}

		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = builder.BuildRow(row)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func classify(err error) (code, fieldPath string) {
	var (
		conflict *PathConflictError
		encoding *EncodingError
		read     *ReadError
	)

	switch {
	case errors.As(err, &conflict):
		return CodePathConflict, conflict.Path
	case errors.As(err, &encoding):
		return CodeEncoding, encoding.Path
	case errors.As(err, &read):
		return CodeUnreadable, ""
	default:
		return CodeRowShape, ""
	}
}
