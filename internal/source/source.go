package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"

	"jiragen/internal/convert"
)

var (
	// ErrNoHeader is returned for a file without a header row.
	ErrNoHeader = errors.New("issues file has no header row")
	// ErrUnsupportedFormat is returned for a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported issues file format")
)

// Format identifies the encoding of an issues file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// DetectFormat picks the format from the location's extension. Anything
// that is not a spreadsheet is read as CSV.
func DetectFormat(location string) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	default:
		return FormatCSV
	}
}

// Table is the content of an issues file.
type Table struct {
	// Header holds the field path of every column.
	Header []string

	// Labels is the human-readable second row. It is never converted.
	Labels []string

	// Rows holds the data rows, starting at the third row.
	Rows []convert.Row
}

// Load reads the issues file at location (a local path or any URL afs
// understands) and splits it into header, label row and data rows.
func Load(ctx context.Context, fs afs.Service, location string) (*Table, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read issues file %s: %w", location, err)
	}

	table, err := Parse(data, DetectFormat(location))
	if err != nil {
		return nil, fmt.Errorf("failed to parse issues file %s: %w", location, err)
	}

	return table, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return readCSV(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	case FormatXLSX:
		return readXLSX(data)
	case FormatXLS:
		return readXLS(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// readCSV keeps every cell exactly as written. Records may have any number
// of fields; a mismatch with the header is reported per row by convert. A
// record the reader cannot decode becomes a row carrying the parse error,
// and reading resumes after it.
func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var records []convert.Row

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			records = append(records, convert.Row{Line: parseErr.StartLine, Err: parseErr.Err})
			continue
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		records = append(records, convert.Row{Line: line, Cells: record})
	}

	return split(records)
}

// split separates the header and the label row from the data rows.
func split(records []convert.Row) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	if err := records[0].Err; err != nil {
		return nil, fmt.Errorf("line %d: unreadable header: %w", records[0].Line, err)
	}

	table := &Table{Header: records[0].Cells}

	if len(records) > 1 {
		table.Labels = records[1].Cells
	}

	if len(records) > 2 {
		table.Rows = records[2:]
	}

	return table, nil
}

// WriteTemplate writes a CSV issues file holding only the header and the
// label row.
func WriteTemplate(ctx context.Context, fs afs.Service, location string, header, labels []string) error {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{header, labels}); err != nil {
		return fmt.Errorf("failed to encode issues template: %w", err)
	}

	if err := fs.Upload(ctx, location, filePerm, &buf); err != nil {
		return fmt.Errorf("failed to write issues template %s: %w", location, err)
	}

	return nil
}

const filePerm = 0o644

// utf8BOM is prepended by spreadsheet programs exporting CSV.
var utf8BOM = []byte("\xef\xbb\xbf")
