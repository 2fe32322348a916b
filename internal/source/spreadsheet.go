package source

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"

	"jiragen/internal/convert"
)

// readXLSX reads the first sheet of an Office Open XML workbook.
func readXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	records := make([]convert.Row, 0, len(rows))
	for i, cells := range rows {
		records = append(records, convert.Row{Line: i + 1, Cells: cells})
	}

	return splitSheet(records)
}

// readXLS reads the first sheet of a legacy BIFF workbook.
func readXLS(data []byte) (*Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if wb.GetNumberSheets() == 0 {
		return nil, ErrNoHeader
	}

	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading first sheet: %w", err)
	}

	if sheet == nil {
		return nil, ErrNoHeader
	}

	rows := sheet.GetRows()

	records := make([]convert.Row, 0, len(rows))
	for i, row := range rows {
		records = append(records, convert.Row{Line: i + 1, Cells: xlsRowValues(row.GetCols())})
	}

	return splitSheet(records)
}

func xlsRowValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		val := col.GetString()
		if val == "" {
			if num := col.GetFloat64(); num != 0 {
				val = strconv.FormatFloat(num, 'f', -1, 64)
			} else if in := col.GetInt64(); in != 0 {
				val = strconv.FormatInt(in, 10)
			}
		}

		out = append(out, val)
	}

	return out
}

// splitSheet is split for spreadsheets. Sheets do not store trailing empty
// cells, so data rows are padded to the header width, and rows without any
// value are dropped the way a CSV reader drops blank lines.
func splitSheet(records []convert.Row) (*Table, error) {
	table, err := split(records)
	if err != nil {
		return nil, err
	}

	width := len(table.Header)
	kept := table.Rows[:0]

	for _, row := range table.Rows {
		if isBlank(row.Cells) {
			continue
		}

		for len(row.Cells) < width {
			row.Cells = append(row.Cells, "")
		}

		kept = append(kept, row)
	}

	table.Rows = kept

	return table, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}

	return true
}
