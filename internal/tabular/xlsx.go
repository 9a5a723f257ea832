package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// NewXLSXReader flattens the first sheet of an xlsx workbook into delimited
// text and feeds it through the standard Reader, so header detection and
// field resolution behave identically for spreadsheet uploads.
func NewXLSXReader(r io.Reader) (*Reader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, io.ErrUnexpectedEOF
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	// GetRows omits trailing empty cells, so pad every row to the widest one
	// to keep the csv field-count check from tripping on sparse rows.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		if err := w.Write(padded); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return NewReader(&buf)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
