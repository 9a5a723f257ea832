package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strings"
)

// headerScanWindow is how many leading non-blank lines are inspected when
// locating the true header row among noise lines.
const headerScanWindow = 5

var headerNormalizer = regexp.MustCompile(`[^a-z0-9]+`)

// Row is one parsed data row: normalized header name mapped to the trimmed
// cell value. Keys preserves column order so that substring-based field
// resolution stays deterministic.
type Row struct {
	Keys   []string
	Values map[string]string
}

// Reader yields rows from delimited tabular input. It is a single forward
// pass over the input and is not restartable.
type Reader struct {
	cr      *csv.Reader
	headers []string
}

// NewReader prepares a Reader over raw delimited text. It scans at most the
// first 5 non-blank lines for the header row (the first line containing "prn"
// together with "name" or "student", case-insensitive); lines before the
// header are discarded. If no line in the window matches, the first non-blank
// line is used as the header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var lines []string
	headerIdx := -1

	for len(lines) < headerScanWindow {
		line, err := br.ReadString('\n')

		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) != "" {
			lines = append(lines, trimmed)
			if isHeaderLine(trimmed) {
				headerIdx = len(lines) - 1
				break
			}
		}

		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}

	if len(lines) == 0 {
		return nil, io.ErrUnexpectedEOF
	}

	if headerIdx < 0 {
		headerIdx = 0
	}

	retained := strings.Join(lines[headerIdx:], "\n") + "\n"

	cr := csv.NewReader(io.MultiReader(strings.NewReader(retained), br))
	cr.TrimLeadingSpace = true

	headerRec, err := cr.Read()
	if err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(headerRec))
	seen := make(map[string]bool, len(headerRec))
	for _, h := range headerRec {
		name := NormalizeHeader(h)
		if name == "" || seen[name] {
			headers = append(headers, "")
			continue
		}
		seen[name] = true
		headers = append(headers, name)
	}

	return &Reader{cr: cr, headers: headers}, nil
}

// Next returns the next data row, or io.EOF when the input is exhausted.
// Whitespace-only lines are skipped wherever they appear, matching how truly
// empty lines and blank spreadsheet rows are treated. Structurally malformed
// rows surface csv parse errors, which abort the whole batch at the caller.
func (r *Reader) Next() (Row, error) {
	var rec []string
	for {
		var err error
		rec, err = r.cr.Read()
		if err != nil {
			// A whitespace-only line parses as a single empty field and
			// trips the field-count check; it is blank, not malformed.
			if errors.Is(err, csv.ErrFieldCount) && isBlankRecord(rec) {
				continue
			}
			return Row{}, err
		}
		if !isBlankRecord(rec) {
			break
		}
	}

	row := Row{
		Keys:   make([]string, 0, len(r.headers)),
		Values: make(map[string]string, len(r.headers)),
	}

	for i, name := range r.headers {
		if name == "" || i >= len(rec) {
			continue
		}
		row.Keys = append(row.Keys, name)
		row.Values[name] = strings.TrimSpace(rec[i])
	}

	return row, nil
}

// Headers returns the normalized column names, in input order. Unnamed or
// duplicate columns appear as empty strings.
func (r *Reader) Headers() []string {
	return r.headers
}

// NormalizeHeader canonicalizes a header token: trimmed, lowercased, runs of
// whitespace and punctuation collapsed into single spaces.
func NormalizeHeader(h string) string {
	lower := strings.ToLower(strings.TrimSpace(h))
	return strings.TrimSpace(headerNormalizer.ReplaceAllString(lower, " "))
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return len(rec) > 0
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "prn") {
		return false
	}
	return strings.Contains(lower, "name") || strings.Contains(lower, "student")
}
