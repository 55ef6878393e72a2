package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// IngestError reports malformed or empty tabular input. It is surfaced to the
// caller rather than swallowed; the HTTP layer maps it to a 400.
type IngestError struct {
	Reason string
	Err    error
}

func (e *IngestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingest: %s: %v", e.Reason, e.Err)
	}
	return "ingest: " + e.Reason
}

func (e *IngestError) Unwrap() error { return e.Err }

// IngestCSV parses CSV text into a Dataset. The first record is the header
// row (fields trimmed); subsequent records become data rows unless every
// field is blank. Records may have ragged lengths: short rows are padded,
// rows longer than the header fail.
func IngestCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &IngestError{Reason: "malformed csv", Err: err}
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &IngestError{Reason: "no rows"}
	}
	headers := records[0]
	if allBlank(headers) {
		return nil, &IngestError{Reason: "blank header row"}
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if allBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return New(headers, rows)
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Ingest picks a parser from the file name extension. Anything that is not
// .xlsx is treated as CSV text.
func Ingest(name string, r io.Reader) (*Dataset, error) {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".xlsx") {
		return IngestXLSX(r)
	}
	return IngestCSV(r)
}

var errNoSheets = errors.New("workbook has no sheets")
