package dataset

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// IngestXLSX reads the first sheet of a workbook and applies the same
// header/blank-row rules as CSV ingestion.
func IngestXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &IngestError{Reason: "malformed workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &IngestError{Reason: "empty workbook", Err: errNoSheets}
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &IngestError{Reason: "read sheet " + sheets[0], Err: err}
	}
	return fromRecords(records)
}
