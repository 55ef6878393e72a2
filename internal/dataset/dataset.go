package dataset

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Dataset is an immutable rectangular table. Every row has exactly
// len(headers) fields; accessors return copies so callers cannot mutate the
// underlying data. Replacing a session's dataset never touches the outputs
// already attached to cells.
type Dataset struct {
	headers     []string
	rows        [][]string
	fingerprint string
}

// New validates and copies headers/rows into a Dataset. Rows shorter than the
// header are padded with blanks; longer rows are rejected.
func New(headers []string, rows [][]string) (*Dataset, error) {
	if len(headers) == 0 {
		return nil, &IngestError{Reason: "no header columns"}
	}
	hs := make([]string, len(headers))
	for i, h := range headers {
		hs[i] = strings.TrimSpace(h)
	}
	rs := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(hs) {
			return nil, &IngestError{Reason: fmt.Sprintf("row %d has %d fields, header has %d", i+1, len(row), len(hs))}
		}
		r := make([]string, len(hs))
		copy(r, row)
		rs = append(rs, r)
	}
	d := &Dataset{headers: hs, rows: rs}
	d.fingerprint = d.computeFingerprint()
	return d, nil
}

func (d *Dataset) Headers() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.headers))
	copy(out, d.headers)
	return out
}

func (d *Dataset) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.headers)
}

func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

func (d *Dataset) Row(i int) []string {
	if d == nil || i < 0 || i >= len(d.rows) {
		return nil
	}
	out := make([]string, len(d.rows[i]))
	copy(out, d.rows[i])
	return out
}

// Column returns the values of column i across all rows.
func (d *Dataset) Column(i int) []string {
	if d == nil || i < 0 || i >= len(d.headers) {
		return nil
	}
	out := make([]string, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}
	return out
}

// ColumnIndex returns the index of the first header matching name, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	name = strings.TrimSpace(name)
	for i, h := range d.headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// NumericColumn parses column i as floats. Blank cells are skipped; ok is
// false when fewer than half of the non-blank cells parse.
func (d *Dataset) NumericColumn(i int) (values []float64, ok bool) {
	col := d.Column(i)
	if col == nil {
		return nil, false
	}
	nonBlank := 0
	for _, raw := range col {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		nonBlank++
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			values = append(values, v)
		}
	}
	if nonBlank == 0 || len(values)*2 < nonBlank {
		return nil, false
	}
	return values, true
}

// Fingerprint is a stable content hash used as an analysis cache key.
func (d *Dataset) Fingerprint() string {
	if d == nil {
		return ""
	}
	return d.fingerprint
}

func (d *Dataset) computeFingerprint() string {
	h := fnv.New64a()
	for _, hd := range d.headers {
		_, _ = h.Write([]byte(hd))
		_, _ = h.Write([]byte{0x1f})
	}
	_, _ = h.Write([]byte{0x1e})
	for _, row := range d.rows {
		for _, cell := range row {
			_, _ = h.Write([]byte(cell))
			_, _ = h.Write([]byte{0x1f})
		}
		_, _ = h.Write([]byte{0x1e})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
