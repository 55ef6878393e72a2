package analysis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tabnote/internal/dataset"
)

// Local computes results in-process. It is the default backend when no API
// key is configured and the fallback target behind the Gemini provider; every
// known kind has a real handler here.
type Local struct{}

func NewLocal() *Local { return &Local{} }

func (l *Local) Name() string { return "local" }

func (l *Local) Analyze(ctx context.Context, ds *dataset.Dataset, kind Kind) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", ErrProvider)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch kind {
	case KindChiSquare:
		return l.chiSquare(ds), nil
	case KindCorrelation:
		return l.correlation(ds), nil
	case KindMissingData:
		return l.missingData(ds), nil
	case KindDemographic:
		return l.demographic(ds), nil
	default:
		return l.descriptive(ds), nil
	}
}

func (l *Local) descriptive(ds *dataset.Dataset) *Result {
	headers := ds.Headers()
	stats := Stats{
		{Name: "rows", Value: strconv.Itoa(ds.RowCount())},
		{Name: "columns", Value: strconv.Itoa(ds.ColumnCount())},
	}
	var points []Point
	for _, i := range numericColumns(ds) {
		vals, _ := ds.NumericColumn(i)
		lo, hi := minMax(vals)
		h := headers[i]
		stats = append(stats,
			Stat{Name: h + " mean", Value: trimFloat(mean(vals))},
			Stat{Name: h + " median", Value: trimFloat(median(vals))},
			Stat{Name: h + " std dev", Value: trimFloat(stddev(vals))},
			Stat{Name: h + " min", Value: trimFloat(lo)},
			Stat{Name: h + " max", Value: trimFloat(hi)},
		)
		points = append(points, Point{Name: h, Value: mean(vals)})
	}
	res := &Result{Title: "Descriptive Summary", Stats: stats}
	if len(points) > 0 {
		res.Chart = &ChartSpec{Kind: ChartBar, Points: points}
	}
	return res
}

func (l *Local) chiSquare(ds *dataset.Dataset) *Result {
	a, b, ok := pickPair(ds)
	if !ok {
		return &Result{
			Title: "Chi-Square Test",
			Stats: Stats{{Name: "note", Value: "needs at least two columns"}},
		}
	}
	headers := ds.Headers()
	rowsOf := map[string]map[string]int{}
	colsSeen := map[string]bool{}
	n := 0
	for r := 0; r < ds.RowCount(); r++ {
		row := ds.Row(r)
		av := strings.TrimSpace(row[a])
		bv := strings.TrimSpace(row[b])
		if av == "" || bv == "" {
			continue
		}
		if rowsOf[av] == nil {
			rowsOf[av] = map[string]int{}
		}
		rowsOf[av][bv]++
		colsSeen[bv] = true
		n++
	}
	aCats := sortedKeys(rowsOf)
	bCats := make([]string, 0, len(colsSeen))
	for k := range colsSeen {
		bCats = append(bCats, k)
	}
	sort.Strings(bCats)

	rowTotals := map[string]int{}
	colTotals := map[string]int{}
	for _, av := range aCats {
		for _, bv := range bCats {
			c := rowsOf[av][bv]
			rowTotals[av] += c
			colTotals[bv] += c
		}
	}
	chi2 := 0.0
	for _, av := range aCats {
		for _, bv := range bCats {
			expected := float64(rowTotals[av]) * float64(colTotals[bv]) / float64(max(n, 1))
			if expected == 0 {
				continue
			}
			d := float64(rowsOf[av][bv]) - expected
			chi2 += d * d / expected
		}
	}
	dof := (len(aCats) - 1) * (len(bCats) - 1)
	p := chiSquarePValue(chi2, dof)

	points := make([]Point, 0, len(aCats))
	for _, av := range aCats {
		points = append(points, Point{Name: av, Value: float64(rowTotals[av])})
	}
	res := &Result{
		Title: "Chi-Square Test",
		Stats: Stats{
			{Name: "columns compared", Value: headers[a] + " x " + headers[b]},
			{Name: "observations", Value: strconv.Itoa(n)},
			{Name: "chiSquare", Value: trimFloat(chi2)},
			{Name: "degreesOfFreedom", Value: strconv.Itoa(dof)},
			{Name: "pValue", Value: trimFloat(p)},
		},
	}
	if len(points) > 0 {
		res.Chart = &ChartSpec{Kind: ChartPie, Points: points}
	}
	return res
}

func (l *Local) correlation(ds *dataset.Dataset) *Result {
	headers := ds.Headers()
	numeric := numericColumns(ds)
	if len(numeric) < 2 {
		return &Result{
			Title: "Correlation Matrix",
			Stats: Stats{{Name: "note", Value: "needs at least two numeric columns"}},
		}
	}
	stats := Stats{}
	var scatter []Point
	for ai := 0; ai < len(numeric); ai++ {
		for bi := ai + 1; bi < len(numeric); bi++ {
			xs, ys := pairedValues(ds, numeric[ai], numeric[bi])
			r := pearson(xs, ys)
			name := fmt.Sprintf("%s vs %s", headers[numeric[ai]], headers[numeric[bi]])
			stats = append(stats, Stat{Name: name, Value: trimFloat(r)})
			if scatter == nil {
				scatter = make([]Point, 0, len(xs))
				for i := range xs {
					scatter = append(scatter, Point{X: xs[i], Y: ys[i]})
				}
			}
		}
	}
	res := &Result{Title: "Correlation Matrix", Stats: stats}
	if len(scatter) > 0 {
		res.Chart = &ChartSpec{Kind: ChartScatter, Points: scatter}
	}
	return res
}

func (l *Local) missingData(ds *dataset.Dataset) *Result {
	headers := ds.Headers()
	rows := ds.RowCount()
	stats := Stats{{Name: "rows", Value: strconv.Itoa(rows)}}
	points := make([]Point, 0, len(headers))
	for i, h := range headers {
		blanks := 0
		for _, v := range ds.Column(i) {
			if strings.TrimSpace(v) == "" {
				blanks++
			}
		}
		pct := 0.0
		if rows > 0 {
			pct = 100 * float64(blanks) / float64(rows)
		}
		stats = append(stats, Stat{Name: h, Value: fmt.Sprintf("%d blank (%s%%)", blanks, trimFloat(pct))})
		points = append(points, Point{Name: h, Value: float64(blanks)})
	}
	res := &Result{Title: "Missing Data Audit", Stats: stats}
	if len(points) > 0 {
		res.Chart = &ChartSpec{Kind: ChartBar, Points: points}
	}
	return res
}

func (l *Local) demographic(ds *dataset.Dataset) *Result {
	headers := ds.Headers()
	col := firstCategorical(ds)
	if col < 0 {
		return &Result{
			Title: "Demographic Breakdown",
			Stats: Stats{{Name: "note", Value: "no categorical column found"}},
		}
	}
	counts := map[string]int{}
	for _, v := range ds.Column(col) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
	}
	names := sortedByCountDesc(counts)
	stats := Stats{
		{Name: "column", Value: headers[col]},
		{Name: "distinct values", Value: strconv.Itoa(len(names))},
	}
	points := make([]Point, 0, len(names))
	for _, name := range names {
		stats = append(stats, Stat{Name: name, Value: strconv.Itoa(counts[name])})
		points = append(points, Point{Name: name, Value: float64(counts[name])})
	}
	res := &Result{Title: "Demographic Breakdown", Stats: stats}
	if len(points) > 0 {
		res.Chart = &ChartSpec{Kind: ChartPie, Points: points}
	}
	return res
}

func numericColumns(ds *dataset.Dataset) []int {
	var out []int
	for i := 0; i < ds.ColumnCount(); i++ {
		if _, ok := ds.NumericColumn(i); ok {
			out = append(out, i)
		}
	}
	return out
}

func firstCategorical(ds *dataset.Dataset) int {
	numeric := map[int]bool{}
	for _, i := range numericColumns(ds) {
		numeric[i] = true
	}
	for i := 0; i < ds.ColumnCount(); i++ {
		if !numeric[i] && hasValues(ds, i) {
			return i
		}
	}
	// Every populated column is numeric; treat the first as categories anyway.
	for i := 0; i < ds.ColumnCount(); i++ {
		if hasValues(ds, i) {
			return i
		}
	}
	return -1
}

// pickPair chooses the two columns a chi-square test compares, preferring
// categorical columns and falling back to leftmost populated ones.
func pickPair(ds *dataset.Dataset) (a, b int, ok bool) {
	numeric := map[int]bool{}
	for _, i := range numericColumns(ds) {
		numeric[i] = true
	}
	var chosen []int
	for i := 0; i < ds.ColumnCount() && len(chosen) < 2; i++ {
		if !numeric[i] && hasValues(ds, i) {
			chosen = append(chosen, i)
		}
	}
	for i := 0; i < ds.ColumnCount() && len(chosen) < 2; i++ {
		if !contains(chosen, i) && hasValues(ds, i) {
			chosen = append(chosen, i)
		}
	}
	if len(chosen) < 2 {
		return 0, 0, false
	}
	sort.Ints(chosen)
	return chosen[0], chosen[1], true
}

func pairedValues(ds *dataset.Dataset, a, b int) (xs, ys []float64) {
	for r := 0; r < ds.RowCount(); r++ {
		row := ds.Row(r)
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[a]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[b]), 64)
		if errX != nil || errY != nil {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func hasValues(ds *dataset.Dataset, col int) bool {
	for _, v := range ds.Column(col) {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedByCountDesc(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
