package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"tabnote/internal/dataset"
)

// Gemini asks the Gemini API to compute the analysis, constrained to JSON
// output matching the Result shape. Failures surface as ErrProvider; the
// dispatcher turns them into a displayable failure result, so a flaky backend
// can never leave a cell unresolved.
type Gemini struct {
	cli   *genai.Client
	model string
}

// geminiSampleRows caps how many data rows are sent with the prompt.
const geminiSampleRows = 50

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

func (g *Gemini) Analyze(ctx context.Context, ds *dataset.Dataset, kind Kind) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", ErrProvider)
	}
	prompt := buildPrompt(ds, kind)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrProvider)
	}
	var res Result
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &res); err != nil {
		return nil, fmt.Errorf("%w: bad response json: %v", ErrProvider, err)
	}
	if strings.TrimSpace(res.Title) == "" {
		res.Title = string(kind) + " analysis"
	}
	if res.Chart != nil && len(res.Chart.Points) == 0 {
		res.Chart = nil
	}
	return &res, nil
}

func buildPrompt(ds *dataset.Dataset, kind Kind) string {
	var b strings.Builder
	b.WriteString("You are a statistics engine. Run a ")
	b.WriteString(string(kind))
	b.WriteString(" analysis over the dataset below and answer with a single JSON object:\n")
	b.WriteString(`{"title": string, "stats": {<metric>: <value>, ...}, "chart": {"kind": "bar"|"pie"|"scatter", "data": [{"name": string, "value": number} | {"x": number, "y": number}]}}` + "\n")
	b.WriteString("Omit \"chart\" when no chart applies. Keep stats keys short and human readable.\n\n")
	b.WriteString("headers: ")
	b.WriteString(strings.Join(ds.Headers(), ", "))
	b.WriteString("\nrows:\n")
	n := ds.RowCount()
	if n > geminiSampleRows {
		n = geminiSampleRows
	}
	for i := 0; i < n; i++ {
		b.WriteString(strings.Join(ds.Row(i), ", "))
		b.WriteByte('\n')
	}
	if ds.RowCount() > n {
		fmt.Fprintf(&b, "(%d more rows omitted; total %d)\n", ds.RowCount()-n, ds.RowCount())
	}
	return b.String()
}
