package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Stat is one display row of an analysis result.
type Stat struct {
	Name  string
	Value string
}

// Stats preserves insertion order for display. It marshals to a JSON object
// whose keys appear in that order, and unmarshals back without losing it.
type Stats []Stat

// Result is the structured output of one analysis run. Results are treated as
// immutable once produced; the dispatcher, cache and renderer only read them.
type Result struct {
	Title string     `json:"title"`
	Stats Stats      `json:"stats"`
	Chart *ChartSpec `json:"chart,omitempty"`
}

// ChartKind selects the visual a ChartSpec maps to.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartPie     ChartKind = "pie"
	ChartScatter ChartKind = "scatter"
)

// Point carries one datum. Name/Value are used by bar and pie charts, X/Y by
// scatter charts.
type Point struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

type ChartSpec struct {
	Kind   ChartKind `json:"kind"`
	Points []Point   `json:"data"`
}

// Get returns the value of the named stat.
func (s Stats) Get(name string) (string, bool) {
	for _, st := range s {
		if st.Name == name {
			return st.Value, true
		}
	}
	return "", false
}

func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(st.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(st.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Stats) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("stats: expected object, got %v", tok)
	}
	out := Stats{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("stats: non-string key %v", keyTok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, Stat{Name: key, Value: statValueString(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func statValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return trimFloat(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
