package analysis

import (
	"encoding/json"
	"testing"
)

func TestStatsMarshalPreservesOrder(t *testing.T) {
	s := Stats{
		{Name: "zulu", Value: "1"},
		{Name: "alpha", Value: "2"},
		{Name: "mike", Value: "3"},
	}
	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zulu":"1","alpha":"2","mike":"3"}`
	if string(got) != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}

func TestStatsRoundTrip(t *testing.T) {
	orig := Stats{
		{Name: "rows", Value: "42"},
		{Name: "note", Value: "two words"},
	}
	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Stats
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != len(orig) {
		t.Fatalf("lost stats: %d != %d", len(back), len(orig))
	}
	for i := range orig {
		if back[i] != orig[i] {
			t.Fatalf("stat %d = %+v, want %+v", i, back[i], orig[i])
		}
	}
}

func TestStatsUnmarshalCoercesScalars(t *testing.T) {
	var s Stats
	if err := json.Unmarshal([]byte(`{"count":3,"ratio":0.5,"flag":true,"nothing":null}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cases := map[string]string{"count": "3", "ratio": "0.5", "flag": "true", "nothing": ""}
	for name, want := range cases {
		if got, ok := s.Get(name); !ok || got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestStatsUnmarshalRejectsNonObject(t *testing.T) {
	var s Stats
	if err := json.Unmarshal([]byte(`["not","an","object"]`), &s); err == nil {
		t.Fatal("expected error for array input")
	}
}

func TestResultJSONShape(t *testing.T) {
	res := &Result{
		Title: "Demographic Breakdown",
		Stats: Stats{{Name: "column", Value: "region"}},
		Chart: &ChartSpec{Kind: ChartPie, Points: []Point{{Name: "north", Value: 2}}},
	}
	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Result
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Title != res.Title {
		t.Fatalf("title = %q", back.Title)
	}
	if back.Chart == nil || back.Chart.Kind != ChartPie || len(back.Chart.Points) != 1 {
		t.Fatalf("chart = %+v", back.Chart)
	}
	if v, _ := back.Stats.Get("column"); v != "region" {
		t.Fatalf("column stat = %q", v)
	}
}

func TestTrimFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.5, "0.5"},
		{33.33333, "33.3333"},
		{0, "0"},
		{-2.5, "-2.5"},
	}
	for _, c := range cases {
		if got := trimFloat(c.in); got != c.want {
			t.Fatalf("trimFloat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
