// Package chart maps chart specifications to SVG documents. Rendering is a
// pure function of the spec: no state, no errors. A nil spec or an unknown
// chart kind renders to the empty string.
package chart

import (
	"fmt"
	"math"
	"strings"

	"tabnote/internal/analysis"
)

const (
	width  = 480.0
	height = 300.0
	margin = 36.0
)

// palette is reused cyclically: slice i gets palette[i % len(palette)].
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// Render draws spec as a standalone SVG document.
func Render(spec *analysis.ChartSpec) string {
	if spec == nil || len(spec.Points) == 0 {
		return ""
	}
	switch spec.Kind {
	case analysis.ChartBar:
		return renderBar(spec.Points)
	case analysis.ChartPie:
		return renderPie(spec.Points)
	case analysis.ChartScatter:
		return renderScatter(spec.Points)
	}
	return ""
}

func renderBar(points []analysis.Point) string {
	maxV := 0.0
	for _, p := range points {
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	if maxV == 0 {
		maxV = 1
	}
	plotW := width - 2*margin
	plotH := height - 2*margin
	slot := plotW / float64(len(points))
	barW := slot * 0.7

	var b strings.Builder
	openSVG(&b)
	axes(&b)
	for i, p := range points {
		h := plotH * (p.Value / maxV)
		if h < 0 {
			h = 0
		}
		x := margin + float64(i)*slot + (slot-barW)/2
		y := height - margin - h
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, y, barW, h, palette[i%len(palette)])
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%s</text>`+"\n",
			x+barW/2, height-margin+14, escape(p.Name))
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func renderPie(points []analysis.Point) string {
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	if total == 0 {
		return ""
	}
	cx, cy := width/2, height/2
	r := math.Min(width, height)/2 - margin

	var b strings.Builder
	openSVG(&b)
	angle := -math.Pi / 2
	for i, p := range points {
		if p.Value <= 0 {
			continue
		}
		frac := p.Value / total
		next := angle + 2*math.Pi*frac
		fill := palette[i%len(palette)]
		if frac >= 1 {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, r, fill)
		} else {
			x1, y1 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
			x2, y2 := cx+r*math.Cos(next), cy+r*math.Sin(next)
			large := 0
			if frac > 0.5 {
				large = 1
			}
			fmt.Fprintf(&b, `<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d 1 %.1f,%.1f Z" fill="%s"/>`+"\n",
				cx, cy, x1, y1, r, r, large, x2, y2, fill)
		}
		mid := (angle + next) / 2
		lx := cx + (r+14)*math.Cos(mid)
		ly := cy + (r+14)*math.Sin(mid)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%s</text>`+"\n",
			lx, ly, escape(p.Name))
		angle = next
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func renderScatter(points []analysis.Point) string {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	plotW := width - 2*margin
	plotH := height - 2*margin

	var b strings.Builder
	openSVG(&b)
	axes(&b)
	for _, p := range points {
		x := margin + plotW*(p.X-minX)/spanX
		y := height - margin - plotH*(p.Y-minY)/spanY
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, palette[0])
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func openSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
}

func axes(b *strings.Builder) {
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999"/>`+"\n",
		margin, height-margin, width-margin, height-margin)
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999"/>`+"\n",
		margin, margin, margin, height-margin)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
