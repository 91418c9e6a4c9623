// Package render draws layouts as SVG.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

const fontFamily = "Helvetica, Arial, sans-serif"

var categoryFill = map[domain.Category]string{
	domain.CategoryRoom:       "#e8eef7",
	domain.CategoryBathroom:   "#cfe8ef",
	domain.CategoryKitchen:    "#f7e3c6",
	domain.CategoryStaircase:  "#ddd6ea",
	domain.CategoryDining:     "#f4ecd2",
	domain.CategoryDecorative: "#dcefd8",
	domain.CategoryEntrance:   "#eeeeee",
}

const (
	parkingFill  = "#d9d9d9"
	corridorFill = "#fafafa"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
	areas  bool
	title  string
}

// WithScale sets pixels per layout unit.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }
func WithoutLabels() SVGOption      { return func(r *svgRenderer) { r.labels = false } }
func WithAreas() SVGOption          { return func(r *svgRenderer) { r.areas = true } }
func WithTitle(t string) SVGOption  { return func(r *svgRenderer) { r.title = t } }

func RenderSVG(l domain.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 10, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 10
	}

	w, h := l.Boundaries.Width*r.scale, l.Boundaries.Height*r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white" stroke="#333" stroke-width="2"/>`+"\n", w, h)

	for _, room := range l.Rooms {
		r.renderRoom(&buf, room)
	}
	if r.labels {
		for _, room := range l.Rooms {
			r.renderLabel(&buf, room)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderRoom(buf *bytes.Buffer, room domain.Room) {
	n := room.Rect.Normalize()
	fmt.Fprintf(buf, `  <rect class="room" data-name="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#555" stroke-width="1"/>`+"\n",
		escapeXML(room.Name), n.X1*r.scale, n.Y1*r.scale, n.Width()*r.scale, n.Height()*r.scale, fill(room.Name))
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, room domain.Room) {
	n := room.Rect.Normalize()
	cx := (n.X1 + n.X2) / 2 * r.scale
	cy := (n.Y1 + n.Y2) / 2 * r.scale
	size := fontSize(n.Width()*r.scale, n.Height()*r.scale, room.Name)
	if size < 4 {
		return
	}

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="#222">%s</text>`+"\n",
		cx, cy, fontFamily, size, escapeXML(room.Name))
	if r.areas {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="hanging" font-family="%s" font-size="%.1f" fill="#666">%.2f</text>`+"\n",
			cx, cy+size*0.8, fontFamily, size*0.8, n.Area())
	}
}

func fill(name string) string {
	switch name {
	case domain.RoomParking:
		return parkingFill
	case domain.RoomCorridor:
		return corridorFill
	}
	return categoryFill[domain.Classify(name)]
}

// fontSize fits the label inside the room, assuming glyphs about 0.6em wide.
func fontSize(w, h float64, label string) float64 {
	n := float64(len(label))
	if n == 0 {
		return 0
	}
	return min(w*0.9/(n*0.6), h*0.4, 14)
}

func escapeXML(s string) string {
	var buf strings.Builder
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
