package render

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

func sample() domain.Layout {
	return domain.Layout{
		Boundaries: domain.Boundaries{Width: 20, Height: 10},
		Rooms: []domain.Room{
			{Name: "Parking", Rect: domain.Rect{X1: 10, X2: 20, Y2: 6}},
			{Name: "Kitchen", Rect: domain.Rect{X2: 10, Y2: 5}},
			{Name: "Living/Dining", Rect: domain.Rect{Y1: 5, X2: 10, Y2: 10}},
		},
	}
}

func TestRenderSVG_WellFormed(t *testing.T) {
	out := RenderSVG(sample(), WithTitle("Plan <A&B>"))

	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		_, err := dec.Token()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<svg "))
	assert.Contains(t, s, `viewBox="0 0 200.0 100.0"`)
	assert.Contains(t, s, "Plan &lt;A&amp;B&gt;")
	assert.Equal(t, 3, strings.Count(s, `class="room"`))
	assert.Contains(t, s, `data-name="Parking" x="100.0" y="0.0" width="100.0" height="60.0" fill="#d9d9d9"`)
	assert.Contains(t, s, ">Kitchen</text>")
}

func TestRenderSVG_Options(t *testing.T) {
	s := string(RenderSVG(sample(), WithScale(2), WithoutLabels()))
	assert.Contains(t, s, `width="40" height="20"`)
	assert.NotContains(t, s, "<text")

	s = string(RenderSVG(sample(), WithAreas()))
	assert.Contains(t, s, ">50.00</text>")
}

func TestFontSize(t *testing.T) {
	assert.Equal(t, 14.0, fontSize(1000, 1000, "Kitchen"))
	assert.Zero(t, fontSize(100, 100, ""))
	assert.Less(t, fontSize(10, 100, "Master Bedroom 1"), 4.0)
}
