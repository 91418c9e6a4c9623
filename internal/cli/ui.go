package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleName   = lipgloss.NewStyle().Foreground(colorCyan)
	styleCell   = lipgloss.NewStyle().PaddingRight(1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleName
			default:
				return styleCell
			}
		})
}

func roomTable(l domain.Layout) string {
	t := newTable("Room", "X1", "Y1", "X2", "Y2", "Area")
	var total float64
	for _, r := range l.Rooms {
		t.Row(r.Name, num(r.X1), num(r.Y1), num(r.X2), num(r.Y2), num(r.Area))
		total += r.Area
	}
	t.Row(fmt.Sprintf("%d rooms", len(l.Rooms)), "", "", num(l.Boundaries.Width), num(l.Boundaries.Height), num(total))
	return t.String()
}

func estimateTable(e domain.ParameterEstimate) string {
	return newTable("Parameter", "Value").
		Row("width", num(e.Width)).
		Row("height", num(e.Height)).
		Row("master_rooms", strconv.Itoa(e.MasterRooms)).
		Row("unattached_bathrooms", strconv.Itoa(e.UnattachedBathrooms)).
		Row("total_bathrooms", strconv.Itoa(e.TotalBathrooms)).
		Row("cars", strconv.Itoa(e.Cars)).
		Row("bikes", strconv.Itoa(e.Bikes)).
		String()
}

func num(v float64) string {
	return strconv.FormatFloat(domain.Round2(v), 'f', -1, 64)
}
