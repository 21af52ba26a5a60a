package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chemviz/internal/dao"
)

const (
	DatasetLabel = "Equipment Type Distribution"

	defaultWidth  = 640
	defaultHeight = 480
)

// Palette is shared by the pie and bar renderings. Colors repeat when there
// are more types than entries.
var Palette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0"}

var ErrNoData = errors.New("no chart data")

// Data is the derived input of both charts: parallel labels and values.
type Data struct {
	Label  string
	Labels []string
	Values []int
	Colors []string
}

// FromDistribution derives chart data from a type distribution, keeping the
// distribution's order. A nil distribution yields empty data.
func FromDistribution(dist *dao.TypeDistribution) Data {
	d := Data{
		Label:  DatasetLabel,
		Labels: []string{},
		Values: []int{},
		Colors: []string{},
	}
	if dist == nil {
		return d
	}
	for pair := dist.Oldest(); pair != nil; pair = pair.Next() {
		d.Labels = append(d.Labels, pair.Key)
		d.Values = append(d.Values, pair.Value)
		d.Colors = append(d.Colors, Palette[(len(d.Colors))%len(Palette)])
	}
	return d
}

func (d Data) Total() int {
	total := 0
	for _, v := range d.Values {
		total += v
	}
	return total
}

func (d Data) Max() int {
	m := 0
	for _, v := range d.Values {
		if v > m {
			m = v
		}
	}
	return m
}

func (d Data) Empty() bool {
	return len(d.Values) == 0 || d.Total() <= 0
}

func (d Data) values() []gochart.Value {
	values := make([]gochart.Value, 0, len(d.Values))
	for i, v := range d.Values {
		color := colorFromHex(d.Colors[i])
		values = append(values, gochart.Value{
			Label: d.Labels[i],
			Value: float64(v),
			Style: gochart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}
	return values
}

func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// RenderPie writes the pie chart as PNG.
func RenderPie(w io.Writer, d Data) error {
	if d.Empty() {
		return ErrNoData
	}
	pie := gochart.PieChart{
		Title:  DatasetLabel + " (Pie)",
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Values: d.values(),
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// RenderBar writes the bar chart as PNG. The y axis always starts at zero.
func RenderBar(w io.Writer, d Data) error {
	if d.Empty() {
		return ErrNoData
	}
	ticks := make([]gochart.Tick, 0, 6)
	step := (d.Max() + 4) / 5
	if step < 1 {
		step = 1
	}
	for v := 0; v <= d.Max()+step-1; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: fmt.Sprintf("%d", v)})
	}
	top := ticks[len(ticks)-1].Value

	bar := gochart.BarChart{
		Title:  DatasetLabel + " (Bar)",
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth: barWidth(len(d.Values)),
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
			Ticks: ticks,
		},
		Bars: d.values(),
	}
	if err := bar.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func barWidth(n int) int {
	if n <= 0 {
		return 60
	}
	w := (defaultWidth - 120) / (n * 2)
	switch {
	case w > 80:
		return 80
	case w < 8:
		return 8
	}
	return w
}
