package bench

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrSeriesLength = errors.New("series length does not match thread counts")

type PlotConfig struct {
	Title  string
	Width  float64 // inches
	Height float64 // inches
}

// DefaultPlotConfig matches the layout of the speedup charts we publish.
var DefaultPlotConfig = PlotConfig{
	Title:  "Number of Threads vs. Speedup",
	Width:  12,
	Height: 8,
}

type seriesStyle struct {
	color color.Color
	shape draw.GlyphDrawer
}

var categoryStyles = map[Category]seriesStyle{
	Small:  {color.RGBA{B: 255, A: 255}, draw.BoxGlyph{}},
	Medium: {color.RGBA{R: 255, A: 255}, draw.CrossGlyph{}},
	Large:  {color.RGBA{R: 255, G: 165, A: 255}, draw.PyramidGlyph{}},
}

// speedupPlot plots X = thread count against Y = speedup.
type speedupPlot struct {
	threads []int
	speedup []float64
}

func (p speedupPlot) Len() int {
	return len(p.speedup)
}

func (p speedupPlot) XY(i int) (float64, float64) {
	return float64(p.threads[i]), p.speedup[i]
}

// NewSpeedupPlot creates a line chart with one line per series.
func NewSpeedupPlot(series []Series, threads []int, cfg PlotConfig) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = cfg.Title
	plt.X.Label.Text = "Number of Threads (N)"
	plt.Y.Label.Text = "Speedup"
	plt.X.Tick.Marker = threadTicks(threads)
	plt.Legend.Top = true
	plt.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	plt.Add(grid)

	for _, s := range series {
		if len(s.Speedup) != len(threads) {
			return nil, fmt.Errorf("%s: %w (%d points, %d thread counts)", s.Category, ErrSeriesLength, len(s.Speedup), len(threads))
		}
		l, pts, err := plotter.NewLinePoints(speedupPlot{threads: threads, speedup: s.Speedup})
		if err != nil {
			return nil, fmt.Errorf("%s: %v", s.Category, err)
		}
		if style, ok := categoryStyles[s.Category]; ok {
			l.Color = style.color
			pts.Color = style.color
			pts.Shape = style.shape
		}
		pts.Radius = vg.Points(4)
		plt.Add(l, pts)
		plt.Legend.Add(string(s.Category), l, pts)
	}
	return plt, nil
}

// SavePlot writes the plot to file. The image format is chosen by
// the file extension.
func SavePlot(plt *plot.Plot, cfg PlotConfig, file string) error {
	return plt.Save(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch, file)
}

// threadTicks labels exactly the measured thread counts.
func threadTicks(threads []int) plot.ConstantTicks {
	t := make(plot.ConstantTicks, len(threads))
	for i, n := range threads {
		t[i] = plot.Tick{Value: float64(n), Label: strconv.Itoa(n)}
	}
	return t
}
