package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/abhisek/fmea/internal/fmea"
)

// ErrEmptyHeatmap is returned when there is nothing to draw.
var ErrEmptyHeatmap = errors.New("heatmap has no cells")

// HeatmapConfig sizes and labels the rendered heatmap.
type HeatmapConfig struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultHeatmapConfig returns a 6x4 inch chart.
func DefaultHeatmapConfig() HeatmapConfig {
	return HeatmapConfig{
		Title:  "Heatmap of RPN by Severity and Occurrence",
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// rpnGrid adapts a Heatmap to plotter.GridXYZ. Columns are observed
// occurrences and rows observed severities, both ascending; unobserved
// pairs are NaN and left blank.
type rpnGrid struct {
	hm          fmea.Heatmap
	severities  []int
	occurrences []int
	lo, hi      float64
}

func newRPNGrid(h fmea.Heatmap) *rpnGrid {
	lo, hi, _ := h.Range()
	return &rpnGrid{
		hm:          h,
		severities:  h.Severities(),
		occurrences: h.Occurrences(),
		lo:          lo,
		hi:          hi,
	}
}

func (g *rpnGrid) Dims() (c, r int) { return len(g.occurrences), len(g.severities) }
func (g *rpnGrid) X(c int) float64  { return float64(c) }
func (g *rpnGrid) Y(r int) float64  { return float64(r) }

func (g *rpnGrid) Z(c, r int) float64 {
	if v, ok := g.hm.Mean(g.severities[r], g.occurrences[c]); ok {
		return v
	}
	return math.NaN()
}

func (g *rpnGrid) Min() float64 { return g.lo }
func (g *rpnGrid) Max() float64 { return g.hi }

// RenderHeatmap draws h as a PNG: occurrence on the x axis, severity on the
// y axis, each observed cell colored by mean RPN and annotated with its
// rounded value.
func RenderHeatmap(w io.Writer, h fmea.Heatmap, cfg HeatmapConfig) error {
	if h.Len() == 0 {
		return ErrEmptyHeatmap
	}
	grid := newRPNGrid(h)

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Occurrence"
	p.Y.Label.Text = "Severity"

	hm := plotter.NewHeatMap(grid, heatPalette{})
	hm.Min, hm.Max = grid.lo, grid.hi
	if grid.hi == grid.lo {
		// A single distinct value still needs a non-empty range.
		hm.Min, hm.Max = grid.lo-0.5, grid.hi+0.5
	}
	p.Add(hm)

	labels, err := cellLabels(grid)
	if err != nil {
		return fmt.Errorf("annotate heatmap: %w", err)
	}
	p.Add(labels)

	p.NominalX(axisNames(grid.occurrences)...)
	p.NominalY(axisNames(grid.severities)...)
	p.X.Min, p.X.Max = -0.5, float64(len(grid.occurrences))-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(len(grid.severities))-0.5

	c := vgimg.New(cfg.Width, cfg.Height)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode heatmap PNG: %w", err)
	}
	return nil
}

func cellLabels(g *rpnGrid) (*plotter.Labels, error) {
	cells := g.hm.Cells()
	xys := make(plotter.XYs, 0, len(cells))
	names := make([]string, 0, len(cells))
	inks := make([]color.Color, 0, len(cells))

	col := indexOf(g.occurrences)
	row := indexOf(g.severities)
	for _, cell := range cells {
		xys = append(xys, plotter.XY{X: float64(col[cell.Occurrence]), Y: float64(row[cell.Severity])})
		names = append(names, strconv.Itoa(cell.Rounded()))
		inks = append(inks, InkFor(HeatColor(cell.MeanRPN, g.lo, g.hi)))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Color = inks[i]
	}
	return labels, nil
}

func axisNames(vals []int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func indexOf(vals []int) map[int]int {
	m := make(map[int]int, len(vals))
	for i, v := range vals {
		m[v] = i
	}
	return m
}
