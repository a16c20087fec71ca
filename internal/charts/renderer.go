package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sganes21/Dataset-Final-Project/internal/analytics"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
)

// SkyBlue is the fill of the outcome charts.
var SkyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// BarSpec describes a single-series bar chart.
type BarSpec struct {
	File   string
	Title  string
	XLabel string
	YLabel string
	Data   analytics.Ranked
	// ValueLabels prints each bar's total above it.
	ValueLabels bool
	// RotateLabels slants the category labels.
	RotateLabels bool
	Color        color.Color
}

// MatrixSpec describes a chart drawn from a shelter-by-year matrix.
type MatrixSpec struct {
	File        string
	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string
	Data        *analytics.ShelterYearMatrix
	ValueLabels bool
}

// Renderer writes charts as PNG files into one directory. When an
// HTMLReport is attached every chart is also added to it.
type Renderer struct {
	dir    string
	width  vg.Length
	height vg.Length
	html   *HTMLReport
	logger *slog.Logger
}

// NewRenderer creates a renderer whose charts are widthIn by heightIn inches.
func NewRenderer(dir string, widthIn, heightIn float64, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		dir:    dir,
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
		logger: logger.With(slog.String("component", "charts")),
	}
}

// WithHTML attaches a dashboard that mirrors every chart.
func (r *Renderer) WithHTML(h *HTMLReport) *Renderer {
	r.html = h
	return r
}

// HTML returns the attached dashboard, if any.
func (r *Renderer) HTML() *HTMLReport { return r.html }

// Path returns where file is written.
func (r *Renderer) Path(file string) string {
	return filepath.Join(r.dir, file)
}

// Bar draws a vertical bar chart, one bar per entry in order.
func (r *Renderer) Bar(spec BarSpec) (string, error) {
	p, err := r.barPlot(spec)
	if err != nil {
		return "", apperrors.NewRenderError(spec.File, err)
	}
	if r.html != nil {
		r.html.AddBar(spec.Title, spec.Data, false)
	}
	return r.save(p, spec.File, r.width, r.height)
}

// HorizontalBar draws one horizontal bar per entry, first entry at the
// bottom, with vertical grid lines.
func (r *Renderer) HorizontalBar(spec BarSpec) (string, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	p.Add(grid)

	if len(spec.Data) > 0 {
		bars, err := plotter.NewBarChart(plotter.Values(spec.Data.Values()), barWidth(r.height, len(spec.Data)))
		if err != nil {
			return "", apperrors.NewRenderError(spec.File, err)
		}
		bars.Horizontal = true
		bars.Color = fill(spec.Color, 0)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalY(spec.Data.Labels()...)
	} else {
		r.logger.Warn("Chart has no data", slog.String("file", spec.File))
	}

	if r.html != nil {
		r.html.AddBar(spec.Title, spec.Data, true)
	}
	return r.save(p, spec.File, r.width, r.height)
}

// StackedBars draws panels as bar charts stacked top to bottom in one
// image.
func (r *Renderer) StackedBars(file string, panels ...BarSpec) (string, error) {
	if len(panels) == 0 {
		return "", apperrors.NewRenderError(file, fmt.Errorf("no panels"))
	}

	rows := make([][]*plot.Plot, len(panels))
	for i, spec := range panels {
		p, err := r.barPlot(spec)
		if err != nil {
			return "", apperrors.NewRenderError(file, err)
		}
		rows[i] = []*plot.Plot{p}
		if r.html != nil {
			r.html.AddBar(spec.Title, spec.Data, false)
		}
	}

	height := r.height * vg.Length(len(panels))
	img := vgimg.New(r.width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}

	path := r.Path(file)
	w, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewRenderError(file, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		w.Close()
		return "", apperrors.NewRenderError(file, err)
	}
	if err := w.Close(); err != nil {
		return "", apperrors.NewRenderError(file, err)
	}
	r.logger.Info("Chart written", slog.String("file", path), slog.Int("panels", len(panels)))
	return path, nil
}

// Lines draws one line with circle markers per shelter across the years.
// Years without a value break the line.
func (r *Renderer) Lines(spec MatrixSpec) (string, error) {
	m := spec.Data
	if m == nil {
		return "", apperrors.NewRenderError(spec.File, fmt.Errorf("no data"))
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Dashes = dashes
	p.Add(grid)

	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}
	for i, shelter := range m.Shelters {
		var legendLine *plotter.Line
		var legendPoints *plotter.Scatter
		for _, seg := range segments(m.Years, m.Values[i]) {
			line, points, err := plotter.NewLinePoints(seg)
			if err != nil {
				return "", apperrors.NewRenderError(spec.File, err)
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(1.5)
			points.Color = plotutil.Color(i)
			points.Shape = draw.CircleGlyph{}
			p.Add(line, points)
			if legendLine == nil {
				legendLine, legendPoints = line, points
			}
		}
		if legendLine != nil {
			p.Legend.Add(shelter, legendLine, legendPoints)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	ticks := make([]plot.Tick, len(m.Years))
	for j, y := range m.Years {
		ticks[j] = plot.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	if r.html != nil {
		r.html.AddLines(spec.Title, m)
	}
	return r.save(p, spec.File, r.width, r.height)
}

// GroupedBars draws, for each shelter, one bar per year side by side.
// Years without a value are drawn as zero.
func (r *Renderer) GroupedBars(spec MatrixSpec) (string, error) {
	m := spec.Data
	if m == nil {
		return "", apperrors.NewRenderError(spec.File, fmt.Errorf("no data"))
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}
	if len(m.Shelters) > 0 && len(m.Years) > 0 {
		groupWidth := r.width * 0.7 / vg.Length(len(m.Shelters))
		w := groupWidth / vg.Length(len(m.Years))
		for j, year := range m.Years {
			values := m.Column(j)
			bars, err := plotter.NewBarChart(plotter.Values(values), w)
			if err != nil {
				return "", apperrors.NewRenderError(spec.File, err)
			}
			offset := w * (vg.Length(j) - vg.Length(len(m.Years)-1)/2)
			bars.Offset = offset
			bars.Color = plotutil.Color(j)
			bars.LineStyle.Width = 0
			p.Add(bars)
			p.Legend.Add(strconv.Itoa(year), bars)

			if spec.ValueLabels {
				labels, err := valueLabels(values)
				if err != nil {
					return "", apperrors.NewRenderError(spec.File, err)
				}
				labels.Offset = vg.Point{X: offset, Y: vg.Points(2)}
				p.Add(labels)
			}
		}
		p.NominalX(m.Shelters...)
		rotate(p)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	if r.html != nil {
		r.html.AddGroupedBars(spec.Title, m)
	}
	return r.save(p, spec.File, r.width, r.height)
}

func (r *Renderer) barPlot(spec BarSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	if len(spec.Data) == 0 {
		r.logger.Warn("Chart has no data", slog.String("file", spec.File), slog.String("title", spec.Title))
		return p, nil
	}

	values := spec.Data.Values()
	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth(r.width, len(values)))
	if err != nil {
		return nil, err
	}
	bars.Color = fill(spec.Color, 0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(spec.Data.Labels()...)
	if spec.RotateLabels {
		rotate(p)
	}

	if spec.ValueLabels {
		labels, err := valueLabels(values)
		if err != nil {
			return nil, err
		}
		labels.Offset = vg.Point{Y: vg.Points(2)}
		p.Add(labels)
	}
	return p, nil
}

func (r *Renderer) save(p *plot.Plot, file string, w, h vg.Length) (string, error) {
	path := r.Path(file)
	if err := p.Save(w, h, path); err != nil {
		return "", apperrors.NewRenderError(file, err)
	}
	r.logger.Info("Chart written", slog.String("file", path))
	return path, nil
}

// valueLabels places a thousands-separated label at the top of each bar.
func valueLabels(values []float64) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	text := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		text[i] = humanize.Comma(int64(math.Round(v)))
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	return labels, nil
}

// segments splits a series at NaN values into runs of plottable points.
func segments(years []int, values []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for j, v := range values {
		if math.IsNaN(v) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(years[j]), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func rotate(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// barWidth spreads n bars over most of span.
func barWidth(span vg.Length, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := span * 0.7 / vg.Length(n)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}

func fill(c color.Color, i int) color.Color {
	if c != nil {
		return c
	}
	return plotutil.Color(i)
}
