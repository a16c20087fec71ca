package charts

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sganes21/Dataset-Final-Project/internal/analytics"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
)

// HTMLReport collects interactive versions of the charts on one page.
type HTMLReport struct {
	page   *components.Page
	titles []string
}

// NewHTMLReport creates an empty dashboard
func NewHTMLReport(title string) *HTMLReport {
	page := components.NewPage()
	page.PageTitle = title
	return &HTMLReport{page: page}
}

// Len returns the number of charts added
func (h *HTMLReport) Len() int { return len(h.titles) }

// Titles returns the chart titles in the order they were added
func (h *HTMLReport) Titles() []string { return h.titles }

func globalOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	}
}

// AddBar adds a single-series bar chart. Horizontal charts list the first
// entry at the bottom.
func (h *HTMLReport) AddBar(title string, data analytics.Ranked, horizontal bool) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title)...)

	items := make([]opts.BarData, len(data))
	for i, e := range data {
		items[i] = opts.BarData{Value: e.Value}
	}
	bar.SetXAxis(data.Labels()).
		AddSeries("Total", items,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(!horizontal), Position: "top"}),
		)
	if horizontal {
		bar.XYReversal()
	}

	h.page.AddCharts(bar)
	h.titles = append(h.titles, title)
}

// AddLines adds one line per shelter across the years. Missing years are
// left as gaps.
func (h *HTMLReport) AddLines(title string, m *analytics.ShelterYearMatrix) {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title)...)
	line.SetXAxis(yearLabels(m.Years))
	for i, shelter := range m.Shelters {
		items := make([]opts.LineData, len(m.Years))
		for j, v := range m.Values[i] {
			if math.IsNaN(v) {
				items[j] = opts.LineData{Value: nil}
				continue
			}
			items[j] = opts.LineData{Value: v}
		}
		line.AddSeries(shelter, items)
	}

	h.page.AddCharts(line)
	h.titles = append(h.titles, title)
}

// AddGroupedBars adds one bar series per year across the shelters.
func (h *HTMLReport) AddGroupedBars(title string, m *analytics.ShelterYearMatrix) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title)...)
	bar.SetXAxis(m.Shelters)
	for j, year := range m.Years {
		values := m.Column(j)
		items := make([]opts.BarData, len(values))
		for i, v := range values {
			items[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(strconv.Itoa(year), items)
	}

	h.page.AddCharts(bar)
	h.titles = append(h.titles, title)
}

// Save renders the page to path
func (h *HTMLReport) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewExportError(fmt.Sprintf("failed to create %s", path), err)
	}
	if err := h.page.Render(f); err != nil {
		f.Close()
		return apperrors.NewExportError("failed to render dashboard", err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewExportError(fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}

func yearLabels(years []int) []string {
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
