package charts

import (
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sganes21/Dataset-Final-Project/internal/analytics"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(t.TempDir(), 12, 6, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err, "%s is not a PNG", path)
	return cfg.Width, cfg.Height
}

var states = analytics.Ranked{
	{Label: "GA", Value: 123456},
	{Label: "NC", Value: 2345},
	{Label: "SC", Value: 12},
}

var matrix = &analytics.ShelterYearMatrix{
	Shelters: []string{"Harbor", "Oak"},
	Years:    []int{2021, 2022, 2023},
	Values: [][]float64{
		{15, 25, math.NaN()},
		{math.NaN(), 10, 12},
	},
	Totals: []float64{40, 22},
}

func TestRenderer_Bar(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.Bar(BarSpec{
		File:         FileTotalIntakeGross,
		Title:        "Total Stray Pets by State (2021-2023)",
		XLabel:       "State",
		YLabel:       "Total Count",
		Data:         states,
		ValueLabels:  true,
		RotateLabels: true,
	})
	require.NoError(t, err)
	assert.Equal(t, r.Path(FileTotalIntakeGross), path)

	w, h := pngSize(t, path)
	assert.InDelta(t, 1152, w, 1)
	assert.InDelta(t, 576, h, 1)
}

func TestRenderer_EmptyBar(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.Bar(BarSpec{File: "empty.png", Title: "Nothing"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderer_HorizontalBar(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.HorizontalBar(BarSpec{
		File:   FileCanineOutcomes,
		Title:  "Canine Outcomes in Shelter System",
		XLabel: "Count",
		YLabel: "Outcome Type",
		Data:   analytics.Ranked{{Label: "Canine adoption", Value: 10}, {Label: "Canine died in care", Value: 0}},
		Color:  SkyBlue,
	})
	require.NoError(t, err)
	pngSize(t, path)
}

func TestRenderer_StackedBars(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.StackedBars(FileTotalIntakeGrossBySpecies,
		BarSpec{Title: "Total Stray Dogs by State (2021-2023)", XLabel: "State", YLabel: "Total Count", Data: states},
		BarSpec{Title: "Total Stray Cats by State (2021-2023)", XLabel: "State", YLabel: "Total Count", Data: states[:2]},
	)
	require.NoError(t, err)

	w, h := pngSize(t, path)
	assert.InDelta(t, 1152, w, 1)
	assert.InDelta(t, 1152, h, 1)

	_, err = r.StackedBars("none.png")
	assert.Equal(t, apperrors.ErrTypeRender, apperrors.TypeOf(err))
}

func TestRenderer_Lines(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.Lines(MatrixSpec{
		File:        FileTopShelters,
		Title:       "Top 10 Animal Shelters by Animal Count (2021-2023)",
		XLabel:      "Year",
		YLabel:      "Total Animal Count",
		LegendTitle: "Shelter Name",
		Data:        matrix,
	})
	require.NoError(t, err)
	pngSize(t, path)

	_, err = r.Lines(MatrixSpec{File: "nil.png"})
	assert.Error(t, err)
}

func TestRenderer_GroupedBars(t *testing.T) {
	r := newTestRenderer(t)
	path, err := r.GroupedBars(MatrixSpec{
		File:        FileTopSheltersByCount,
		Title:       "Top 10 Animal Shelters by Animal Count (2021-2023)",
		XLabel:      "Shelter Name",
		YLabel:      "Total Animal Count",
		LegendTitle: "Year",
		Data:        matrix,
		ValueLabels: true,
	})
	require.NoError(t, err)
	pngSize(t, path)
}

func TestRenderer_UnwritableDirectory(t *testing.T) {
	r := NewRenderer(filepath.Join(t.TempDir(), "missing", "dir"), 12, 6, nil)
	_, err := r.Bar(BarSpec{File: "x.png", Data: states})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeRender, apperrors.TypeOf(err))
}

func TestSegments(t *testing.T) {
	segs := segments([]int{2020, 2021, 2022, 2023}, []float64{1, math.NaN(), 3, 4})
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 2022.0, segs[1][0].X)

	assert.Empty(t, segments([]int{2020}, []float64{math.NaN()}))
}

func TestHTMLReport(t *testing.T) {
	dir := t.TempDir()
	report := NewHTMLReport("Shelter dashboard")
	r := NewRenderer(dir, 12, 6, nil).WithHTML(report)
	assert.Same(t, report, r.HTML())

	_, err := r.Bar(BarSpec{File: FileTotalIntakeGross, Title: "Total Stray Pets by State (2021-2023)", Data: states})
	require.NoError(t, err)
	_, err = r.StackedBars(FileTotalIntakeNet,
		BarSpec{Title: "Dogs", Data: states},
		BarSpec{Title: "Cats", Data: states},
	)
	require.NoError(t, err)
	_, err = r.Lines(MatrixSpec{File: FileTopShelters, Title: "Lines", Data: matrix})
	require.NoError(t, err)
	_, err = r.GroupedBars(MatrixSpec{File: FileTopSheltersByCount, Title: "Grouped", Data: matrix})
	require.NoError(t, err)
	_, err = r.HorizontalBar(BarSpec{File: FileFelineOutcomes, Title: "Feline Outcomes in Shelter System", Data: states})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Len())
	assert.Equal(t, []string{
		"Total Stray Pets by State (2021-2023)", "Dogs", "Cats", "Lines", "Grouped",
		"Feline Outcomes in Shelter System",
	}, report.Titles())

	path := filepath.Join(dir, "dashboard.html")
	require.NoError(t, report.Save(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Shelter dashboard")
	assert.Contains(t, string(content), "Feline Outcomes in Shelter System")
	assert.Contains(t, string(content), "Harbor")
}
