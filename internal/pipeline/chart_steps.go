package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sganes21/Dataset-Final-Project/internal/analytics"
	"github.com/sganes21/Dataset-Final-Project/internal/charts"
	"github.com/sganes21/Dataset-Final-Project/internal/config"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// Step IDs of the chart stage.
const (
	StepChartGross             = "chart-gross-by-state"
	StepChartGrossBySpecies    = "chart-gross-by-species"
	StepChartNetBySpecies      = "chart-net-by-species"
	StepChartTopShelters       = "chart-top-shelters"
	StepChartTopSheltersByYear = "chart-top-shelters-by-year"
	StepChartCanineOutcomes    = "chart-canine-outcomes"
	StepChartFelineOutcomes    = "chart-feline-outcomes"
	StepChartUndesignated      = "chart-undesignated"
	StepDashboard              = "dashboard"
)

// chartFunc renders one chart from the cleaned combined table and returns
// the written path.
type chartFunc func(f *frame.Frame) (string, error)

func (p *Pipeline) chartStep(id, name string, draw chartFunc) operations.Step {
	return operations.NewFuncStep(id, name, func(ctx context.Context, state *operations.RunState) error {
		f, err := state.Frame(TableCombined)
		if err != nil {
			return err
		}
		path, err := draw(f)
		if err != nil {
			return err
		}
		state.AddOutput(path)
		p.metrics.RecordChart(ctx, filepath.Base(path))
		return nil
	}, StepCorrectOutliers, StepPrepareOutput)
}

func (p *Pipeline) chartSteps() []operations.Step {
	return []operations.Step{
		p.chartStep(StepChartGross, "Chart gross intake by state", p.grossByState),
		p.chartStep(StepChartGrossBySpecies, "Chart gross intake by species", p.grossBySpecies),
		p.chartStep(StepChartNetBySpecies, "Chart net intake by species", p.netBySpecies),
		p.chartStep(StepChartTopShelters, "Chart top shelters", p.topShelters),
		p.chartStep(StepChartTopSheltersByYear, "Chart top shelters by year", p.topSheltersByYear),
		p.chartStep(StepChartCanineOutcomes, "Chart canine outcomes", p.outcomes(domain.SpeciesCanine)),
		p.chartStep(StepChartFelineOutcomes, "Chart feline outcomes", p.outcomes(domain.SpeciesFeline)),
		p.chartStep(StepChartUndesignated, "Chart undesignated intake", p.undesignated),
	}
}

func (p *Pipeline) dashboardStep() operations.Step {
	deps := make([]string, 0, len(p.chartSteps()))
	for _, s := range p.chartSteps() {
		deps = append(deps, s.ID())
	}
	return operations.NewFuncStep(StepDashboard, "Write HTML dashboard", func(ctx context.Context, state *operations.RunState) error {
		report := p.renderer.HTML()
		path := p.paths.GetChartPath(config.DashboardFile)
		if err := report.Save(path); err != nil {
			return err
		}
		state.AddOutput(path)
		p.logger.InfoContext(ctx, "Dashboard written",
			slog.String("path", path),
			slog.Int("charts", report.Len()),
			slog.Any("titles", report.Titles()))
		return nil
	}, deps...)
}

func (p *Pipeline) grossByState(f *frame.Frame) (string, error) {
	totals, err := analytics.StateTotals(f, domain.GrossIntakeColumns, p.filter)
	if err != nil {
		return "", err
	}
	return p.renderer.Bar(charts.BarSpec{
		File:         charts.FileTotalIntakeGross,
		Title:        "Total Stray Pets by State " + p.yearSpan(),
		XLabel:       "State",
		YLabel:       "Total Count",
		Data:         totals,
		ValueLabels:  true,
		RotateLabels: true,
	})
}

func (p *Pipeline) speciesPanels(f *frame.Frame, file string, columns func(domain.Species) []string) (string, error) {
	totals, err := analytics.SpeciesStateTotals(f,
		columns(domain.SpeciesCanine), columns(domain.SpeciesFeline), p.filter)
	if err != nil {
		return "", err
	}
	panel := func(title string, data analytics.Ranked) charts.BarSpec {
		return charts.BarSpec{
			Title:        title + " " + p.yearSpan(),
			XLabel:       "State",
			YLabel:       "Total Count",
			Data:         data,
			ValueLabels:  true,
			RotateLabels: true,
		}
	}
	return p.renderer.StackedBars(file,
		panel("Total Stray Dogs by State", totals.Dogs),
		panel("Total Stray Cats by State", totals.Cats),
	)
}

func (p *Pipeline) grossBySpecies(f *frame.Frame) (string, error) {
	return p.speciesPanels(f, charts.FileTotalIntakeGrossBySpecies, domain.SpeciesGrossColumns)
}

func (p *Pipeline) netBySpecies(f *frame.Frame) (string, error) {
	return p.speciesPanels(f, charts.FileTotalIntakeNet, domain.SpeciesNetColumns)
}

func (p *Pipeline) topMatrix(f *frame.Frame) (*analytics.ShelterYearMatrix, error) {
	return analytics.TopShelters(f, domain.ShelterAnimalColumns, p.filter, p.cfg.Analysis.TopShelters)
}

func (p *Pipeline) topTitle() string {
	return fmt.Sprintf("Top %d Animal Shelters by Animal Count %s", p.cfg.Analysis.TopShelters, p.yearSpan())
}

func (p *Pipeline) topShelters(f *frame.Frame) (string, error) {
	m, err := p.topMatrix(f)
	if err != nil {
		return "", err
	}
	return p.renderer.Lines(charts.MatrixSpec{
		File:        charts.FileTopShelters,
		Title:       p.topTitle(),
		XLabel:      "Year",
		YLabel:      "Total Animal Count",
		LegendTitle: "Shelter Name",
		Data:        m,
	})
}

func (p *Pipeline) topSheltersByYear(f *frame.Frame) (string, error) {
	m, err := p.topMatrix(f)
	if err != nil {
		return "", err
	}
	return p.renderer.GroupedBars(charts.MatrixSpec{
		File:        charts.FileTopSheltersByCount,
		Title:       p.topTitle(),
		XLabel:      "Shelter Name",
		YLabel:      "Total Animal Count",
		LegendTitle: "Year",
		Data:        m,
		ValueLabels: true,
	})
}

func (p *Pipeline) outcomes(species domain.Species) chartFunc {
	file, title := charts.FileCanineOutcomes, "Canine Outcomes in Shelter System"
	if species == domain.SpeciesFeline {
		file, title = charts.FileFelineOutcomes, "Feline Outcomes in Shelter System"
	}
	return func(f *frame.Frame) (string, error) {
		totals, err := analytics.OutcomeTotals(f, domain.OutcomeColumns(species))
		if err != nil {
			return "", err
		}
		return p.renderer.HorizontalBar(charts.BarSpec{
			File:   file,
			Title:  title,
			XLabel: "Count",
			YLabel: "Outcome Type",
			Data:   totals,
			Color:  charts.SkyBlue,
		})
	}
}

func (p *Pipeline) undesignated(f *frame.Frame) (string, error) {
	totals, err := analytics.StateTotals(f,
		[]string{domain.ColUndesignatedIntakeGross}, p.filter.WithoutAnnotationFilter())
	if err != nil {
		return "", err
	}
	return p.renderer.Bar(charts.BarSpec{
		File:         charts.FileUndesignatedIntakeGross,
		Title:        "Total Undesignated Stray Pets by State " + p.yearSpan(),
		XLabel:       "State",
		YLabel:       "Total Count",
		Data:         totals,
		ValueLabels:  true,
		RotateLabels: true,
	})
}
