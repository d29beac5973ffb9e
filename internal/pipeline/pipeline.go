// Package pipeline turns bloc assignments and GDP series into normalized
// decade rows: per-country estimates on a fixed decade grid, weighted by
// bloc share, expressed as a percentage of the decade's world total.
package pipeline

import (
	"math"

	"github.com/rs/zerolog"

	"blocgdp/internal/blocs"
	"blocgdp/internal/model"
	"blocgdp/internal/series"
)

const (
	firstDecade = 1750
	lastDecade  = 2020
	decadeStep  = 10
)

// shareSumSlack is how far active shares may drift from 100 before a
// data-quality warning is logged. Drift is permitted either way; rows are
// emitted regardless.
const shareSumSlack = 0.5

// DecadeGrid returns the fixed sample years 1750, 1760, ..., 2020.
func DecadeGrid() []int {
	grid := make([]int, 0, (lastDecade-firstDecade)/decadeStep+1)
	for decade := firstDecade; decade <= lastDecade; decade += decadeStep {
		grid = append(grid, decade)
	}
	return grid
}

// Generator drives the aggregation: for every country carrying assignments
// and every decade in the grid, it resolves the active intervals and the
// series estimate and emits one weighted row per interval.
type Generator struct {
	series *series.Store
	blocs  *blocs.Store
	names  map[string]string
	log    zerolog.Logger
}

func NewGenerator(seriesStore *series.Store, blocStore *blocs.Store, names map[string]string, log zerolog.Logger) *Generator {
	return &Generator{series: seriesStore, blocs: blocStore, names: names, log: log}
}

// Build emits decade rows sorted by (country code, year). Country/decade
// pairs with no active assignment or no viable estimate are skipped
// silently; GDPPercent is left zero for Normalize to fill.
func (g *Generator) Build() []model.DecadeRow {
	rows := make([]model.DecadeRow, 0)
	for _, code := range g.blocs.Countries() {
		name, ok := g.names[code]
		if !ok {
			name = code
		}
		points := g.series.Points(code)

		for _, decade := range DecadeGrid() {
			active := g.blocs.ActiveAt(code, decade)
			if len(active) == 0 {
				continue
			}
			estimate, ok := series.EstimateAt(points, decade)
			if !ok {
				g.log.Debug().Str("country", code).Int("decade", decade).Msg("no estimate")
				continue
			}

			g.checkShareSum(code, decade, active)
			absoluteGDP := estimate.GDPPerCapita * estimate.Population
			for _, assignment := range active {
				rows = append(rows, model.DecadeRow{
					CountryCode:    code,
					Country:        name,
					Year:           decade,
					Bloc:           assignment.Bloc,
					BlocPercentage: assignment.Percentage,
					GDPPerCapita:   estimate.GDPPerCapita,
					Population:     estimate.Population,
					GDP:            absoluteGDP * assignment.Percentage / 100,
				})
			}
		}
	}
	return rows
}

// checkShareSum flags under- or over-allocated bloc shares. Source data is
// allowed to drift; this is a signal, not an error.
func (g *Generator) checkShareSum(code string, decade int, active []model.Assignment) {
	sum := 0.0
	for _, assignment := range active {
		sum += assignment.Percentage
	}
	if math.Abs(sum-100) > shareSumSlack {
		g.log.Warn().
			Str("country", code).
			Int("decade", decade).
			Float64("share_sum", sum).
			Msg("bloc shares do not sum to 100")
	}
}

// Normalize fills GDPPercent in place: pass one accumulates each decade's
// world total from the weighted GDP values, pass two expresses every row as
// a percentage of its decade's total, rounded to two decimals. The
// accumulator defaults to zero per decade and has no writers after pass one.
func Normalize(rows []model.DecadeRow) {
	worldGDP := make(map[int]float64)
	for _, row := range rows {
		worldGDP[row.Year] += row.GDP
	}
	for i := range rows {
		total := worldGDP[rows[i].Year]
		if total == 0 {
			continue
		}
		rows[i].GDPPercent = round2(100 * rows[i].GDP / total)
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
