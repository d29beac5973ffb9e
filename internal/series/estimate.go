package series

import (
	"math"

	"blocgdp/internal/model"
)

const (
	// Forward extrapolation stops 20 years after the last observation.
	forwardHorizonYears = 20
	// Backward extrapolation stops 20 years before the first observation,
	// or 70 when at least three points support the trend estimate.
	backwardHorizonYears      = 20
	backwardTrendHorizonYears = 70
	// A lone data point is carried unchanged for at most 10 years in
	// either direction.
	carryHorizonYears = 10
)

// Estimate is a resolved (GDP per capita, population) pair for one year.
type Estimate struct {
	GDPPerCapita float64
	Population   float64
}

// EstimateAt resolves the series at the target year. Returns false when no
// rule yields a value: empty series, horizon exceeded, or a backward
// projection rejected by the monotonicity guard.
//
// Rules in order: exact match, linear interpolation between the bracketing
// points, growth-rate extrapolation forward, growth-rate extrapolation
// backward. GDP per capita and population are always estimated
// independently.
func EstimateAt(points []model.DataPoint, year int) (Estimate, bool) {
	if len(points) == 0 {
		return Estimate{}, false
	}
	for _, point := range points {
		if point.Year == year {
			return Estimate{GDPPerCapita: point.GDPPerCapita, Population: point.Population}, true
		}
	}

	split := 0
	for split < len(points) && points[split].Year < year {
		split++
	}
	before := points[:split]
	after := points[split:]

	switch {
	case len(before) > 0 && len(after) > 0:
		return interpolate(before[len(before)-1], after[0], year), true
	case len(before) > 0:
		return extrapolateForward(before, year)
	default:
		return extrapolateBackward(after, year)
	}
}

// interpolate is plain linear interpolation between the nearest bracketing
// points.
func interpolate(p1, p2 model.DataPoint, year int) Estimate {
	ratio := float64(year-p1.Year) / float64(p2.Year-p1.Year)
	return Estimate{
		GDPPerCapita: p1.GDPPerCapita + (p2.GDPPerCapita-p1.GDPPerCapita)*ratio,
		Population:   p1.Population + (p2.Population-p1.Population)*ratio,
	}
}

// extrapolateForward projects past the last observation using the per-annum
// growth ratio of the two most recent points. With a single point the value
// is carried unchanged within the carry horizon.
func extrapolateForward(before []model.DataPoint, year int) (Estimate, bool) {
	last := before[len(before)-1]
	yearsAhead := year - last.Year
	if yearsAhead > forwardHorizonYears {
		return Estimate{}, false
	}

	if len(before) < 2 {
		if yearsAhead > carryHorizonYears {
			return Estimate{}, false
		}
		return Estimate{GDPPerCapita: last.GDPPerCapita, Population: last.Population}, true
	}

	prev := before[len(before)-2]
	span := last.Year - prev.Year
	gdppcGrowth := annualGrowth(prev.GDPPerCapita, last.GDPPerCapita, span)
	popGrowth := annualGrowth(prev.Population, last.Population, span)
	return Estimate{
		GDPPerCapita: last.GDPPerCapita * math.Pow(gdppcGrowth, float64(yearsAhead)),
		Population:   last.Population * math.Pow(popGrowth, float64(yearsAhead)),
	}, true
}

// extrapolateBackward projects before the first observation. With three or
// more points the growth ratio is compounded across the earliest three and
// the horizon extends to 70 years; with two it uses those two under the
// default horizon. A projection that would make the economy richer per
// capita than its earliest recorded state is rejected.
func extrapolateBackward(after []model.DataPoint, year int) (Estimate, bool) {
	first := after[0]
	yearsBack := first.Year - year

	horizon := backwardHorizonYears
	if len(after) >= 3 {
		horizon = backwardTrendHorizonYears
	}
	if yearsBack > horizon {
		return Estimate{}, false
	}

	if len(after) < 2 {
		if yearsBack > carryHorizonYears {
			return Estimate{}, false
		}
		return Estimate{GDPPerCapita: first.GDPPerCapita, Population: first.Population}, true
	}

	edge := after[1]
	if len(after) >= 3 {
		edge = after[2]
	}
	span := edge.Year - first.Year
	gdppcGrowth := annualGrowth(first.GDPPerCapita, edge.GDPPerCapita, span)
	popGrowth := annualGrowth(first.Population, edge.Population, span)

	gdppc := first.GDPPerCapita / math.Pow(gdppcGrowth, float64(yearsBack))
	if gdppc > first.GDPPerCapita {
		// Never model a historical economy as richer per capita than
		// its earliest recorded state.
		return Estimate{}, false
	}
	return Estimate{
		GDPPerCapita: gdppc,
		Population:   first.Population / math.Pow(popGrowth, float64(yearsBack)),
	}, true
}

// annualGrowth is the compounded per-annum ratio between two observations
// spanning the given number of years.
func annualGrowth(from, to float64, years int) float64 {
	return math.Pow(to/from, 1/float64(years))
}
