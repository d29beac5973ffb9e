package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocgdp/internal/model"
)

func points(triples ...[3]float64) []model.DataPoint {
	out := make([]model.DataPoint, 0, len(triples))
	for _, t := range triples {
		out = append(out, model.DataPoint{Year: int(t[0]), GDPPerCapita: t[1], Population: t[2]})
	}
	return out
}

func TestEstimateExactMatch(t *testing.T) {
	series := points([3]float64{1950, 2000, 100}, [3]float64{1970, 3000, 120})
	for _, p := range series {
		got, ok := EstimateAt(series, p.Year)
		require.True(t, ok)
		assert.Equal(t, p.GDPPerCapita, got.GDPPerCapita)
		assert.Equal(t, p.Population, got.Population)
	}
}

func TestEstimateInterpolationMidpoint(t *testing.T) {
	series := points([3]float64{1950, 2000, 100}, [3]float64{1970, 3000, 120})
	got, ok := EstimateAt(series, 1960)
	require.True(t, ok)
	assert.InDelta(t, 2500, got.GDPPerCapita, 1e-9)
	assert.InDelta(t, 110, got.Population, 1e-9)
}

func TestEstimateInterpolationUsesNearestBracket(t *testing.T) {
	series := points(
		[3]float64{1900, 500, 40},
		[3]float64{1950, 2000, 100},
		[3]float64{1970, 3000, 120},
		[3]float64{2000, 9000, 200},
	)
	got, ok := EstimateAt(series, 1960)
	require.True(t, ok)
	assert.InDelta(t, 2500, got.GDPPerCapita, 1e-9)
	assert.InDelta(t, 110, got.Population, 1e-9)
}

func TestEstimateForwardGrowth(t *testing.T) {
	series := points([3]float64{1950, 2000, 100}, [3]float64{1970, 3000, 120})
	got, ok := EstimateAt(series, 1980)
	require.True(t, ok)

	gdppcGrowth := math.Pow(3000.0/2000.0, 1.0/20.0)
	popGrowth := math.Pow(120.0/100.0, 1.0/20.0)
	assert.InDelta(t, 3000*math.Pow(gdppcGrowth, 10), got.GDPPerCapita, 1e-9)
	assert.InDelta(t, 120*math.Pow(popGrowth, 10), got.Population, 1e-9)
	assert.Greater(t, got.GDPPerCapita, 3000.0)
}

func TestEstimateForwardHorizon(t *testing.T) {
	series := points([3]float64{1950, 2000, 100}, [3]float64{1970, 3000, 120})

	_, ok := EstimateAt(series, 1990)
	assert.True(t, ok, "20 years ahead is inside the horizon")

	_, ok = EstimateAt(series, 1991)
	assert.False(t, ok, "21 years ahead exceeds the horizon")
}

func TestEstimateForwardSinglePointCarry(t *testing.T) {
	series := points([3]float64{1950, 2000, 100})

	got, ok := EstimateAt(series, 1960)
	require.True(t, ok)
	assert.Equal(t, 2000.0, got.GDPPerCapita)
	assert.Equal(t, 100.0, got.Population)

	_, ok = EstimateAt(series, 1961)
	assert.False(t, ok, "a lone point carries at most 10 years")
}

func TestEstimateBackwardTwoPoints(t *testing.T) {
	series := points([3]float64{1900, 1000, 50}, [3]float64{1920, 2000, 60})

	got, ok := EstimateAt(series, 1890)
	require.True(t, ok)
	gdppcGrowth := math.Pow(2000.0/1000.0, 1.0/20.0)
	assert.InDelta(t, 1000/math.Pow(gdppcGrowth, 10), got.GDPPerCapita, 1e-9)
	assert.Less(t, got.GDPPerCapita, 1000.0)

	_, ok = EstimateAt(series, 1879)
	assert.False(t, ok, "two points keep the 20 year horizon")
}

func TestEstimateBackwardThreePointHorizon(t *testing.T) {
	series := points(
		[3]float64{1900, 1000, 50},
		[3]float64{1920, 2000, 60},
		[3]float64{1940, 4000, 80},
	)

	got, ok := EstimateAt(series, 1830)
	require.True(t, ok, "70 years back is allowed with three points")
	// Compounded across the earliest three points: (4000/1000)^(1/40).
	gdppcGrowth := math.Pow(4.0, 1.0/40.0)
	assert.InDelta(t, 1000/math.Pow(gdppcGrowth, 70), got.GDPPerCapita, 1e-9)

	_, ok = EstimateAt(series, 1829)
	assert.False(t, ok, "71 years back exceeds the extended horizon")
}

func TestEstimateBackwardSinglePointCarry(t *testing.T) {
	series := points([3]float64{1900, 1000, 50})

	got, ok := EstimateAt(series, 1890)
	require.True(t, ok)
	assert.Equal(t, 1000.0, got.GDPPerCapita)

	_, ok = EstimateAt(series, 1889)
	assert.False(t, ok)
}

func TestEstimateBackwardMonotonicityGuard(t *testing.T) {
	// Earliest points imply decline going forward, so projecting backward
	// would make the past richer than the earliest record.
	series := points([3]float64{1900, 1000, 50}, [3]float64{1920, 800, 60})

	_, ok := EstimateAt(series, 1890)
	assert.False(t, ok)
}

func TestEstimateBackwardMonotonicityGuardThreePoints(t *testing.T) {
	series := points(
		[3]float64{1900, 1000, 50},
		[3]float64{1920, 900, 60},
		[3]float64{1940, 500, 80},
	)

	_, ok := EstimateAt(series, 1880)
	assert.False(t, ok)
}

func TestEstimateBackwardGuardIgnoresPopulation(t *testing.T) {
	// Shrinking population does not trip the guard; only GDP per capita
	// is constrained.
	series := points([3]float64{1900, 1000, 80}, [3]float64{1920, 2000, 60})

	got, ok := EstimateAt(series, 1890)
	require.True(t, ok)
	assert.Greater(t, got.Population, 80.0)
}

func TestEstimateEmptySeries(t *testing.T) {
	_, ok := EstimateAt(nil, 1900)
	assert.False(t, ok)
}
