package series

import (
	"sort"

	"blocgdp/internal/model"
)

// Store holds each country's GDP series sorted by year. Series are built up
// during loading and treated as immutable afterwards.
type Store struct {
	byCountry map[string][]model.DataPoint
}

func NewStore() *Store {
	return &Store{byCountry: make(map[string][]model.DataPoint)}
}

// Add inserts a data point keeping the country's series sorted by year.
// A point for an already-known year is ignored (first record wins).
func (s *Store) Add(code string, point model.DataPoint) {
	points := s.byCountry[code]
	i := sort.Search(len(points), func(i int) bool {
		return points[i].Year >= point.Year
	})
	if i < len(points) && points[i].Year == point.Year {
		return
	}
	points = append(points, model.DataPoint{})
	copy(points[i+1:], points[i:])
	points[i] = point
	s.byCountry[code] = points
}

// Points returns the country's series, sorted by year. Nil when the country
// has no data.
func (s *Store) Points(code string) []model.DataPoint {
	return s.byCountry[code]
}

func (s *Store) Countries() []string {
	codes := make([]string, 0, len(s.byCountry))
	for code := range s.byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
