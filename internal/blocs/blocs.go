package blocs

import (
	"sort"

	"blocgdp/internal/model"
)

// Store holds each country's bloc assignment intervals. Intervals for one
// country may overlap; shares are not required to sum to 100.
type Store struct {
	byCountry map[string][]model.Assignment
}

func NewStore() *Store {
	return &Store{byCountry: make(map[string][]model.Assignment)}
}

func (s *Store) Add(assignment model.Assignment) {
	s.byCountry[assignment.CountryCode] = append(s.byCountry[assignment.CountryCode], assignment)
}

// ActiveAt returns every assignment whose inclusive interval covers the
// year, in load order.
func (s *Store) ActiveAt(code string, year int) []model.Assignment {
	var active []model.Assignment
	for _, assignment := range s.byCountry[code] {
		if assignment.StartYear <= year && year <= assignment.EndYear {
			active = append(active, assignment)
		}
	}
	return active
}

func (s *Store) Countries() []string {
	codes := make([]string, 0, len(s.byCountry))
	for code := range s.byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
