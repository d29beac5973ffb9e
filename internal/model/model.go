package model

// DataPoint is one observed year of a country's GDP series.
type DataPoint struct {
	Year         int
	GDPPerCapita float64
	Population   float64
}

// Assignment attributes a country's GDP to a bloc for an inclusive year
// range. Percentage is the share of the country's GDP attributed, in (0,100].
// A country may carry several overlapping assignments (partitioned empires).
type Assignment struct {
	CountryCode string
	StartYear   int
	EndYear     int
	Bloc        string
	Percentage  float64
}

// DecadeRow is one (country, decade, bloc) output row. GDP is the
// share-weighted absolute GDP; GDPPercent is filled by the normalizer.
type DecadeRow struct {
	CountryCode    string
	Country        string
	Year           int
	Bloc           string
	BlocPercentage float64
	GDPPerCapita   float64
	Population     float64
	GDP            float64
	GDPPercent     float64
}
