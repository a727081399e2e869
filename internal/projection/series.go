// Package projection turns the dataset and its derived aggregates into the
// shapes the dashboard widgets render: per-city time series, per-year map
// markers, and the national-comparison table. Every projector is a pure
// function of the immutable store plus the caller's selection, so projections
// are recomputed per request and never hold state.
package projection

import (
	"math"

	"github.com/quarterlight/crimescope/internal/dataset"
	"github.com/quarterlight/crimescope/internal/domain"
)

// SeriesPoint is one (year, series) value in long form. Rate is nil when the
// underlying cell is missing, which the chart renders as a gap.
type SeriesPoint struct {
	Year  int      `json:"year"`
	Label string   `json:"label"`
	Rate  *float64 `json:"rate"`
}

// PopulationPoint carries the population overlay in thousands of residents.
type PopulationPoint struct {
	Year      int     `json:"year"`
	Thousands float64 `json:"thousands"`
}

// Series is a city's charted data: the total violent-crime line, one line per
// selected category, and the parallel population series.
type Series struct {
	City       string            `json:"city"`
	Points     []SeriesPoint     `json:"points"`
	Population []PopulationPoint `json:"population"`
}

// CitySeries projects a city's records into long-form chart series ordered by
// year. "Total Violent Crimes" is always present; a category line appears only
// while that category is selected, and unselected categories are absent rather
// than zeroed. An unknown city yields an empty Series, not an error.
func CitySeries(store *dataset.Store, city string, cats domain.CategorySet) Series {
	recs := store.ForCity(city)
	s := Series{
		City:       city,
		Points:     make([]SeriesPoint, 0, len(recs)*(1+len(cats))),
		Population: make([]PopulationPoint, 0, len(recs)),
	}
	for _, rec := range recs {
		s.Points = append(s.Points, SeriesPoint{
			Year:  rec.Year,
			Label: domain.TotalSeriesLabel,
			Rate:  boxRate(rec.ViolentPer100k),
		})
		for _, c := range domain.Categories() {
			if !cats.Has(c) {
				continue
			}
			s.Points = append(s.Points, SeriesPoint{
				Year:  rec.Year,
				Label: c.Display(),
				Rate:  boxRate(rec.Rate(c)),
			})
		}
		s.Population = append(s.Population, PopulationPoint{
			Year:      rec.Year,
			Thousands: float64(rec.TotalPop) / 1000,
		})
	}
	return s
}

// boxRate boxes a rate for JSON, mapping NaN to null.
func boxRate(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
