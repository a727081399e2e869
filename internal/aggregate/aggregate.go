// Package aggregate derives per-year statistics from the immutable dataset:
// national averages per crime category and a dense safety ranking of cities.
package aggregate

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/quarterlight/crimescope/internal/dataset"
	"github.com/quarterlight/crimescope/internal/domain"
)

// Averages holds one year's national mean per-100k rate for each category.
// A category no city reported that year is NaN, never 0.
type Averages struct {
	Homicide float64
	Rape     float64
	Robbery  float64
	Assault  float64
}

// Rate returns the average for the given category.
func (a Averages) Rate(c domain.Category) float64 {
	switch c {
	case domain.CategoryHomicide:
		return a.Homicide
	case domain.CategoryRape:
		return a.Rape
	case domain.CategoryRobbery:
		return a.Robbery
	case domain.CategoryAssault:
		return a.Assault
	default:
		return math.NaN()
	}
}

// Aggregates holds the derived tables for every year in the dataset.
// Built once over the immutable store, so reads need no locks.
type Aggregates struct {
	averages map[int]Averages
	ranks    map[int]map[string]int
}

// New precomputes averages and ranks for every year present in store.
func New(store *dataset.Store) *Aggregates {
	a := &Aggregates{
		averages: make(map[int]Averages),
		ranks:    make(map[int]map[string]int),
	}
	minYear, maxYear := store.Years()
	for year := minYear; year <= maxYear; year++ {
		recs := store.ForYear(year)
		if len(recs) == 0 {
			continue
		}
		a.averages[year] = averagesFor(recs)
		a.ranks[year] = ranksFor(recs)
	}
	return a
}

// NationalAverage returns the per-category national means for a year.
// ok is false for years with no records.
func (a *Aggregates) NationalAverage(year int) (Averages, bool) {
	avg, ok := a.averages[year]
	return avg, ok
}

// Rank returns a city's dense safety rank for a year: rank 1 is the lowest
// violent-crime rate, tied rates share a rank, and the next distinct rate
// increments the rank by exactly 1. Rank 0 means unranked — the city is absent
// for that year or its violent rate is missing.
func (a *Aggregates) Rank(city string, year int) int {
	return a.ranks[year][city]
}

// averagesFor computes each category's mean over the cities that reported it.
// Missing values stay out of both numerator and denominator.
func averagesFor(recs []domain.CrimeRecord) Averages {
	mean := func(c domain.Category) float64 {
		xs := make([]float64, 0, len(recs))
		for _, r := range recs {
			if v := r.Rate(c); !math.IsNaN(v) {
				xs = append(xs, v)
			}
		}
		if len(xs) == 0 {
			return math.NaN()
		}
		return stats.Mean(xs)
	}
	return Averages{
		Homicide: mean(domain.CategoryHomicide),
		Rape:     mean(domain.CategoryRape),
		Robbery:  mean(domain.CategoryRobbery),
		Assault:  mean(domain.CategoryAssault),
	}
}

// ranksFor assigns dense ranks ascending by violent rate. Cities with a
// missing violent rate are left out of the ranking universe entirely.
func ranksFor(recs []domain.CrimeRecord) map[string]int {
	type cityRate struct {
		city string
		rate float64
	}
	ordered := make([]cityRate, 0, len(recs))
	for _, r := range recs {
		if !math.IsNaN(r.ViolentPer100k) {
			ordered = append(ordered, cityRate{city: r.City, rate: r.ViolentPer100k})
		}
	}
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].rate < ordered[b].rate })

	ranks := make(map[string]int, len(ordered))
	rank := 0
	for i, cr := range ordered {
		if i == 0 || cr.rate != ordered[i-1].rate {
			rank++
		}
		ranks[cr.city] = rank
	}
	return ranks
}
