package projection

import (
	"math"

	"github.com/quarterlight/crimescope/internal/aggregate"
	"github.com/quarterlight/crimescope/internal/dataset"
)

// TableRow is one year of a city's deviation from the national average plus
// its safety rank. A deviation is nil when either side of the comparison is
// missing; Rank 0 means unranked.
type TableRow struct {
	Year     int      `json:"year"`
	Homicide *float64 `json:"homicide"`
	Rape     *float64 `json:"rape"`
	Robbery  *float64 `json:"robbery"`
	Assault  *float64 `json:"assault"`
	Rank     int      `json:"rank"`
}

// TablePage is one page of a city's comparison table.
type TablePage struct {
	City       string     `json:"city"`
	Rows       []TableRow `json:"rows"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalRows  int        `json:"totalRows"`
	TotalPages int        `json:"totalPages"`
}

// DefaultPageSize is used whenever the requested size is not one the table
// widget offers.
const DefaultPageSize = 5

var allowedPageSizes = map[int]bool{5: true, 10: true, 15: true}

// CompareCity builds one page of a city's comparison table, ordered by year
// ascending: per-category deviation from that year's national average plus the
// safety rank. Pages are 1-based; a page past the end has empty rows, and an
// unknown city yields an empty table. Neither is an error.
func CompareCity(store *dataset.Store, agg *aggregate.Aggregates, city string, page, pageSize int) TablePage {
	if !allowedPageSizes[pageSize] {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	recs := store.ForCity(city)
	rows := make([]TableRow, 0, len(recs))
	for _, rec := range recs {
		avg, _ := agg.NationalAverage(rec.Year)
		rows = append(rows, TableRow{
			Year:     rec.Year,
			Homicide: deviation(rec.HomicidePer100k, avg.Homicide),
			Rape:     deviation(rec.RapePer100k, avg.Rape),
			Robbery:  deviation(rec.RobberyPer100k, avg.Robbery),
			Assault:  deviation(rec.AssaultPer100k, avg.Assault),
			Rank:     agg.Rank(city, rec.Year),
		})
	}

	total := len(rows)
	// The multiply can overflow for a huge page number; a negative offset is
	// past the end just like one beyond total.
	start := (page - 1) * pageSize
	if start < 0 || start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return TablePage{
		City:       city,
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
}

// deviation is round((cityRate − nationalAvg) / 100, 2), half away from zero,
// or nil when either side is missing. Both inputs are per-100k rates, so the
// division by 100 is part of the table's display contract, not a unit
// conversion; the figure is a nominal percentage.
func deviation(cityRate, nationalAvg float64) *float64 {
	if math.IsNaN(cityRate) || math.IsNaN(nationalAvg) {
		return nil
	}
	v := round2((cityRate - nationalAvg) / 100)
	return &v
}

// round2 rounds half away from zero to two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
