package projection

import (
	"math"
	"strings"

	"github.com/quarterlight/crimescope/internal/dataset"
	"github.com/quarterlight/crimescope/internal/domain"
)

// Marker is one city's map presence for a year: a scaled scatter size plus an
// HTML hover label.
type Marker struct {
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Size  float64 `json:"size"`
	Label string  `json:"label"`
}

// markerSizeFactor converts a summed per-100k rate into a scatter radius.
const markerSizeFactor = 0.008

// MapIntensity projects every city present in year onto the map. Marker size
// comes from the selected categories' summed rates; the label always carries
// the full record. An empty selection produces zero-size markers, never an
// error.
func MapIntensity(store *dataset.Store, year int, cats domain.CategorySet) []Marker {
	recs := store.ForYear(year)
	markers := make([]Marker, 0, len(recs))
	for _, rec := range recs {
		markers = append(markers, Marker{
			City:  rec.City,
			Lat:   rec.Lat,
			Lon:   rec.Lon,
			Size:  markerSizeFactor * rawSum(rec, cats) * categoryScale(cats),
			Label: markerLabel(rec),
		})
	}
	return markers
}

// rawSum adds the selected categories' rates, counting missing values as 0.
func rawSum(rec domain.CrimeRecord, cats domain.CategorySet) float64 {
	var sum float64
	for _, c := range domain.Categories() {
		if !cats.Has(c) {
			continue
		}
		if v := rec.Rate(c); !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// categoryScale compensates for homicide and rape rates being an order of
// magnitude smaller than robbery and assault rates, so marker sizes stay
// legible whichever categories are selected. The constants are visual tuning,
// not a statistical normalization.
// TODO: derive the factors from per-category rate distributions instead.
func categoryScale(cats domain.CategorySet) float64 {
	if cats.Has(domain.CategoryRobbery) || cats.Has(domain.CategoryAssault) {
		return 1
	}
	if cats.Has(domain.CategoryRape) {
		return 8
	}
	return 20
}

// markerLabel renders the hover summary: city, population, and all four
// category rates regardless of selection.
func markerLabel(rec domain.CrimeRecord) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(rec.City)
	b.WriteString("</b><br>Population: ")
	b.WriteString(domain.FormatCount(rec.TotalPop))
	for _, c := range domain.Categories() {
		b.WriteString("<br>")
		b.WriteString(c.Display())
		b.WriteString(": ")
		b.WriteString(domain.FormatRate(rec.Rate(c)))
	}
	return b.String()
}
