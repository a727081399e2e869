// Package dataset loads the crime CSV into memory once at process start and
// serves read-only queries over it for the process lifetime.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/quarterlight/crimescope/internal/domain"
)

// requiredColumns must all appear in the CSV header. Column order is free and
// extra columns are ignored.
var requiredColumns = []string{
	"city", "year", "lat", "lon", "total_pop",
	"violent_per_100k", "homs_per_100k", "rape_per_100k", "rob_per_100k", "agg_ass_per_100k",
}

// LoadError reports a dataset file that could not be loaded. It is fatal at
// startup: the process has nothing to serve without the dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// cityYear is the record identity key; the loader rejects files that repeat one.
type cityYear struct {
	city string
	year int
}

// Store holds the full dataset in memory. Immutable after Load, so every query
// is safe for unsynchronized concurrent use. Returned slices share the store's
// backing arrays; callers must not modify them.
type Store struct {
	records  []domain.CrimeRecord
	byYear   map[int][]domain.CrimeRecord
	byCity   map[string][]domain.CrimeRecord
	cities   []string
	minYear  int
	maxYear  int
	loadedAt time.Time
}

// Load reads and parses the CSV at path. Any failure — missing file, missing
// required column, malformed row, duplicate (city, year) — returns a *LoadError
// wrapping the cause.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(rows) < 2 {
		return nil, &LoadError{Path: path, Err: errors.New("no data rows")}
	}

	cols, err := resolveHeader(rows[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	s := &Store{
		records: make([]domain.CrimeRecord, 0, len(rows)-1),
		byYear:  make(map[int][]domain.CrimeRecord),
		byCity:  make(map[string][]domain.CrimeRecord),
	}
	seen := make(map[cityYear]bool, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := domain.ParseRecord(cols.raw(row))
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d: %w", i+2, err)}
		}

		key := cityYear{city: rec.City, year: rec.Year}
		if seen[key] {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d: duplicate record for %s %d", i+2, rec.City, rec.Year)}
		}
		seen[key] = true

		s.records = append(s.records, rec)
		s.byYear[rec.Year] = append(s.byYear[rec.Year], rec)
		s.byCity[rec.City] = append(s.byCity[rec.City], rec)
		if s.minYear == 0 || rec.Year < s.minYear {
			s.minYear = rec.Year
		}
		if rec.Year > s.maxYear {
			s.maxYear = rec.Year
		}
	}

	for city, recs := range s.byCity {
		sort.Slice(recs, func(a, b int) bool { return recs[a].Year < recs[b].Year })
		s.cities = append(s.cities, city)
	}
	sort.Strings(s.cities)

	s.loadedAt = clock.Now()
	return s, nil
}

// All returns every record in file order.
func (s *Store) All() []domain.CrimeRecord {
	return s.records
}

// ForYear returns the records for one year, in file order.
// Empty for years not in the dataset.
func (s *Store) ForYear(year int) []domain.CrimeRecord {
	return s.byYear[year]
}

// ForCity returns a city's records ordered by year ascending.
// Empty for cities not in the dataset.
func (s *Store) ForCity(city string) []domain.CrimeRecord {
	return s.byCity[city]
}

// Cities returns all city names, sorted.
func (s *Store) Cities() []string {
	return s.cities
}

// Years returns the observed year bounds.
func (s *Store) Years() (min, max int) {
	return s.minYear, s.maxYear
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// LoadedAt reports when the dataset was loaded.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// CheckReadiness satisfies the HTTP server's readiness probe. A constructed
// Store always holds data, so this only guards a nil or zero store.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s == nil || len(s.records) == 0 {
		return errors.New("dataset not loaded")
	}
	return nil
}

// columns maps header names to their index in each row.
type columns map[string]int

func resolveHeader(header []string) (columns, error) {
	idx := make(columns, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}
	return idx, nil
}

// raw extracts the required fields from a data row as written.
func (c columns) raw(row []string) domain.RawRecord {
	get := func(name string) string {
		i := c[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	return domain.RawRecord{
		City:     get("city"),
		Year:     get("year"),
		Lat:      get("lat"),
		Lon:      get("lon"),
		TotalPop: get("total_pop"),
		Violent:  get("violent_per_100k"),
		Homicide: get("homs_per_100k"),
		Rape:     get("rape_per_100k"),
		Robbery:  get("rob_per_100k"),
		Assault:  get("agg_ass_per_100k"),
	}
}
