package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRecord converts a raw CSV row into a CrimeRecord.
// Identity fields (city, year, coordinates, population) parse strictly; a bad
// value there marks the row malformed. Rate cells may instead carry one of the
// source files' missing-value sentinels and then parse to NaN.
func ParseRecord(raw RawRecord) (CrimeRecord, error) {
	city := strings.TrimSpace(raw.City)
	if city == "" {
		return CrimeRecord{}, fmt.Errorf("empty city")
	}

	year, err := strconv.Atoi(strings.TrimSpace(raw.Year))
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse year %q: %w", raw.Year, err)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(raw.Lat), 64)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse lat %q: %w", raw.Lat, err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(raw.Lon), 64)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse lon %q: %w", raw.Lon, err)
	}

	pop, err := strconv.Atoi(strings.TrimSpace(raw.TotalPop))
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse total_pop %q: %w", raw.TotalPop, err)
	}

	violent, err := parseRate(raw.Violent)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse violent_per_100k: %w", err)
	}
	homicide, err := parseRate(raw.Homicide)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse homs_per_100k: %w", err)
	}
	rape, err := parseRate(raw.Rape)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse rape_per_100k: %w", err)
	}
	robbery, err := parseRate(raw.Robbery)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse rob_per_100k: %w", err)
	}
	assault, err := parseRate(raw.Assault)
	if err != nil {
		return CrimeRecord{}, fmt.Errorf("parse agg_ass_per_100k: %w", err)
	}

	return CrimeRecord{
		City:            city,
		Year:            year,
		Lat:             lat,
		Lon:             lon,
		TotalPop:        pop,
		ViolentPer100k:  violent,
		HomicidePer100k: homicide,
		RapePer100k:     rape,
		RobberyPer100k:  robbery,
		AssaultPer100k:  assault,
	}, nil
}

// parseRate parses a per-100k rate cell. Missing-value sentinels yield NaN;
// any other non-numeric content is an error.
func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if isMissingCell(s) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// isMissingCell reports whether a cell carries one of the missing-value
// sentinels seen in the source files.
func isMissingCell(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}
