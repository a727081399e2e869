// Package domain models per-city violent-crime statistics for large United
// States cities, 1975 through 2014.
//
// # Data Source
//
// Records originate from FBI Uniform Crime Reporting (UCR) program submissions,
// compiled into a single flat CSV with one row per city per year. Incident
// counts are normalized to rates per 100,000 residents so cities of different
// sizes compare directly. City coordinates were added to the compilation for
// mapping and repeat unchanged across a city's rows.
//
// # CSV Conventions
//
// Columns:
//
//	city              city name, e.g. "Denver"
//	year              four-digit year, 1975–2014
//	lat, lon          WGS-84 coordinates of the city
//	total_pop         city population for that year
//	violent_per_100k  all violent crime combined
//	homs_per_100k     homicide
//	rape_per_100k     rape
//	rob_per_100k      robbery
//	agg_ass_per_100k  aggravated assault
//
// violent_per_100k is the compilation's own total. It is close to, but not
// recomputed from, the sum of the four category columns: agencies sometimes
// reported a total without every category breakdown, so the columns can drift.
// It is carried as-is.
//
// Missing values:
//
//	Agencies did not report every category every year. Empty cells and the
//	sentinels "NA", "NaN", and "null" parse to NaN. Consumers exclude NaN
//	from means and treat it as 0 under summation; it is never an error.
//
// Identity:
//
//	(city, year) is unique within a dataset. The dataset store rejects files
//	that repeat a pair.
package domain
