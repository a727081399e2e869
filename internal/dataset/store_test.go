package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `city,year,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k,agg_ass_per_100k
Albuquerque,1980,35.0853,-106.6056,330225,1243.2,12.4,67.4,431.7,731.7
Denver,1980,39.7392,-104.9847,492365,731.4,10.2,71.4,251.6,398.2
Denver,1979,39.7392,-104.9847,488353,700.1,9.8,69.0,244.3,377.0
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crime.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		s, err := Load(writeCSV(t, testCSV))

		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"Albuquerque", "Denver"}, s.Cities())

		min, max := s.Years()
		assert.Equal(t, 1979, min)
		assert.Equal(t, 1980, max)

		assert.Len(t, s.ForYear(1980), 2)
		assert.Len(t, s.ForYear(1979), 1)

		first := s.All()[0]
		assert.Equal(t, "Albuquerque", first.City)
		assert.Equal(t, 1243.2, first.ViolentPer100k)
		assert.Equal(t, 330225, first.TotalPop)
	})

	t.Run("city records ordered by year", func(t *testing.T) {
		s, err := Load(writeCSV(t, testCSV))

		require.NoError(t, err)
		denver := s.ForCity("Denver")
		require.Len(t, denver, 2)
		assert.Equal(t, 1979, denver[0].Year)
		assert.Equal(t, 1980, denver[1].Year)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, loadErr.Error(), "nope.csv")
	})

	t.Run("missing required column", func(t *testing.T) {
		csv := "city,year,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k\n" +
			"Denver,1980,39.7,-104.9,492365,731.4,10.2,71.4,251.6\n"
		_, err := Load(writeCSV(t, csv))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "agg_ass_per_100k")
	})

	t.Run("malformed row names its line", func(t *testing.T) {
		csv := "city,year,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k,agg_ass_per_100k\n" +
			"Denver,nineteen-eighty,39.7,-104.9,492365,731.4,10.2,71.4,251.6,398.2\n"
		_, err := Load(writeCSV(t, csv))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "row 2")
		assert.Contains(t, err.Error(), "year")
	})

	t.Run("duplicate city year", func(t *testing.T) {
		csv := testCSV + "Denver,1980,39.7392,-104.9847,492365,731.4,10.2,71.4,251.6,398.2\n"
		_, err := Load(writeCSV(t, csv))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "duplicate record for Denver 1980")
	})

	t.Run("header only", func(t *testing.T) {
		csv := "city,year,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k,agg_ass_per_100k\n"
		_, err := Load(writeCSV(t, csv))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "no data rows")
	})

	t.Run("column order free and extras ignored", func(t *testing.T) {
		csv := "year,city,extra,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k,agg_ass_per_100k\n" +
			"1980,Denver,whatever,39.7392,-104.9847,492365,731.4,10.2,71.4,251.6,398.2\n"
		s, err := Load(writeCSV(t, csv))

		require.NoError(t, err)
		require.Equal(t, 1, s.Len())
		assert.Equal(t, "Denver", s.All()[0].City)
		assert.Equal(t, 1980, s.All()[0].Year)
	})

	t.Run("missing rate cell loads as NaN", func(t *testing.T) {
		csv := "city,year,lat,lon,total_pop,violent_per_100k,homs_per_100k,rape_per_100k,rob_per_100k,agg_ass_per_100k\n" +
			"Denver,1980,39.7392,-104.9847,492365,731.4,10.2,,251.6,398.2\n"
		s, err := Load(writeCSV(t, csv))

		require.NoError(t, err)
		assert.True(t, math.IsNaN(s.All()[0].RapePer100k))
	})
}

func TestLoadedAt(t *testing.T) {
	fixedTime := time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	s, err := Load(writeCSV(t, testCSV))

	require.NoError(t, err)
	assert.Equal(t, fixedTime, s.LoadedAt())
}

func TestCheckReadiness(t *testing.T) {
	t.Run("loaded store is ready", func(t *testing.T) {
		s, err := Load(writeCSV(t, testCSV))

		require.NoError(t, err)
		assert.NoError(t, s.CheckReadiness(context.Background()))
	})

	t.Run("nil store is not ready", func(t *testing.T) {
		var s *Store
		assert.Error(t, s.CheckReadiness(context.Background()))
	})
}
