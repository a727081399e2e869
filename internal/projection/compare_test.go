package projection

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterlight/crimescope/internal/aggregate"
	"github.com/quarterlight/crimescope/internal/dataset"
)

// multiYearStore builds one city with a row per year starting at 1975.
func multiYearStore(t *testing.T, years int) *dataset.Store {
	t.Helper()
	var b strings.Builder
	for i := 0; i < years; i++ {
		fmt.Fprintf(&b, "Denver,%d,39.7,-104.9,500000,700.0,10.0,60.0,250.0,380.0\n", 1975+i)
	}
	return newTestStore(t, b.String())
}

func TestCompareCity(t *testing.T) {
	store := newTestStore(t,
		"Atlanta,1980,33.7,-84.4,425022,2000.0,5.2,80.0,800.0,1000.0\n"+
			"Boston,1980,42.4,-71.1,562994,1400.0,2.8,,500.0,700.0\n"+
			"Atlanta,1979,33.7,-84.4,421234,1900.0,4.8,78.0,780.0,950.0\n")
	agg := aggregate.New(store)

	t.Run("deviation from the national average", func(t *testing.T) {
		// 1980 homicide: Atlanta 5.2 vs mean(5.2, 2.8) = 4.0.
		page := CompareCity(store, agg, "Atlanta", 1, 5)

		require.Len(t, page.Rows, 2)
		row := page.Rows[1]
		assert.Equal(t, 1980, row.Year)
		require.NotNil(t, row.Homicide)
		assert.InDelta(t, 0.01, *row.Homicide, 1e-9)
	})

	t.Run("negative deviation", func(t *testing.T) {
		page := CompareCity(store, agg, "Boston", 1, 5)

		require.Len(t, page.Rows, 1)
		require.NotNil(t, page.Rows[0].Homicide)
		assert.InDelta(t, -0.01, *page.Rows[0].Homicide, 1e-9)
	})

	t.Run("rank attached to every row", func(t *testing.T) {
		page := CompareCity(store, agg, "Atlanta", 1, 5)

		require.Len(t, page.Rows, 2)
		assert.Equal(t, 1, page.Rows[0].Rank) // only city in 1979
		assert.Equal(t, 2, page.Rows[1].Rank) // behind Boston in 1980
	})

	t.Run("rows ordered by year ascending", func(t *testing.T) {
		page := CompareCity(store, agg, "Atlanta", 1, 5)

		require.Len(t, page.Rows, 2)
		assert.Equal(t, 1979, page.Rows[0].Year)
		assert.Equal(t, 1980, page.Rows[1].Year)
	})

	t.Run("missing city rate gives nil deviation", func(t *testing.T) {
		page := CompareCity(store, agg, "Boston", 1, 5)

		require.Len(t, page.Rows, 1)
		assert.Nil(t, page.Rows[0].Rape)
		assert.NotNil(t, page.Rows[0].Robbery)
	})

	t.Run("unknown city yields empty table", func(t *testing.T) {
		page := CompareCity(store, agg, "Springfield", 1, 5)

		assert.Equal(t, "Springfield", page.City)
		assert.Empty(t, page.Rows)
		assert.Zero(t, page.TotalRows)
		assert.Zero(t, page.TotalPages)
	})
}

func TestComparePagination(t *testing.T) {
	store := multiYearStore(t, 12)
	agg := aggregate.New(store)

	t.Run("default page size", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 1, 0)

		assert.Equal(t, 5, page.PageSize)
		assert.Len(t, page.Rows, 5)
		assert.Equal(t, 12, page.TotalRows)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 1975, page.Rows[0].Year)
	})

	t.Run("unsupported size falls back to default", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 1, 7)

		assert.Equal(t, 5, page.PageSize)
		assert.Len(t, page.Rows, 5)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 3, 5)

		require.Len(t, page.Rows, 2)
		assert.Equal(t, 1985, page.Rows[0].Year)
		assert.Equal(t, 1986, page.Rows[1].Year)
	})

	t.Run("size ten", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 2, 10)

		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Rows, 2)
	})

	t.Run("size fifteen holds all rows", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 1, 15)

		assert.Equal(t, 1, page.TotalPages)
		assert.Len(t, page.Rows, 12)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 99, 5)

		assert.Empty(t, page.Rows)
		assert.Equal(t, 12, page.TotalRows)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("page large enough to overflow the offset is empty", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 3689348814741910324, 5)

		assert.Empty(t, page.Rows)
		assert.Equal(t, 12, page.TotalRows)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("page below one clamps to first", func(t *testing.T) {
		page := CompareCity(store, agg, "Denver", 0, 5)

		assert.Equal(t, 1, page.Page)
		require.Len(t, page.Rows, 5)
		assert.Equal(t, 1975, page.Rows[0].Year)
	})
}

func TestDeviation(t *testing.T) {
	tests := []struct {
		name     string
		cityRate float64
		natAvg   float64
		expected float64
		isNil    bool
	}{
		{"positive", 5.2, 4.0, 0.01, false},
		{"negative", 2.8, 4.0, -0.01, false},
		{"large gap", 300.0, 100.0, 2.0, false},
		{"rounds half away from zero", 4.6, 4.0, 0.01, false},
		{"rounds small difference to zero", 4.4, 4.0, 0.0, false},
		{"missing city rate", math.NaN(), 4.0, 0, true},
		{"missing national average", 5.2, math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deviation(tt.cityRate, tt.natAvg)
			if tt.isNil {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.InDelta(t, tt.expected, *d, 1e-9)
		})
	}
}
