package main

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterlight/crimescope/internal/dataset"
)

func TestGenerateDeterministicPerSeed(t *testing.T) {
	a := generate(rand.New(rand.NewSource(7)), cityPool[:5], 1980, 1990, 0.1)
	b := generate(rand.New(rand.NewSource(7)), cityPool[:5], 1980, 1990, 0.1)
	assert.Equal(t, a, b)

	c := generate(rand.New(rand.NewSource(8)), cityPool[:5], 1980, 1990, 0.1)
	assert.NotEqual(t, a, c)
}

func TestGeneratedFileLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.csv")
	rows := generate(rand.New(rand.NewSource(1)), cityPool[:10], 1975, 2014, 0.05)
	require.NoError(t, writeCSV(path, rows))

	store, err := dataset.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*40, store.Len())
	assert.Len(t, store.Cities(), 10)

	minYear, maxYear := store.Years()
	assert.Equal(t, 1975, minYear)
	assert.Equal(t, 2014, maxYear)
}
