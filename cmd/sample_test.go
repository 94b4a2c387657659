package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSampleCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	samples := []float64{1.5, 2.25, -0.5}

	require.NoError(t, writeSampleCSV(path, samples))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var rows []*sampleRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, samples[i], row.Value)
	}
}

func TestWriteSampleCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, writeSampleCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Header only.
	assert.Contains(t, string(data), "index")
	assert.Contains(t, string(data), "value")
}
