package timeseries

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `ds,y
2020-01-03,102
2020-01-01,100
2020-01-02,101
2020-01-04,NA
2020-01-05,104`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions(), WithInterval(FromDays(1)))
	require.NoError(t, err)

	assert.Equal(t, 4, series.Len())
	assert.Equal(t, []float64{100, 101, 102, 104}, series.Values())
	assert.Equal(t, int64(86400), series.TimeSpan().Seconds())
}

func TestLoadCSVCustomColumns(t *testing.T) {
	csvData := `when;visitors;other
01/02/2020;5;x
01/03/2020;6;y`

	opts := &CSVOptions{
		DateColumn:  "when",
		ValueColumn: "visitors",
		DateFormat:  "01/02/2006",
		HasHeader:   true,
		Delimiter:   ';',
	}

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, series.Values())
	first, _ := series.At(0)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), first.Date)
}

func TestLoadCSVNoHeader(t *testing.T) {
	csvData := "2020-01-01,1\n2020-01-02,2\n"
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	records, err := ReadCSV(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadCSVBadRows(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,value\nyesterday,3\n"), nil)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 0, recErr.Index)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ReadCSV(strings.NewReader("date,value\n2020-01-01,1\n2020-01-02,lots\n"), nil)
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 1, recErr.Index)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ReadCSV(strings.NewReader("date,value\n2020-01-01,NA\n"), nil)
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("date,value\n2020-01-01,1\n2020-01-02,-Inf\n"), nil)
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 1, recErr.Index)
	assert.ErrorIs(t, err, ErrInvalidValue)

	records, err := ReadCSV(strings.NewReader("date,value\n2020-01-01,nan\n2020-01-02,2\n"), nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), nil)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestLoadFile(t *testing.T) {
	csvSeries, err := LoadFile("testdata/daily.csv", nil, WithInterval(FromDays(1)))
	require.NoError(t, err)
	assert.Equal(t, 31, csvSeries.Len())
	assert.Equal(t, "daily.csv", csvSeries.Name())

	jsonSeries, err := LoadFile("testdata/short.json", nil, WithInterval(FromDays(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{6602, 7298, 6885}, jsonSeries.Values())

	yamlSeries, err := LoadFile("testdata/short.yaml", nil, WithInterval(FromDays(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{6602, 7298, 6885}, yamlSeries.Values())

	_, err = LoadFile("testdata/daily.parquet", nil)
	assert.Error(t, err)
}
